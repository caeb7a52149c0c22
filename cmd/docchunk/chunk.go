package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/dshills/docchunk/internal/batch"
	"github.com/dshills/docchunk/internal/chunker"
	"github.com/dshills/docchunk/internal/config"
	"github.com/dshills/docchunk/internal/logger"
	"github.com/dshills/docchunk/internal/tokens"
	"github.com/dshills/docchunk/pkg/types"
)

// addChunkFlags registers strategy and size flags. Defaults are zero values;
// only flags set explicitly override the loaded config.
func addChunkFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("strategy", "s", "", "Chunking strategy: balanced, semantic, sliding_window")
	f.Int("min-chunk-size", 0, "Balanced: minimum chunk length")
	f.Int("max-chunk-size", 0, "Balanced: soft maximum chunk length")
	f.Int("overlap-size", 0, "Balanced: overlap carried into the next chunk")
	f.Int("target-size", 0, "Semantic: target chunk length")
	f.Float64("tolerance", 0, "Semantic: allowed growth over target size")
	f.Int("window-size", 0, "Sliding window: window width")
	f.Int("window-overlap", 0, "Sliding window: overlap between windows")
	f.IntP("workers", "w", 0, "Files processed concurrently (0: one per CPU)")
	f.Bool("json", false, "Write JSON instead of text")
}

// applyChunkFlags copies explicitly set chunk flags into cfg
func applyChunkFlags(cmd *cobra.Command, cfg *config.Config) error {
	f := cmd.Flags()
	if f.Changed("strategy") {
		s, err := f.GetString("strategy")
		if err != nil {
			return err
		}
		cfg.Strategy = types.Strategy(s)
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{"min-chunk-size", &cfg.Chunker.MinChunkSize},
		{"max-chunk-size", &cfg.Chunker.MaxChunkSize},
		{"overlap-size", &cfg.Chunker.OverlapSize},
		{"target-size", &cfg.Chunker.TargetSize},
		{"window-size", &cfg.Chunker.WindowSize},
		{"window-overlap", &cfg.Chunker.WindowOverlap},
		{"workers", &cfg.Batch.Workers},
	}
	for _, fl := range ints {
		if !f.Changed(fl.name) {
			continue
		}
		v, err := f.GetInt(fl.name)
		if err != nil {
			return err
		}
		*fl.dst = v
	}

	if f.Changed("tolerance") {
		v, err := f.GetFloat64("tolerance")
		if err != nil {
			return err
		}
		cfg.Chunker.Tolerance = v
	}
	return nil
}

func chunkCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chunk <file|dir>...",
		Short: "Chunk text, markdown or PDF files",
		Long: `Chunk each file and print its chunks in document order.
Directories are searched recursively for .txt, .md and .pdf files.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, results, err := a.run(cmd, args)
			if err != nil {
				return err
			}
			asJSON, _ := cmd.Flags().GetBool("json")
			if asJSON {
				if err := writeJSON(cmd.OutOrStdout(), chunkReports(c, results)); err != nil {
					return err
				}
			} else {
				writeChunks(cmd.OutOrStdout(), results)
			}
			return failures(results)
		},
	}
	addChunkFlags(cmd)
	return cmd
}

func analyzeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <file|dir>...",
		Short: "Print chunk statistics for files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, results, err := a.run(cmd, args)
			if err != nil {
				return err
			}

			reports := make([]fileReport, 0, len(results))
			for _, res := range results {
				r := fileReport{Source: res.Source, Strategy: res.Strategy}
				if res.Err != nil {
					r.Error = res.Err.Error()
				} else {
					stats := c.Analyze(res.Chunks)
					r.Stats = &stats
				}
				reports = append(reports, r)
			}

			asJSON, _ := cmd.Flags().GetBool("json")
			if asJSON {
				if err := writeJSON(cmd.OutOrStdout(), reports); err != nil {
					return err
				}
			} else {
				writeStats(cmd.OutOrStdout(), reports)
			}
			return failures(results)
		},
	}
	addChunkFlags(cmd)
	return cmd
}

// run expands args into documents and chunks them with the batch runner.
// The chunker is returned so callers can describe and analyze the results
// with the same config and token counter.
func (a *app) run(cmd *cobra.Command, args []string) (*chunker.Chunker, []types.DocumentResult, error) {
	ctx := cmd.Context()
	log := logger.FromContext(ctx)

	paths, err := expandPaths(args)
	if err != nil {
		return nil, nil, err
	}

	c, err := chunker.New(a.cfg.Chunker, chunker.WithTokenCounter(tokenCounter(log)))
	if err != nil {
		return nil, nil, err
	}

	results, stats, err := batch.New(c).Run(ctx, batch.DocumentsFromPaths(paths), &batch.Config{
		Workers:  a.cfg.Batch.Workers,
		Strategy: a.cfg.Strategy,
	})
	if err != nil {
		return nil, nil, err
	}
	log.Debug("chunked files", "files", stats.Documents, "failed", stats.Failed,
		"chunks", stats.ChunksCreated, "duration", stats.Duration)
	return c, results, nil
}

// expandPaths replaces directories with the documents found under them
func expandPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil || !info.IsDir() {
			// Missing files surface as per-file load errors
			paths = append(paths, arg)
			continue
		}
		found, err := batch.DiscoverFiles(arg, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", arg, err)
		}
		paths = append(paths, found...)
	}
	return paths, nil
}

func tokenCounter(log *charmlog.Logger) chunker.TokenCounter {
	tc, err := tokens.New()
	if err != nil {
		log.Warn("tokenizer unavailable, estimating tokens", "err", err)
		return tokens.Estimator{}
	}
	return tc
}

type fileReport struct {
	Source   string            `json:"source"`
	Strategy types.Strategy    `json:"strategy"`
	Chunks   []string          `json:"chunks,omitempty"`
	Metadata []types.ChunkInfo `json:"metadata,omitempty"`
	Stats    *types.Stats      `json:"stats,omitempty"`
	Error    string            `json:"error,omitempty"`
}

func chunkReports(c *chunker.Chunker, results []types.DocumentResult) []fileReport {
	reports := make([]fileReport, 0, len(results))
	for _, res := range results {
		r := fileReport{Source: res.Source, Strategy: res.Strategy}
		if res.Err != nil {
			r.Error = res.Err.Error()
			reports = append(reports, r)
			continue
		}

		stats := c.Analyze(res.Chunks)
		r.Chunks = res.Chunks
		r.Stats = &stats
		for _, ch := range c.Describe(res.Chunks, res.Strategy) {
			r.Metadata = append(r.Metadata, ch.Info())
		}
		reports = append(reports, r)
	}
	return reports
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeChunks(w io.Writer, results []types.DocumentResult) {
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(w, "== %s: error: %v\n\n", res.Source, res.Err)
			continue
		}
		fmt.Fprintf(w, "== %s (%s, %d chunks)\n\n", res.Source, res.Strategy, len(res.Chunks))
		for i, c := range res.Chunks {
			fmt.Fprintf(w, "--- chunk %d (%d chars)\n%s\n\n", i+1, utf8.RuneCountInString(c), c)
		}
	}
}

func writeStats(w io.Writer, reports []fileReport) {
	for _, r := range reports {
		if r.Error != "" {
			fmt.Fprintf(w, "%s: error: %s\n", r.Source, r.Error)
			continue
		}
		s := r.Stats
		fmt.Fprintf(w, "%s: strategy=%s chunks=%d avg=%.1f min=%d max=%d chars=%d tokens=%d\n",
			r.Source, r.Strategy, s.Count, s.AvgLength, s.MinLength, s.MaxLength, s.TotalChars, s.TotalTokens)
	}
}

// failures turns per-file errors into a non-zero exit
func failures(results []types.DocumentResult) error {
	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(results))
	}
	return nil
}
