package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dshills/docchunk/internal/chunker"
	"github.com/dshills/docchunk/internal/loader"
	"github.com/dshills/docchunk/internal/logger"
	"github.com/dshills/docchunk/pkg/types"
)

// Chunker is the chunking capability the runner needs. Both
// *chunker.Chunker and *cache.Chunker satisfy it.
type Chunker interface {
	Chunk(text string, strategy types.Strategy) []string
}

// LoadFunc reads a document's text from its source path
type LoadFunc func(path string) (string, error)

// Runner chunks many independent documents concurrently: load -> chunk -> analyze
type Runner struct {
	chunker Chunker
	load    LoadFunc

	// Worker pool configuration
	workers int
}

// Config contains configuration for a batch run
type Config struct {
	Workers  int            // Number of concurrent workers (default: runtime.NumCPU())
	Strategy types.Strategy // Chunking strategy for every document (default: balanced)
}

// Statistics contains statistics about a batch run
type Statistics struct {
	Documents     int
	Succeeded     int
	Failed        int
	ChunksCreated int
	Duration      time.Duration
	ErrorMessages []string
}

// New creates a Runner that loads documents with loader.LoadFile
func New(c Chunker) *Runner {
	return &Runner{
		chunker: c,
		load:    loader.LoadFile,
		workers: runtime.NumCPU(),
	}
}

// WithLoader replaces the function used to read documents from disk
func (r *Runner) WithLoader(load LoadFunc) *Runner {
	r.load = load
	return r
}

// Run chunks docs with a bounded worker pool. Results are returned in the
// order of docs. A document that fails to load is reported in its result
// and in the statistics; only context cancellation aborts the run.
// Progress is logged to the logger carried by ctx, if any.
func (r *Runner) Run(ctx context.Context, docs []types.Document, config *Config) ([]types.DocumentResult, *Statistics, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	if config == nil {
		config = &Config{}
	}
	workers := config.Workers
	if workers <= 0 {
		workers = r.workers
	}
	strategy := chunker.ParseStrategy(string(config.Strategy))
	log := logger.FromContext(ctx)

	startTime := time.Now()
	stats := &Statistics{
		Documents:     len(docs),
		ErrorMessages: make([]string, 0),
	}
	results := make([]types.DocumentResult, len(docs))

	var (
		succeeded int32
		failed    int32
		chunks    int32
		mu        sync.Mutex // Protect stats.ErrorMessages
	)

	semaphore := make(chan struct{}, workers)
	g, gctx := errgroup.WithContext(ctx)

	for i := range docs {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			if err := gctx.Err(); err != nil {
				return err
			}

			res := r.chunkDocument(&docs[i], strategy)
			results[i] = res

			if res.Err != nil {
				log.Warn("failed to chunk document", "doc", res.ID, "err", res.Err)
				atomic.AddInt32(&failed, 1)
				mu.Lock()
				stats.ErrorMessages = append(stats.ErrorMessages, fmt.Sprintf("%s: %v", res.ID, res.Err))
				mu.Unlock()
				return nil
			}

			log.Debug("chunked document", "doc", res.ID, "chunks", len(res.Chunks))
			atomic.AddInt32(&succeeded, 1)
			atomic.AddInt32(&chunks, int32(len(res.Chunks)))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	stats.Succeeded = int(succeeded)
	stats.Failed = int(failed)
	stats.ChunksCreated = int(chunks)
	stats.Duration = time.Since(startTime)

	return results, stats, nil
}

// chunkDocument loads (if needed), chunks and analyzes one document
func (r *Runner) chunkDocument(doc *types.Document, strategy types.Strategy) types.DocumentResult {
	res := types.DocumentResult{
		ID:       doc.ID,
		Source:   doc.Source,
		Strategy: strategy,
	}
	if res.ID == "" {
		res.ID = doc.Source
	}

	if err := doc.Validate(); err != nil {
		res.Err = err
		return res
	}

	text := doc.Text
	if text == "" {
		loaded, err := r.load(doc.Source)
		if err != nil {
			res.Err = err
			return res
		}
		text = loaded
	}

	res.Chunks = r.chunker.Chunk(text, strategy)
	res.Stats = chunker.Analyze(res.Chunks)
	return res
}

// DiscoverFiles finds loadable documents under root. Hidden directories are
// skipped. An empty extension list accepts .txt, .md and .pdf files.
func DiscoverFiles(root string, extensions []string) ([]string, error) {
	if len(extensions) == 0 {
		extensions = []string{".txt", ".md", ".pdf"}
	}
	allowed := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		allowed[ext] = true
	}

	var files []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			if path != root && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		if allowed[strings.ToLower(filepath.Ext(path))] {
			files = append(files, path)
		}
		return nil
	})

	return files, err
}

// DocumentsFromPaths builds batch documents identified by their paths
func DocumentsFromPaths(paths []string) []types.Document {
	docs := make([]types.Document, len(paths))
	for i, p := range paths {
		docs[i] = types.Document{ID: p, Source: p}
	}
	return docs
}
