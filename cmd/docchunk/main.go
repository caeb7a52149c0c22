package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/dshills/docchunk/internal/config"
	"github.com/dshills/docchunk/internal/logger"
	"github.com/dshills/docchunk/internal/mcp"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

// app carries state resolved once in the root pre-run hook
type app struct {
	cfg config.Config
	log *charmlog.Logger
}

func main() {
	cmd := createRootCommand()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func createRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "docchunk",
		Short: "Split documents into retrieval-sized chunks",
		Long: `docchunk normalizes document text and splits it into chunks for
embedding and retrieval, using a balanced, semantic or sliding window strategy.
Run "docchunk serve" to expose the chunker as an MCP server on stdio.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().String("env-file", "", "Load DOCCHUNK_* variables from a dotenv file")
	root.PersistentFlags().String("config", "", "Path to a TOML config file (default: ./docchunk.toml if present)")
	root.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	root.PersistentFlags().Bool("log-json", false, "Emit logs as JSON")

	root.AddCommand(
		serveCommand(a),
		chunkCommand(a),
		analyzeCommand(a),
		versionCommand(),
	)
	return root
}

// setup loads config (defaults -> file -> env -> flags) and builds the logger
func (a *app) setup(cmd *cobra.Command) error {
	envFile, err := cmd.Flags().GetString("env-file")
	if err != nil {
		return fmt.Errorf("failed to get env-file flag: %w", err)
	}
	if err := config.LoadEnvFile(envFile); err != nil {
		return err
	}

	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level, _ = cmd.Flags().GetString("log-level")
	}
	if cmd.Flags().Changed("log-json") {
		cfg.Log.JSON, _ = cmd.Flags().GetBool("log-json")
	}
	if err := applyChunkFlags(cmd, &cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.log = logger.New(logger.Config{
		Level:  cfg.Log.Level,
		JSON:   cfg.Log.JSON,
		Output: cmd.ErrOrStderr(),
	})
	cmd.SetContext(logger.ContextWithLogger(cmd.Context(), a.log))
	return nil
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		// Skip config loading so version works with a broken config file
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "docchunk version %s\n", version)
			fmt.Fprintf(out, "built: %s\n", buildTime)
			fmt.Fprintf(out, "mcp server: %s %s\n", mcp.ServerName, mcp.ServerVersion)
		},
	}
}

func serveCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.log.Info("starting", "version", version, "strategy", a.cfg.Strategy)

			server, err := mcp.NewServer(a.cfg, a.log)
			if err != nil {
				return fmt.Errorf("failed to create MCP server: %w", err)
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sigChan)

			errChan := make(chan error, 1)
			go func() {
				a.log.Info("MCP server ready, listening on stdio")
				errChan <- server.Serve(ctx)
			}()

			select {
			case sig := <-sigChan:
				a.log.Info("shutting down", "signal", sig)
				cancel()
			case err := <-errChan:
				if err != nil {
					return fmt.Errorf("server error: %w", err)
				}
			}

			a.log.Info("server stopped")
			return nil
		},
	}
}
