package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"repograph/internal/gateway/app"
	"repograph/internal/gateway/config"
)

var (
	verbose bool
	exclude []string
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log pipeline warnings to stderr")
	rootCmd.PersistentFlags().StringSliceVar(&exclude, "exclude", nil, "Extra gitignore-style patterns to leave out of the graph")

	rootCmd.AddCommand(analyzeCmd, summarizeCmd, serveCmd, mcpCmd)
}

var rootCmd = &cobra.Command{
	Use:           "repograph",
	Short:         "Map how the files of a GitHub repository reference each other",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadDeps reads configuration and wires the shared services. Flags override
// the environment.
func loadDeps(ctx context.Context, logger *log.Logger) (*config.Config, *app.Deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	cfg.Graph.Exclude = append(cfg.Graph.Exclude, exclude...)
	deps, err := app.NewDeps(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return cfg, deps, nil
}

// cliLogger writes to stderr when --verbose is set and is silent otherwise.
func cliLogger(cmd *cobra.Command) *log.Logger {
	if verbose {
		return log.New(cmd.ErrOrStderr(), "repograph: ", log.LstdFlags)
	}
	return log.New(io.Discard, "", 0)
}
