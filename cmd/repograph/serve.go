package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"repograph/internal/gateway/app"
	"repograph/internal/gateway/config"
)

var servePort string

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "Listen address (overrides PORT)")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP gateway (REST, Connect and websocket)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if servePort != "" {
			cfg.Port = servePort
		}
		cfg.Graph.Exclude = append(cfg.Graph.Exclude, exclude...)

		logger := log.Default()
		a, err := app.NewWithConfig(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}

		errCh := make(chan error, 1)
		go func() { errCh <- a.Start() }()

		select {
		case err := <-errCh:
			return err
		case <-cmd.Context().Done():
		}

		logger.Println("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := a.Shutdown(ctx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		logger.Println("Server exiting")
		return nil
	},
}
