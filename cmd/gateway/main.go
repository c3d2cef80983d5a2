package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"repograph/internal/gateway/app"
)

func main() {
	a, err := app.New()
	if err != nil {
		log.Fatalf("Failed to initialize gateway: %v", err)
	}
	cfg := a.Config()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- a.Start() }()
	log.Printf("repograph gateway listening on %s (env %s)", cfg.Port, cfg.Env)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
		return
	case <-ctx.Done():
	}

	log.Printf("Shutting down gateway (waiting up to %s)...", cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := a.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Gateway forced to shutdown: %v", err)
	}
	log.Println("Gateway exiting")
}
