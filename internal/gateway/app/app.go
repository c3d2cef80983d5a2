package app

import (
	"context"
	"fmt"
	"log"
	"net"

	"repograph/internal/gateway/config"
	"repograph/internal/gateway/handler"
	"repograph/internal/gateway/handler/rpc"
	"repograph/internal/gateway/server"
)

type App struct {
	cfg    *config.Config
	server *server.Server
	deps   *Deps
}

// New loads configuration from the environment and builds the gateway.
func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return NewWithConfig(context.Background(), cfg, nil)
}

func NewWithConfig(ctx context.Context, cfg *config.Config, logger *log.Logger) (*App, error) {
	if logger == nil {
		logger = log.Default()
	}
	deps, err := NewDeps(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	h := handler.New(deps.Assembler, deps.Summarizer, logger)
	graphHandler := rpc.NewGraphHandler(deps.Assembler, deps.Summarizer)

	// Routing & Server
	mux := server.NewMux(h, graphHandler)
	srv := server.New(cfg.Port, mux, logger)

	return &App{cfg: cfg, server: srv, deps: deps}, nil
}

// Config is the configuration the gateway was built from.
func (a *App) Config() *config.Config { return a.cfg }

func (a *App) Start() error {
	return a.server.Start()
}

func (a *App) Serve(ln net.Listener) error {
	return a.server.Serve(ln)
}

func (a *App) Shutdown(ctx context.Context) error {
	err := a.server.Shutdown(ctx)
	if cerr := a.deps.Close(); err == nil {
		err = cerr
	}
	return err
}
