package app

import (
	"context"
	"errors"
	"log"
	"time"

	"repograph/internal/gateway/config"
	"repograph/internal/github"
	"repograph/internal/graph"
	"repograph/internal/llm"
)

// Deps are the long-lived services every surface (HTTP, MCP, CLI) shares.
type Deps struct {
	GitHub     *github.Client
	Assembler  *graph.Assembler
	Summarizer *llm.Summarizer
}

// NewDeps wires the hosting client, the assembler and the summarizer from
// cfg. A missing AI key leaves the summarizer unconfigured, except in the
// local profile where the offline fake stands in.
func NewDeps(ctx context.Context, cfg *config.Config, logger *log.Logger) (*Deps, error) {
	if logger == nil {
		logger = log.Default()
	}
	gh := github.New(github.Config{
		BaseURL:    cfg.GitHub.BaseURL,
		GraphQLURL: cfg.GitHub.GraphQLURL,
		Token:      cfg.GitHub.Token,
		Timeout:    cfg.GitHub.Timeout,
	})
	if cfg.GitHub.Token == "" {
		logger.Printf("GITHUB_TOKEN is not set; requests are unauthenticated and heavily rate limited")
	}
	asm := graph.New(gh, graph.Options{
		Logger:      logger,
		Concurrency: cfg.Graph.Concurrency,
		Exclude:     cfg.Graph.Exclude,
	})

	client, err := newLLMClient(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	var summarizer *llm.Summarizer
	if client != nil {
		summarizer = llm.NewSummarizer(client)
	}
	return &Deps{GitHub: gh, Assembler: asm, Summarizer: summarizer}, nil
}

func newLLMClient(ctx context.Context, cfg *config.Config, logger *log.Logger) (llm.Client, error) {
	var inner llm.Client
	gem, err := llm.NewGeminiClient(ctx, cfg.LLM.APIKey, cfg.LLM.Model)
	switch {
	case err == nil:
		inner = gem
	case errors.Is(err, llm.ErrNotConfigured) && cfg.Local():
		logger.Printf("GEMINI_API_KEY is not set; using the offline summarizer")
		inner = llm.NewFakeClient()
	case errors.Is(err, llm.ErrNotConfigured):
		logger.Printf("GEMINI_API_KEY is not set; summarization is disabled")
		return nil, nil
	default:
		return nil, err
	}
	return llm.Wrap(inner,
		llm.WithLogging(logger),
		llm.Retry(cfg.LLM.Retries, 500*time.Millisecond),
		llm.RateLimit(cfg.LLM.RPS, cfg.LLM.Burst),
	), nil
}

// Close releases the summarizer.
func (d *Deps) Close() error {
	return d.Summarizer.Close()
}
