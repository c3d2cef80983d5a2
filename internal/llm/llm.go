// Package llm talks to the text model that summarizes source files.
// Providers implement Client; cross-cutting concerns (rate limiting,
// retries, logging) are layered on with Middleware.
package llm

import (
	"context"
	"errors"
)

// Client generates free-form text for a prompt.
type Client interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
	Close() error
}

var (
	// ErrNotConfigured is returned when no model credentials are available.
	ErrNotConfigured = errors.New("llm: api key not configured")
	// ErrEmptyInput is returned for a summarize request without code.
	ErrEmptyInput = errors.New("llm: no code provided")
	// ErrEmptyResponse is returned when the model answers with no text.
	ErrEmptyResponse = errors.New("llm: empty response from model")
)

// PermanentError indicates an error that will not resolve with retries.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return e.Err.Error() }
func (e *PermanentError) Unwrap() error { return e.Err }

func NewPermanentError(err error) error {
	return &PermanentError{Err: err}
}

// IsPermanent reports whether err carries a PermanentError.
func IsPermanent(err error) bool {
	var p *PermanentError
	return errors.As(err, &p)
}
