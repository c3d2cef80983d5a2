// Package handler serves the plain HTTP surface of the gateway: the JSON
// endpoints, the progress websocket and the health check.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"repograph/internal/graph"
	"repograph/internal/llm"
	t "repograph/internal/types"
)

// Analyzer builds a dependency graph for a repository URL.
type Analyzer interface {
	AssembleWithProgress(ctx context.Context, repoURL string, progress graph.ProgressFunc) (*t.GraphResult, error)
}

// Summarizer turns code into a natural-language summary.
type Summarizer interface {
	Summarize(ctx context.Context, code string) (string, error)
}

const (
	MsgNotConfigured = "AI API key is not configured on the server."
	MsgNoCode        = "No code provided for summarization."
	MsgSummaryFailed = "Failed to get summary from AI service."
	MsgBadBody       = "Invalid JSON body."
)

const maxBodyBytes = 8 << 20

type Handler struct {
	analyzer   Analyzer
	summarizer Summarizer
	log        *log.Logger
}

// New returns a Handler. A nil logger means log.Default().
func New(a Analyzer, s Summarizer, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{analyzer: a, summarizer: s, log: logger}
}

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}

// GraphStatus maps a pipeline failure to its HTTP status.
func GraphStatus(err error) int {
	switch graph.KindOf(err) {
	case graph.KindInvalidInput:
		return http.StatusBadRequest
	case graph.KindNoRelevantFiles:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// SummaryFailure maps a summarizer error to its HTTP status and the message
// shown to the caller.
func SummaryFailure(err error) (int, string) {
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		return http.StatusInternalServerError, MsgNotConfigured
	case errors.Is(err, llm.ErrEmptyInput):
		return http.StatusBadRequest, MsgNoCode
	default:
		return http.StatusInternalServerError, MsgSummaryFailed
	}
}
