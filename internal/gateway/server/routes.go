package server

import (
	"net/http"

	"repograph/internal/gateway/handler"
	"repograph/internal/gateway/handler/rpc"
	"repograph/internal/gateway/middleware"
)

func NewMux(h *handler.Handler, graphHandler *rpc.GraphHandler) http.Handler {
	mux := http.NewServeMux()

	// RPC Handlers
	mux.Handle(rpc.NewGraphServiceHandler(graphHandler))

	// JSON API
	mux.HandleFunc("/api/visualize", h.HandleVisualize)
	mux.HandleFunc("/api/summarize", h.HandleSummarize)

	// Streaming & health
	mux.HandleFunc("/ws/analyze", h.HandleAnalyzeWS)
	mux.HandleFunc("/healthz", h.HandleHealth)

	return middleware.CORS(mux)
}
