// Package rpc exposes the graph pipeline and the summarizer as a Connect
// service.
package rpc

import (
	"context"
	"errors"
	"net/http"

	"connectrpc.com/connect"

	"repograph/internal/gateway/handler"
	"repograph/internal/graph"
	"repograph/internal/llm"
	t "repograph/internal/types"
)

const (
	GraphServiceName = "repograph.v1.GraphService"

	AnalyzeProcedure   = "/" + GraphServiceName + "/Analyze"
	SummarizeProcedure = "/" + GraphServiceName + "/Summarize"
)

type AnalyzeRequest struct {
	RepoURL string `json:"repoUrl"`
}

type SummarizeRequest struct {
	Code string `json:"code"`
}

type SummarizeResponse struct {
	Summary string `json:"summary"`
}

type GraphHandler struct {
	analyzer   handler.Analyzer
	summarizer handler.Summarizer
}

func NewGraphHandler(a handler.Analyzer, s handler.Summarizer) *GraphHandler {
	return &GraphHandler{analyzer: a, summarizer: s}
}

func (h *GraphHandler) Analyze(ctx context.Context, req *connect.Request[AnalyzeRequest]) (*connect.Response[t.GraphResult], error) {
	res, err := h.analyzer.AssembleWithProgress(ctx, req.Msg.RepoURL, nil)
	if err != nil {
		return nil, toGraphError(err)
	}
	return connect.NewResponse(res), nil
}

func (h *GraphHandler) Summarize(ctx context.Context, req *connect.Request[SummarizeRequest]) (*connect.Response[SummarizeResponse], error) {
	summary, err := h.summarizer.Summarize(ctx, req.Msg.Code)
	if err != nil {
		return nil, toSummaryError(err)
	}
	return connect.NewResponse(&SummarizeResponse{Summary: summary}), nil
}

// NewGraphServiceHandler returns the mount path and handler for the
// service, in the shape generated Connect code uses.
func NewGraphServiceHandler(h *GraphHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(JSONCodec{})}, opts...)
	analyze := connect.NewUnaryHandler(AnalyzeProcedure, h.Analyze, opts...)
	summarize := connect.NewUnaryHandler(SummarizeProcedure, h.Summarize, opts...)
	return "/" + GraphServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case AnalyzeProcedure:
			analyze.ServeHTTP(w, r)
		case SummarizeProcedure:
			summarize.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

func toGraphError(err error) error {
	msg := errors.New(graph.UserMessage(err))
	switch graph.KindOf(err) {
	case graph.KindInvalidInput:
		return connect.NewError(connect.CodeInvalidArgument, msg)
	case graph.KindNoRelevantFiles:
		return connect.NewError(connect.CodeNotFound, msg)
	case graph.KindUpstream:
		return connect.NewError(connect.CodeUnavailable, msg)
	default:
		return connect.NewError(connect.CodeInternal, msg)
	}
}

func toSummaryError(err error) error {
	_, msg := handler.SummaryFailure(err)
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		return connect.NewError(connect.CodeFailedPrecondition, errors.New(msg))
	case errors.Is(err, llm.ErrEmptyInput):
		return connect.NewError(connect.CodeInvalidArgument, errors.New(msg))
	default:
		return connect.NewError(connect.CodeInternal, errors.New(msg))
	}
}
