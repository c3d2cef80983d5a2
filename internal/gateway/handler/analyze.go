package handler

import (
	"net/http"

	"repograph/internal/graph"
)

type visualizeRequest struct {
	RepoURL string `json:"repoUrl"`
}

// HandleVisualize serves POST /api/visualize.
func (h *Handler) HandleVisualize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var in visualizeRequest
	if err := decodeBody(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, MsgBadBody)
		return
	}
	res, err := h.analyzer.AssembleWithProgress(r.Context(), in.RepoURL, nil)
	if err != nil {
		h.log.Printf("visualize %q: %v", in.RepoURL, err)
		writeError(w, GraphStatus(err), graph.UserMessage(err))
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type summarizeRequest struct {
	Code string `json:"code"`
}

type summarizeResponse struct {
	Summary string `json:"summary"`
}

// HandleSummarize serves POST /api/summarize.
func (h *Handler) HandleSummarize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var in summarizeRequest
	if err := decodeBody(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, MsgBadBody)
		return
	}
	summary, err := h.summarizer.Summarize(r.Context(), in.Code)
	if err != nil {
		status, msg := SummaryFailure(err)
		if status == http.StatusInternalServerError {
			h.log.Printf("summarize: %v", err)
		}
		writeError(w, status, msg)
		return
	}
	writeJSON(w, http.StatusOK, summarizeResponse{Summary: summary})
}

// HandleHealth serves GET /healthz.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
