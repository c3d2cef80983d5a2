package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"repograph/internal/graph"
	t "repograph/internal/types"
)

const (
	analyzeWSWriteWait = 10 * time.Second
	analyzeWSPongWait  = 60 * time.Second
	analyzeWSPingEvery = (analyzeWSPongWait * 9) / 10
)

var analyzeWSUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

// analyzeWSOutbound is one message of the analyze stream: any number of
// "progress" messages followed by exactly one "result" or "error".
type analyzeWSOutbound struct {
	Type    string         `json:"type"`
	Stage   graph.Stage    `json:"stage,omitempty"`
	Done    int            `json:"done,omitempty"`
	Total   int            `json:"total,omitempty"`
	Code    string         `json:"code,omitempty"`
	Message string         `json:"message,omitempty"`
	Result  *t.GraphResult `json:"result,omitempty"`
}

// HandleAnalyzeWS serves GET /ws/analyze?repo_url=... and streams pipeline
// progress while the graph is assembled. The connection closes after the
// final message.
func (h *Handler) HandleAnalyzeWS(w http.ResponseWriter, r *http.Request) {
	repoURL := strings.TrimSpace(r.URL.Query().Get("repo_url"))
	if repoURL == "" {
		http.Error(w, "repo_url is required", http.StatusBadRequest)
		return
	}

	conn, err := analyzeWSUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	if err := conn.SetReadDeadline(time.Now().Add(analyzeWSPongWait)); err != nil {
		h.log.Printf("analyze ws set read deadline failed: %v", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(analyzeWSPongWait))
	})

	// The reader only notices a client going away; inbound messages are
	// ignored.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	writeCh := make(chan analyzeWSOutbound, 32)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		ticker := time.NewTicker(analyzeWSPingEvery)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case out, ok := <-writeCh:
				if !ok {
					_ = conn.SetWriteDeadline(time.Now().Add(analyzeWSWriteWait))
					_ = conn.WriteMessage(websocket.CloseMessage,
						websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
					return
				}
				if err := conn.SetWriteDeadline(time.Now().Add(analyzeWSWriteWait)); err != nil {
					return
				}
				if err := conn.WriteJSON(out); err != nil {
					return
				}
			case <-ticker.C:
				if err := conn.SetWriteDeadline(time.Now().Add(analyzeWSWriteWait)); err != nil {
					return
				}
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	res, err := h.analyzer.AssembleWithProgress(ctx, repoURL, func(e graph.Event) {
		pushAnalyzeWS(writeCh, analyzeWSOutbound{
			Type:    "progress",
			Stage:   e.Stage,
			Done:    e.Done,
			Total:   e.Total,
			Message: e.Message,
		})
	})
	final := analyzeWSOutbound{Type: "result", Result: res}
	if err != nil {
		h.log.Printf("analyze ws %q: %v", repoURL, err)
		final = analyzeWSOutbound{
			Type:    "error",
			Code:    graph.KindOf(err).String(),
			Message: graph.UserMessage(err),
		}
	}
	select {
	case writeCh <- final:
	case <-writerDone:
	}
	close(writeCh)
	<-writerDone
}

// pushAnalyzeWS never blocks the pipeline: when the buffer is full the
// oldest queued progress message is dropped.
func pushAnalyzeWS(writeCh chan analyzeWSOutbound, out analyzeWSOutbound) {
	select {
	case writeCh <- out:
		return
	default:
	}
	select {
	case <-writeCh:
	default:
	}
	select {
	case writeCh <- out:
	default:
	}
}
