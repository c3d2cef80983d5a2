package server

import (
	"context"
	"io"
	"log"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repograph/internal/gateway/handler"
	"repograph/internal/gateway/handler/rpc"
	"repograph/internal/graph"
	types "repograph/internal/types"
)

type okAnalyzer struct{}

func (okAnalyzer) AssembleWithProgress(context.Context, string, graph.ProgressFunc) (*types.GraphResult, error) {
	return &types.GraphResult{Nodes: []types.GraphNode{}, Links: []types.GraphEdge{}, Tree: []*types.FolderTreeNode{}}, nil
}

func newMux() http.Handler {
	h := handler.New(okAnalyzer{}, nil, log.New(io.Discard, "", 0))
	return NewMux(h, rpc.NewGraphHandler(okAnalyzer{}, nil))
}

func TestRoutes(t *testing.T) {
	mux := newMux()
	cases := []struct {
		method, path, body string
		status             int
	}{
		{http.MethodGet, "/healthz", "", http.StatusOK},
		{http.MethodPost, "/api/visualize", `{"repoUrl":"https://github.com/o/r"}`, http.StatusOK},
		{http.MethodGet, "/api/visualize", "", http.StatusMethodNotAllowed},
		{http.MethodGet, "/nope", "", http.StatusNotFound},
	}
	for _, c := range cases {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(c.method, c.path, strings.NewReader(c.body)))
		assert.Equal(t, c.status, rec.Code, c.method+" "+c.path)
	}
}

func TestCORS(t *testing.T) {
	mux := newMux()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/visualize", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestServeAndShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := New(ln.Addr().String(), newMux(), log.New(io.Discard, "", 0))
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))
	assert.NoError(t, <-errCh)
}
