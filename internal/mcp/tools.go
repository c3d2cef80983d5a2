package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"repograph/internal/graph"
	"repograph/internal/llm"
	t "repograph/internal/types"
)

// Analyzer builds a dependency graph for a repository URL.
type Analyzer interface {
	Assemble(ctx context.Context, repoURL string) (*t.GraphResult, error)
}

// Summarizer turns code into a natural-language summary.
type Summarizer interface {
	Summarize(ctx context.Context, code string) (string, error)
}

// ToolError is a failure the calling model should see as a tool result
// rather than a protocol error.
type ToolError struct {
	Message string
}

func (e *ToolError) Error() string { return e.Message }

// RegisterDefaultTools installs analyze_repository and summarize_code.
func RegisterDefaultTools(r *Registry, a Analyzer, s Summarizer) {
	if r == nil {
		return
	}
	r.Register(&analyzeTool{analyzer: a})
	r.Register(&summarizeTool{summarizer: s})
}

// ----- analyze_repository -----

type analyzeInput struct {
	RepoURL string `json:"repo_url"`
	// IncludeContent keeps base64 file contents in nodes and the tree. Off by
	// default to keep tool results small.
	IncludeContent bool `json:"include_content,omitempty"`
}

type analyzeTool struct {
	analyzer Analyzer
}

func (a *analyzeTool) Spec() ToolSpec {
	return ToolSpec{
		Name:        "analyze_repository",
		Description: "Build the file dependency graph of a public GitHub repository: files, import edges, folder tree, owner info and language breakdown.",
		InputSchema: json.RawMessage(`{
  "type": "object",
  "properties": {
    "repo_url": {"type": "string", "description": "GitHub repository URL, e.g. https://github.com/owner/repo"},
    "include_content": {"type": "boolean", "description": "Include base64 file contents"}
  },
  "required": ["repo_url"]
}`),
	}
}

func (a *analyzeTool) Call(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var in analyzeInput
	if err := json.Unmarshal(input, &in); err != nil {
		return nil, &ToolError{Message: fmt.Sprintf("invalid arguments: %v", err)}
	}
	res, err := a.analyzer.Assemble(ctx, in.RepoURL)
	if err != nil {
		var ge *graph.Error
		if errors.As(err, &ge) {
			return nil, &ToolError{Message: ge.Message}
		}
		return nil, err
	}
	if !in.IncludeContent {
		res = stripContent(res)
	}
	return json.Marshal(res)
}

// stripContent returns a copy of res without file contents.
func stripContent(res *t.GraphResult) *t.GraphResult {
	out := *res
	out.Nodes = make([]t.GraphNode, len(res.Nodes))
	for i, n := range res.Nodes {
		n.Content = ""
		out.Nodes[i] = n
	}
	out.Tree = stripTree(res.Tree)
	return &out
}

func stripTree(nodes []*t.FolderTreeNode) []*t.FolderTreeNode {
	if nodes == nil {
		return nil
	}
	out := make([]*t.FolderTreeNode, len(nodes))
	for i, n := range nodes {
		c := *n
		c.Content = ""
		c.Children = stripTree(n.Children)
		out[i] = &c
	}
	return out
}

// ----- summarize_code -----

type summarizeInput struct {
	Code string `json:"code"`
}

type summarizeOutput struct {
	Summary string `json:"summary"`
}

type summarizeTool struct {
	summarizer Summarizer
}

func (s *summarizeTool) Spec() ToolSpec {
	return ToolSpec{
		Name:        "summarize_code",
		Description: "Summarize a source file: overall purpose and key components.",
		InputSchema: json.RawMessage(`{
  "type": "object",
  "properties": {
    "code": {"type": "string", "description": "Source code to summarize"}
  },
  "required": ["code"]
}`),
	}
}

func (s *summarizeTool) Call(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var in summarizeInput
	if err := json.Unmarshal(input, &in); err != nil {
		return nil, &ToolError{Message: fmt.Sprintf("invalid arguments: %v", err)}
	}
	if s.summarizer == nil {
		return nil, &ToolError{Message: "AI API key is not configured on the server."}
	}
	summary, err := s.summarizer.Summarize(ctx, in.Code)
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		return nil, &ToolError{Message: "AI API key is not configured on the server."}
	case errors.Is(err, llm.ErrEmptyInput):
		return nil, &ToolError{Message: "No code provided for summarization."}
	case err != nil:
		return nil, err
	}
	return json.Marshal(summarizeOutput{Summary: summary})
}
