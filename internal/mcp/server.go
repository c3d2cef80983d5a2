package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	ServerName    = "repograph"
	ServerVersion = "0.1.0"
)

// NewServer publishes every tool of r on an MCP server.
func NewServer(r *Registry, logger *log.Logger) *server.MCPServer {
	if logger == nil {
		logger = log.Default()
	}
	s := server.NewMCPServer(ServerName, ServerVersion, server.WithToolCapabilities(false))
	for _, spec := range r.Specs() {
		s.AddTool(mcpgo.NewToolWithRawSchema(spec.Name, spec.Description, spec.InputSchema), toolHandler(r, spec.Name, logger))
	}
	return s
}

// toolHandler adapts a registry tool to mcp-go. Tool failures become error
// results the model can read; only unexpected failures are logged.
func toolHandler(r *Registry, name string, logger *log.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
		args, err := json.Marshal(req.GetArguments())
		if err != nil {
			return mcpgo.NewToolResultError("invalid arguments: " + err.Error()), nil
		}
		out, err := r.Call(ctx, name, args)
		if err != nil {
			var te *ToolError
			if !errors.As(err, &te) {
				logger.Printf("mcp tool %s: %v", name, err)
			}
			return mcpgo.NewToolResultError(err.Error()), nil
		}
		return mcpgo.NewToolResultText(string(out)), nil
	}
}

// ServeStdio runs s over the given streams until ctx is done or in closes.
func ServeStdio(ctx context.Context, s *server.MCPServer, in io.Reader, out io.Writer, logger *log.Logger) error {
	stdio := server.NewStdioServer(s)
	if logger != nil {
		stdio.SetErrorLogger(logger)
	}
	return stdio.Listen(ctx, in, out)
}
