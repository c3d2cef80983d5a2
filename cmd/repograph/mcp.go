package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"repograph/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve analyze_repository and summarize_code as MCP tools over stdio",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// stdout carries the protocol; logs go to stderr only.
		logger := log.New(cmd.ErrOrStderr(), "repograph-mcp: ", log.LstdFlags)
		_, deps, err := loadDeps(cmd.Context(), logger)
		if err != nil {
			return err
		}
		defer deps.Close()

		reg := mcp.NewRegistry()
		mcp.RegisterDefaultTools(reg, deps.Assembler, deps.Summarizer)
		srv := mcp.NewServer(reg, logger)
		return mcp.ServeStdio(cmd.Context(), srv, os.Stdin, os.Stdout, logger)
	},
}
