package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"repograph/internal/graph"
)

var (
	analyzeJSON     bool
	analyzeMaxEdges int
)

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print the raw result as JSON")
	analyzeCmd.Flags().IntVar(&analyzeMaxEdges, "max-edges", 40, "Edges listed in the report (0 for all)")
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [repo-url]",
	Short: "Build the dependency graph of a repository",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := cliLogger(cmd)
		_, deps, err := loadDeps(cmd.Context(), logger)
		if err != nil {
			return err
		}
		defer deps.Close()

		var progress graph.ProgressFunc
		if !analyzeJSON {
			progress = func(e graph.Event) {
				if e.Stage == graph.StageFetch || e.Stage == graph.StageExtract {
					return
				}
				fmt.Fprintln(cmd.ErrOrStderr(), progressLine(e))
			}
		}
		res, err := deps.Assembler.AssembleWithProgress(cmd.Context(), args[0], progress)
		if err != nil {
			return fmt.Errorf("%s", graph.UserMessage(err))
		}

		out := cmd.OutOrStdout()
		if analyzeJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		}
		fmt.Fprintln(out, renderReport(args[0], res, analyzeMaxEdges))
		return nil
	},
}
