package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"repograph/internal/llm"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize [file]",
	Short: "Summarize a source file with the configured model (reads stdin when file is - or omitted)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		code, err := readSource(cmd.InOrStdin(), args)
		if err != nil {
			return err
		}
		_, deps, err := loadDeps(cmd.Context(), cliLogger(cmd))
		if err != nil {
			return err
		}
		defer deps.Close()

		summary, err := deps.Summarizer.Summarize(cmd.Context(), code)
		if err != nil {
			switch {
			case errors.Is(err, llm.ErrNotConfigured):
				return fmt.Errorf("GEMINI_API_KEY is not set")
			case errors.Is(err, llm.ErrEmptyInput):
				return fmt.Errorf("no code provided")
			}
			return fmt.Errorf("summarize: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), summary)
		return nil
	},
}

func readSource(stdin io.Reader, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read source: %w", err)
	}
	return string(b), nil
}
