package llm

import (
	"context"
	"strings"
)

const summaryPrompt = `You are an expert code analyst. Provide a structured summary of the following code. Use the following template exactly.

Overall Purpose

    A brief, one-to-two sentence explanation of what this file does.

Key Components & Functionality

    Use an ordered list without (*) naming each important function, class or block and what it does.
    ...and so on

` + "```" + `
%CODE%
` + "```" + `
`

// SummaryPrompt renders the fixed summary template around code.
func SummaryPrompt(code string) string {
	return strings.Replace(summaryPrompt, "%CODE%", code, 1)
}

// Summarizer turns source code into a structured natural-language summary.
// The zero value and a Summarizer without a client report ErrNotConfigured.
type Summarizer struct {
	client Client
}

func NewSummarizer(c Client) *Summarizer {
	return &Summarizer{client: c}
}

// Configured reports whether Summarize can reach a model.
func (s *Summarizer) Configured() bool {
	return s != nil && s.client != nil
}

// Summarize checks configuration before input, so an unconfigured server
// answers ErrNotConfigured even for empty code.
func (s *Summarizer) Summarize(ctx context.Context, code string) (string, error) {
	if !s.Configured() {
		return "", ErrNotConfigured
	}
	if strings.TrimSpace(code) == "" {
		return "", ErrEmptyInput
	}
	return s.client.Generate(ctx, SummaryPrompt(code))
}

// Close releases the underlying client.
func (s *Summarizer) Close() error {
	if !s.Configured() {
		return nil
	}
	return s.client.Close()
}
