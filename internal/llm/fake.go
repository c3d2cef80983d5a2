package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// FakeClient answers deterministically without network access. It is used
// by tests and when the server runs with APP_ENV=local and no API key.
type FakeClient struct {
	mu      sync.Mutex
	prompts []string
	// Err, when set, is returned by every call.
	Err error
}

func NewFakeClient() *FakeClient { return &FakeClient{} }

func (f *FakeClient) Name() string { return "FakeLLM" }
func (f *FakeClient) Close() error { return nil }

func (f *FakeClient) Generate(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	err := f.Err
	f.mu.Unlock()
	if err != nil {
		return "", err
	}
	lines := strings.Count(prompt, "\n")
	return fmt.Sprintf("Overall Purpose\n\n    Fake summary of a %d-line prompt.\n\nKey Components & Functionality\n\n    1. none\n", lines), nil
}

// Prompts returns the prompts received so far.
func (f *FakeClient) Prompts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.prompts...)
}
