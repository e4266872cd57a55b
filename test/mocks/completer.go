package mocks

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
)

// MockCompleter provides a mock implementation of enhance.Completer
type MockCompleter struct {
	CompleteFunc func(ctx context.Context, prompt string) (string, error)

	calls   atomic.Int64
	mu      sync.Mutex
	prompts []string
}

func (m *MockCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	m.calls.Add(1)
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()

	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, prompt)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return "Mock rewrite for " + topicOf(prompt) + " 🙂", nil
}

// Calls returns how many times Complete was invoked.
func (m *MockCompleter) Calls() int { return int(m.calls.Load()) }

// Prompts returns a copy of every prompt received.
func (m *MockCompleter) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}

// FailingCompleter always returns Err.
type FailingCompleter struct {
	Err error
}

func (f FailingCompleter) Complete(context.Context, string) (string, error) {
	if f.Err != nil {
		return "", f.Err
	}
	return "", fmt.Errorf("mock provider unavailable")
}

// topicOf extracts the quoted topic from a caption rewrite prompt.
func topicOf(prompt string) string {
	_, rest, ok := strings.Cut(prompt, `topic "`)
	if !ok {
		return "the day"
	}
	topic, _, _ := strings.Cut(rest, `"`)
	return topic
}
