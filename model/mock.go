package model

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/hupe1980/ragmesh/core"
)

// MockCompleter is a lightweight in-memory Completer useful for tests and
// examples. Responses are keyed by the user message; unmatched messages get
// a deterministic fallback text unless an error is injected.
type MockCompleter struct {
	mu        sync.Mutex
	responses map[string]string
	err       error
	requests  []core.CompletionRequest
}

// NewMockCompleter constructs an empty MockCompleter.
func NewMockCompleter() *MockCompleter {
	return &MockCompleter{responses: make(map[string]string)}
}

// AddResponse registers a deterministic canned completion for a user message.
func (m *MockCompleter) AddResponse(userMessage, response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[userMessage] = response
}

// FailWith makes every subsequent Complete call return err.
func (m *MockCompleter) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Requests returns a copy of every request seen so far, in call order.
func (m *MockCompleter) Requests() []core.CompletionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]core.CompletionRequest, len(m.requests))
	copy(out, m.requests)
	return out
}

// Complete implements core.Completer.
func (m *MockCompleter) Complete(_ context.Context, req core.CompletionRequest) (core.Completion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)
	if m.err != nil {
		return core.Completion{}, m.err
	}
	if text, ok := m.responses[req.UserMessage]; ok {
		return core.Completion{Text: text}, nil
	}
	return core.Completion{Text: fmt.Sprintf("Mock response to: %s", req.UserMessage)}, nil
}

// MockEmbedder produces deterministic unit vectors derived from the input
// text, so identical texts always map to identical vectors.
type MockEmbedder struct {
	// Dimension of produced vectors. Defaults to 8 when zero.
	Dimension int
	// Err, when set, is returned by every Embed call.
	Err error
}

// Embed implements core.Embedder.
func (m *MockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	dim := m.Dimension
	if dim <= 0 {
		dim = 8
	}
	vec := make([]float32, dim)
	var norm float64
	for i := 0; i < dim; i++ {
		var sum int
		for j, r := range text {
			sum += (j + i + 1) * int(r)
		}
		vec[i] = float32(sum%997) / 997
		norm += float64(vec[i]) * float64(vec[i])
	}
	if norm > 0 {
		scale := float32(1 / math.Sqrt(norm))
		for i := range vec {
			vec[i] *= scale
		}
	}
	return vec, nil
}

// Compile-time checks.
var (
	_ core.Completer = (*MockCompleter)(nil)
	_ core.Embedder  = (*MockEmbedder)(nil)
)
