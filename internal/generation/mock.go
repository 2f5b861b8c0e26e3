package generation

import (
	"context"
	"sync"
)

// MockGenerator is a canned generator for tests. It records every request it
// receives.
type MockGenerator struct {
	mu       sync.Mutex
	requests []*Request

	// Response is returned on success; Err, when set, wins.
	Response *Response
	Err      error
}

// NewMockGenerator creates a mock that answers with text.
func NewMockGenerator(text string) *MockGenerator {
	return &MockGenerator{
		Response: &Response{Text: text, TokensUsed: len(text) / 4},
	}
}

// Generate returns the canned response or error.
func (m *MockGenerator) Generate(ctx context.Context, req *Request) (*Response, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	return m.Response, nil
}

// Requests returns a copy of the received requests.
func (m *MockGenerator) Requests() []*Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Request, len(m.requests))
	copy(out, m.requests)
	return out
}
