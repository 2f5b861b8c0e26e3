// Package generation abstracts the language model that writes answers.
package generation

import "context"

// Request is one generation call. System carries the specialized legal
// persona; Prompt carries the question plus retrieved context.
type Request struct {
	System      string
	Prompt      string
	MaxTokens   int
	Temperature float64
}

// Response is the model's output.
type Response struct {
	Text       string
	TokensUsed int
}

// Generator produces an answer for a request. Implementations must be safe
// for concurrent use.
type Generator interface {
	Generate(ctx context.Context, req *Request) (*Response, error)
}
