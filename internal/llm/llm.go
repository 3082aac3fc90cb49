package llm

import (
	"context"
	"errors"
)

// Summarizer abstracts the text-generation provider used to turn extracted
// document text into a structured field value.
type Summarizer interface {
	Summarize(ctx context.Context, text string, prompt string) (string, error)
}

// ErrNotConfigured is returned by the placeholder summarizer.
var ErrNotConfigured = errors.New("llm provider not configured")

// Placeholder is a stub implementation until provider wiring is added.
type Placeholder struct{}

// Summarize returns ErrNotConfigured.
func (Placeholder) Summarize(ctx context.Context, text string, prompt string) (string, error) {
	_ = ctx
	_ = text
	_ = prompt
	return "", ErrNotConfigured
}
