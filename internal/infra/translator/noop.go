package translator

import "context"

// NoOp is a translator that returns the input text unchanged.
// This is useful for development and tests when no translation API is configured.
type NoOp struct{}

// NewNoOp creates a new NoOp translator.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// Translate returns the original text without modification.
func (n *NoOp) Translate(_ context.Context, text, _, _ string) (string, error) {
	return text, nil
}
