package ai

import (
	"context"
)

// Completer sends a prompt to a text-completion model and returns its textual answer.
type Completer interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}
