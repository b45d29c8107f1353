package llm

import "context"

// Provider defines the interface for completion providers. The chat service
// depends on it so tests can substitute a canned or failing provider.
type Provider interface {
	// Complete sends a single user message to the model and returns the
	// assistant reply text.
	Complete(ctx context.Context, content string) (string, error)
}
