package port

import "context"

// CompletionProvider abstracts the external text-completion service.
// Implementations can target Ollama, an OpenAI-compatible router, or a fake.
type CompletionProvider interface {
	// ModelName returns the identifier of the model being used.
	ModelName() string

	// Complete sends prompt as a single user message and returns the text
	// of the completion.
	Complete(ctx context.Context, prompt string) (string, error)
}
