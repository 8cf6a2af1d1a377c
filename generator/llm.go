package generator

import "context"

// Narrator writes the Markdown-lite story for a request. Implementations
// must keep the line grammar understood by package render.
type Narrator interface {
	Name() string
	Narrate(ctx context.Context, req Request) (string, error)
}

// LLMSettings configures model-backed narrators.
type LLMSettings struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
}
