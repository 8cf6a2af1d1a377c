package generator

import "context"

// TemplateNarrator fills the fixed story template; it never calls out.
type TemplateNarrator struct{}

func (TemplateNarrator) Name() string { return "template" }

func (TemplateNarrator) Narrate(_ context.Context, req Request) (string, error) {
	return Compose(req), nil
}
