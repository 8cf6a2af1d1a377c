// Package publisher turns stories into shareable HTML pages.
package publisher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"go.uber.org/zap"

	"empathybridge/generator"
)

// Page describes a published story.
type Page struct {
	StoryID string `json:"story_id"`
	Path    string `json:"path"`
	URL     string `json:"url"`
}

// Publisher writes sanitized story pages into a share directory.
type Publisher struct {
	dir     string
	urlBase string
	policy  *bluemonday.Policy
	logger  *zap.Logger
}

// New creates the share directory if needed. urlBase is the URL prefix
// the directory is served under, e.g. "/shared".
func New(dir, urlBase string, logger *zap.Logger) (*Publisher, error) {
	if dir == "" {
		return nil, errors.New("share dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create share dir: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{
		dir:     dir,
		urlBase: urlBase,
		policy:  newPolicy(),
		logger:  logger,
	}, nil
}

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}

// Dir is the directory pages are written to.
func (p *Publisher) Dir() string { return p.dir }

// Publish renders story and writes <dir>/<id>.html.
func (p *Publisher) Publish(ctx context.Context, story generator.Story) (Page, error) {
	if _, err := uuid.Parse(story.ID); err != nil {
		return Page{}, fmt.Errorf("invalid story id %q", story.ID)
	}
	body, err := p.HTML(story.Markdown)
	if err != nil {
		return Page{}, err
	}
	if err := ctx.Err(); err != nil {
		return Page{}, err
	}

	name := story.ID + ".html"
	dst := filepath.Join(p.dir, name)
	if err := os.WriteFile(dst, []byte(page(story.Title, body)), 0o644); err != nil {
		return Page{}, fmt.Errorf("write page: %w", err)
	}
	p.logger.Info("story published", zap.String("story_id", story.ID), zap.String("path", dst))

	return Page{StoryID: story.ID, Path: dst, URL: path.Join(p.urlBase, name)}, nil
}

// HTML converts story Markdown to a sanitized HTML fragment.
func (p *Publisher) HTML(md string) (string, error) {
	raw, err := mdToHTML(md)
	if err != nil {
		return "", err
	}
	return p.policy.Sanitize(raw), nil
}

func mdToHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func page(title, body string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
</head>
<body>
<article>
%s</article>
</body>
</html>
`, html.EscapeString(title), body)
}
