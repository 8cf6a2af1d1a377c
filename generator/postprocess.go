package generator

import (
	"regexp"
	"strings"

	"empathybridge/render"
)

var titleRe = regexp.MustCompile(`(?m)^#\s+(.+)$`)

// PostProcess validates narrator output and fills the derived story fields.
func PostProcess(raw string, req Request) (Story, error) {
	md := strings.TrimSpace(raw)
	if md == "" {
		return Story{}, ErrEmptyStory
	}

	return Story{
		Request:  req,
		Title:    extractTitle(md),
		Digest:   extractDigest(md),
		Markdown: md,
		Blocks:   render.Document(md),
	}, nil
}

func extractTitle(md string) string {
	m := titleRe.FindStringSubmatch(md)
	if len(m) >= 2 {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// The digest is the first paragraph line, with emphasis markers removed.
func extractDigest(md string) string {
	for _, line := range strings.Split(md, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		return strings.ReplaceAll(trimmed, "**", "")
	}
	return ""
}
