// Package render classifies Markdown-lite story lines into display blocks.
package render

import "strings"

const (
	emphasisDelim = "**"
	captionDelim  = "*"
	ruleToken     = "---"
)

// Line classifies a single line. The bool is false for blank lines,
// which produce no block.
func Line(line string) (Block, bool) {
	switch {
	case strings.HasPrefix(line, "# "):
		return Block{Kind: Heading1, Text: strings.TrimPrefix(line, "# "), Source: line}, true
	case strings.HasPrefix(line, "## "):
		return Block{Kind: Heading2, Text: strings.TrimPrefix(line, "## "), Source: line}, true
	case strings.HasPrefix(line, "### "):
		return Block{Kind: Heading3, Text: strings.TrimPrefix(line, "### "), Source: line}, true
	case strings.HasPrefix(line, "- "):
		rest := strings.TrimPrefix(line, "- ")
		return Block{Kind: ListItem, Text: plain(rest), Spans: Spans(rest), Source: line}, true
	case strings.HasPrefix(line, captionDelim) && strings.HasSuffix(line, captionDelim):
		return Block{Kind: Caption, Text: strings.ReplaceAll(line, captionDelim, ""), Source: line}, true
	case strings.TrimSpace(line) == ruleToken:
		return Block{Kind: Separator, Source: line}, true
	case strings.TrimSpace(line) != "":
		return Block{Kind: Paragraph, Text: plain(line), Spans: Spans(line), Source: line}, true
	}
	return Block{}, false
}

// Document classifies every line of doc in order.
func Document(doc string) []Block {
	lines := strings.Split(doc, "\n")
	blocks := make([]Block, 0, len(lines))
	for _, l := range lines {
		if b, ok := Line(strings.TrimSuffix(l, "\r")); ok {
			blocks = append(blocks, b)
		}
	}
	return blocks
}

// Spans splits s on the emphasis delimiter; odd segments are emphasized.
// Unbalanced delimiters just flip styling for the remainder.
func Spans(s string) []Span {
	parts := strings.Split(s, emphasisDelim)
	spans := make([]Span, 0, len(parts))
	for i, p := range parts {
		if p == "" {
			continue
		}
		spans = append(spans, Span{Text: p, Emphasis: i%2 == 1})
	}
	return spans
}

func plain(s string) string {
	return strings.ReplaceAll(s, emphasisDelim, "")
}
