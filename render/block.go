package render

// Kind classifies one display block.
type Kind string

const (
	Heading1  Kind = "heading1"
	Heading2  Kind = "heading2"
	Heading3  Kind = "heading3"
	ListItem  Kind = "list_item"
	Caption   Kind = "caption"
	Separator Kind = "separator"
	Paragraph Kind = "paragraph"
)

// Span is a run of inline text, optionally emphasized.
type Span struct {
	Text     string `json:"text"`
	Emphasis bool   `json:"emphasis,omitempty"`
}

// Block is the display unit derived from exactly one source line.
type Block struct {
	Kind   Kind   `json:"kind"`
	Text   string `json:"text,omitempty"`
	Spans  []Span `json:"spans,omitempty"`
	Source string `json:"source"`
}
