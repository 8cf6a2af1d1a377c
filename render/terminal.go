package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	ocean = lipgloss.Color("#1e6f9f")
	earth = lipgloss.Color("#8BC34A")
	muted = lipgloss.Color("#7a8594")

	heading1Style = lipgloss.NewStyle().Bold(true).Foreground(ocean).MarginBottom(1)
	heading2Style = lipgloss.NewStyle().Bold(true).MarginTop(1)
	heading3Style = lipgloss.NewStyle().Bold(true).Foreground(earth)
	strongStyle   = lipgloss.NewStyle().Bold(true)
	captionStyle  = lipgloss.NewStyle().Italic(true).Foreground(muted)
	ruleStyle     = lipgloss.NewStyle().Foreground(muted)
)

const ruleWidth = 48

// Terminal renders blocks for a terminal, one block per line.
func Terminal(blocks []Block) string {
	var sb strings.Builder
	for _, b := range blocks {
		switch b.Kind {
		case Heading1:
			sb.WriteString(heading1Style.Render(b.Text))
		case Heading2:
			sb.WriteString(heading2Style.Render(b.Text))
		case Heading3:
			sb.WriteString(heading3Style.Render(b.Text))
		case ListItem:
			sb.WriteString("  • ")
			sb.WriteString(inline(b.Spans))
		case Caption:
			sb.WriteString(captionStyle.Render(b.Text))
		case Separator:
			sb.WriteString(ruleStyle.Render(strings.Repeat("─", ruleWidth)))
		default:
			sb.WriteString(inline(b.Spans))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func inline(spans []Span) string {
	var sb strings.Builder
	for _, s := range spans {
		if s.Emphasis {
			sb.WriteString(strongStyle.Render(s.Text))
			continue
		}
		sb.WriteString(s.Text)
	}
	return sb.String()
}
