package generator

import (
	"fmt"
	"strings"
)

// Prompt is the message set sent to a chat model.
type Prompt struct {
	System string
	User   string
}

// BuildRewritePrompt asks the model to personalize the template draft
// while keeping the renderer's line grammar intact.
func BuildRewritePrompt(req Request) Prompt {
	var sb strings.Builder
	sb.WriteString("You are a climate storyteller. Rewrite the draft below for the reader's location. Output only the story.\n")
	sb.WriteString("Rules:\n")
	sb.WriteString("- Keep the first line as a level-1 heading starting with \"# \".\n")
	sb.WriteString("- Use only \"## \" and \"### \" for sub-headings.\n")
	sb.WriteString("- List items start with \"- \"; emphasis uses **double asterisks** only.\n")
	sb.WriteString("- Keep the closing italic lines and the \"---\" separator.\n")
	sb.WriteString("- Do not invent statistics beyond those in the draft.\n")
	if labels := labelList(req.Topics); labels != "" {
		sb.WriteString(fmt.Sprintf("- Focus on: %s.\n", labels))
	}

	user := fmt.Sprintf("Location: %s\n\nDraft:\n%s", req.Location, Compose(req))

	return Prompt{
		System: sb.String(),
		User:   user,
	}
}
