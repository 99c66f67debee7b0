package formatting

import (
	"fmt"
	"strings"
)

const (
	MsgPong             = "🏓 Pong from the rules bot!"
	MsgSomethingWrong   = "Something went wrong."
	MsgQuestionRequired = "Please provide a question."
)

// MsgCommandList renders a heading line followed by one " - name" line per command.
func MsgCommandList(heading string, names []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (%d):\n", heading, len(names))
	for _, name := range names {
		sb.WriteString(" - " + name + "\n")
	}
	return sb.String()
}
