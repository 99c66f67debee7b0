package rules

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"rules-bot/internal/core/domain"
)

var (
	paragraphSep  = regexp.MustCompile(`\n\s*\n`)
	sectionHeader = regexp.MustCompile(`^\[(.+?)\]\s*\n?`)
)

// Chunk splits the document on blank lines. A paragraph that opens with
// "[Title]" is named after it, otherwise "Section N".
func Chunk(text string) []domain.RuleSection {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var sections []domain.RuleSection
	for _, part := range paragraphSep.Split(text, -1) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		n := len(sections) + 1
		name := fmt.Sprintf("Section %d", n)
		body := part
		if m := sectionHeader.FindStringSubmatch(part); m != nil {
			name = strings.TrimSpace(m[1])
			body = strings.TrimSpace(part[len(m[0]):])
		}

		sections = append(sections, domain.RuleSection{
			ID:      strconv.Itoa(n),
			Section: name,
			Text:    body,
		})
	}
	return sections
}
