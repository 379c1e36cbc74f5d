package analysis

import (
	"regexp"
	"strings"
)

var (
	jsonFenceRe  = regexp.MustCompile("```json\\s*")
	plainFenceRe = regexp.MustCompile("```\\s*")
)

// StripFences removes Markdown code fence markers and surrounding whitespace.
// Applying it twice yields the same text as applying it once.
func StripFences(text string) string {
	text = jsonFenceRe.ReplaceAllString(text, "")
	text = plainFenceRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
