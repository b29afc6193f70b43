package utils

import (
	"regexp"
	"strings"
)

// ParagraphDelimiter wraps every rewritten paragraph in the model's reply.
const ParagraphDelimiter = "========"

var (
	blankLineRe = regexp.MustCompile(`\n\s*\n`)
	delimiterRe = regexp.MustCompile(ParagraphDelimiter + `\s*\n?`)
)

// SplitParagraphs splits text on blank lines. A run of newlines with only
// whitespace between them counts as a single boundary; empty segments are dropped.
func SplitParagraphs(text string) []string {
	return compact(blankLineRe.Split(text, -1), "")
}

// SplitDelimited recovers paragraphs from a reply that wraps each one in
// ParagraphDelimiter lines. It is lenient: a reply without any delimiter comes
// back as a single paragraph, and stray segments that still contain the
// delimiter are discarded.
func SplitDelimited(text string) []string {
	return compact(delimiterRe.Split(text, -1), ParagraphDelimiter)
}

func compact(parts []string, reject string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if reject != "" && strings.Contains(p, reject) {
			continue
		}
		out = append(out, p)
	}
	return out
}
