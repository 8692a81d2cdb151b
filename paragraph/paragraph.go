// Package paragraph converts text between its hard-wrapped display form
// and the one-line-per-paragraph form sent to the model.
package paragraph

import (
	"regexp"
	"strings"
)

// Width is the target line width Prettify wraps to.
const Width = 70

// paraBreak matches a paragraph break: a run of two or more newlines.
var paraBreak = regexp.MustCompile(`\n{2,}`)

// Normalize removes hard wrapping: each paragraph (text separated by one
// or more blank lines) collapses to a single trimmed line, and paragraphs
// are rejoined with single newlines. Any run of two or more newlines
// counts as one paragraph break; whitespace-only paragraphs are dropped.
// Normalize is idempotent and returns "" for whitespace-only input.
func Normalize(text string) string {
	var grafs []string
	for _, graf := range paraBreak.Split(strings.TrimSpace(text), -1) {
		graf = strings.ReplaceAll(strings.TrimSpace(graf), "\n", " ")
		if graf != "" {
			grafs = append(grafs, graf)
		}
	}
	return strings.Join(grafs, "\n")
}

// Prettify restores display form: each line becomes a word-wrapped
// paragraph and paragraphs are rejoined separated by blank lines. Words
// are never split, so only a single oversized word can exceed Width.
func Prettify(text string) string {
	grafs := strings.Split(strings.TrimSpace(text), "\n")
	pretty := make([]string, len(grafs))
	for i, graf := range grafs {
		pretty[i] = wrap(graf, Width)
	}
	return strings.Join(pretty, "\n\n")
}

// wrap greedily packs words into lines of at most width characters.
func wrap(s string, width int) string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(words[0])
	lineLen := len(words[0])
	for _, word := range words[1:] {
		if lineLen+1+len(word) > width {
			b.WriteByte('\n')
			b.WriteString(word)
			lineLen = len(word)
			continue
		}
		b.WriteByte(' ')
		b.WriteString(word)
		lineLen += 1 + len(word)
	}
	return b.String()
}
