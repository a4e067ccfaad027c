// FILE: docsync/markdown.go
package docsync

import (
	"regexp"
	"strings"
)

var (
	paragraphBreak = regexp.MustCompile(`\n[ \t]*\n`)
	sentenceEnd    = regexp.MustCompile(`([.!?]["')\]]*) +`)
)

// MarkdownConverter maps long text. In memory the text is one normalized
// paragraph per blank-line separated block; in the file every sentence
// starts a new line so that the text is emitted as a literal block.
type MarkdownConverter struct{}

func (MarkdownConverter) ToValue(data any) any {
	s, _ := asString(data)
	return joinParagraphs(s)
}

func (MarkdownConverter) ToData(value any) any {
	s, _ := asString(value)
	text := joinParagraphs(s)
	if text == "" {
		return ""
	}

	paragraphs := strings.Split(text, "\n\n")
	for i, p := range paragraphs {
		paragraphs[i] = sentenceEnd.ReplaceAllString(p, "$1\n")
	}
	return strings.Join(paragraphs, "\n\n") + "\n"
}

// joinParagraphs collapses whitespace inside each paragraph and keeps one
// blank line between paragraphs.
func joinParagraphs(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	var paragraphs []string
	for _, p := range paragraphBreak.Split(s, -1) {
		if p = strings.Join(strings.Fields(p), " "); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return strings.Join(paragraphs, "\n\n")
}
