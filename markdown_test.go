// FILE: docsync/markdown_test.go
package docsync

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkdownToValue(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{"Nil", nil, ""},
		{"SingleLine", "This is a sentence.", "This is a sentence."},
		{"JoinsLines", "This is a\nsentence.\n", "This is a sentence."},
		{"CollapsesSpaces", "  Too   many\t spaces  ", "Too many spaces"},
		{"KeepsParagraphs", "One.\n\nTwo\nlines.\n", "One.\n\nTwo lines."},
		{"BlankLineWithSpaces", "One.\n   \nTwo.", "One.\n\nTwo."},
		{"WindowsNewlines", "A\r\nB\r\n\r\nC", "A B\n\nC"},
		{"Number", 42, "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Markdown.ToValue(tt.input))
		})
	}
}

func TestMarkdownToData(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{"Empty", "", ""},
		{"Nil", nil, ""},
		{"OneSentence", "This is a sentence.", "This is a sentence.\n"},
		{
			"SentencePerLine",
			"This is the first sentence. This is the second sentence.\nThis is the third sentence.\n",
			"This is the first sentence.\nThis is the second sentence.\nThis is the third sentence.\n",
		},
		{"Punctuation", "Really? Yes! (Quite.) Done.", "Really?\nYes!\n(Quite.)\nDone.\n"},
		{"Quoted", `He said "stop." Then left.`, "He said \"stop.\"\nThen left.\n"},
		{"Paragraphs", "First one. Second.\n\nNext.", "First one.\nSecond.\n\nNext.\n"},
		{"Abbreviation", "Version 1.2 is out.", "Version 1.2 is out.\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Markdown.ToData(tt.input))
		})
	}
}

func TestMarkdownRoundTrip(t *testing.T) {
	text := "First paragraph has two sentences. Here is the second.\n\nSecond paragraph."
	assert.Equal(t, text, Markdown.ToValue(Markdown.ToData(text)))
}
