package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitParagraphs(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "two paragraphs",
			text: "Para one.\n\nPara two.",
			want: []string{"Para one.", "Para two."},
		},
		{
			name: "whitespace between newlines counts as one boundary",
			text: "First\n \t \n\n\nSecond\n\nThird",
			want: []string{"First", "Second", "Third"},
		},
		{
			name: "single newline stays inside the paragraph",
			text: "Line one\nline two",
			want: []string{"Line one\nline two"},
		},
		{
			name: "leading and trailing blank lines dropped",
			text: "\n\n  Only  \n\n",
			want: []string{"Only"},
		},
		{
			name: "empty input",
			text: "   ",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitParagraphs(tt.text))
		})
	}
}

func TestSplitDelimited(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "well formed reply",
			text: "========\nAlpha\n========\n\n========\nBeta\n========",
			want: []string{"Alpha", "Beta"},
		},
		{
			name: "no delimiter falls back to whole reply",
			text: "Just one block of text.\n\nWith a blank line.",
			want: []string{"Just one block of text.\n\nWith a blank line."},
		},
		{
			name: "delimiter glued to text",
			text: "========Alpha\n========   \nBeta========",
			want: []string{"Alpha", "Beta"},
		},
		{
			name: "only delimiters",
			text: "========\n========\n",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitDelimited(tt.text))
		})
	}
}
