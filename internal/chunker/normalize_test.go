package chunker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"whitespace only", " \n\t\n ", ""},
		{"crlf", "first\r\nsecond", "first\nsecond"},
		{"lone cr", "first\rsecond", "first\nsecond"},
		{"spaces and tabs", "a  \t  b\tc", "a b c"},
		{"newlines untouched", "a\nb", "a\nb"},
		{"blank line run", "a\n\n\n\nb", "a\n\nb"},
		{"blank lines with spaces", "a\n \n\t\n\nb", "a\n\nb"},
		{"standalone number", "intro\n12\nbody", "intro\nbody"},
		{"padded number", "intro\n   7  \nbody", "intro\nbody"},
		{"page header", "end of page.\nPage 3 of 10\nNext page", "end of page.\nNext page"},
		{"page header upper", "a\nPAGE 4\nb", "a\nb"},
		{"page header lower", "a\npage 12 - draft\nb", "a\nb"},
		{"paragraph kept around number", "para one\n\n7\n\npara two", "para one\n\npara two"},
		{"consecutive numbers", "a\n1\n2\n3\nb", "a\nb"},
		{"leading page number", "1\nTitle", "Title"},
		{"number inside text kept", "Chapter 12\n12 monkeys", "Chapter 12\n12 monkeys"},
		{"page word kept", "Pages of history\nPage turner", "Pages of history\nPage turner"},
		{"trimmed", "  \n\n hello world \n\n ", "hello world"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain",
		"a\r\n\r\n\r\n\r\nb",
		"  x  \n\n\n  \n 5 \n\n\ny\t\tz  ",
		"Page 1\n\nIntro text.\n\n\n2\n\n\nPage 2\nMore   text.\r\n",
		"1\n2\n\n3\n\n\n",
		" lead\n \ntrail ",
		"Header\n\n\n\n\n\n\nFooter\n 42 ",
	}

	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestNormalize_NoArtifactsRemain(t *testing.T) {
	in := "Title\r\n\r\n\r\n\r\nBody  text\t\there.\n14\nPage 2\nMore."
	out := Normalize(in)

	assert.NotContains(t, out, "\r")
	assert.NotContains(t, out, "\n\n\n")
	assert.NotContains(t, out, "  ")
	assert.NotContains(t, out, "\t")
	assert.NotContains(t, out, "14")
	assert.NotContains(t, out, "Page 2")
	assert.Equal(t, "Title\n\nBody text here.\nMore.", out)
}
