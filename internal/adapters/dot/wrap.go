package dot

import (
	"slices"
	"strings"
)

// breakChars are the characters a long line may be broken after.
var breakChars = []rune{' ', '\n', '\t', '-', ':', ';', '.', ',', '!', '/', '\\'}

// Wrap splits text into display lines of at most width runes where possible.
// Each newline-separated line is broken after the last break character that keeps
// the line within width, or after the first break character past width when
// there is none; a line without any break character is never split. Break
// characters stay at the end of their line, so joining the result reproduces
// the text without its newlines.
func Wrap(text string, width int) []string {
	var out []string
	for line := range strings.SplitSeq(text, "\n") {
		out = append(out, wrapLine([]rune(line), width)...)
	}
	return out
}

func wrapLine(line []rune, width int) []string {
	if len(line) == 0 {
		return []string{""}
	}

	var out []string
	offset := 0
	for offset < len(line) {
		if len(line)-offset <= width {
			out = append(out, string(line[offset:]))
			break
		}

		pos := lastBreak(line, offset, offset+width-1)
		if pos < 0 {
			pos = firstBreak(line, offset+width)
		}
		if pos < 0 {
			out = append(out, string(line[offset:]))
			break
		}

		out = append(out, string(line[offset:pos+1]))
		offset = pos + 1
	}
	return out
}

// lastBreak returns the index of the last break character in line[from:to+1], or -1.
func lastBreak(line []rune, from, to int) int {
	for i := to; i >= from; i-- {
		if slices.Contains(breakChars, line[i]) {
			return i
		}
	}
	return -1
}

// firstBreak returns the index of the first break character at or after from, or -1.
func firstBreak(line []rune, from int) int {
	for i := from; i < len(line); i++ {
		if slices.Contains(breakChars, line[i]) {
			return i
		}
	}
	return -1
}
