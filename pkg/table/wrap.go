package table

import (
	"strings"
	"unicode/utf8"
)

// Wrap breaks text into lines of at most maxChars runes, splitting only at
// whitespace. A word longer than maxChars is kept whole on a line of its own,
// so such a line may exceed maxChars. Runs of whitespace collapse to a
// single space.
//
// Wrap returns nil when maxChars <= 0 or text has no words.
func Wrap(text string, maxChars int) []string {
	if maxChars <= 0 {
		return nil
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var (
		lines []string
		line  strings.Builder
		n     int
	)
	for _, w := range words {
		wn := utf8.RuneCountInString(w)
		if n > 0 && n+1+wn > maxChars {
			lines = append(lines, line.String())
			line.Reset()
			n = 0
		}
		if n > 0 {
			line.WriteByte(' ')
			n++
		}
		line.WriteString(w)
		n += wn
	}
	return append(lines, line.String())
}
