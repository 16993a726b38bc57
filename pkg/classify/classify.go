// Package classify flags message text that mentions one of a fixed set of
// marker words.
package classify

import "strings"

// MarkerWords are matched as lowercase substrings, in this order.
var MarkerWords = []string{
	"invoice",
	"urgent",
	"contract",
	"deadline",
	"important",
	"review",
	"approval",
}

// Match returns the first marker word found in text, case-insensitively.
func Match(text string) (string, bool) {
	if text == "" {
		return "", false
	}
	lower := strings.ToLower(text)
	for _, word := range MarkerWords {
		if strings.Contains(lower, strings.ToLower(word)) {
			return word, true
		}
	}
	return "", false
}

func Matches(text string) bool {
	_, ok := Match(text)
	return ok
}
