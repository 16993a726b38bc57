package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantWord string
		wantOK   bool
	}{
		{"empty", "", "", false},
		{"no marker", "Lunch on Friday?", "", false},
		{"exact word", "invoice", "invoice", true},
		{"upper case", "URGENT: call me", "urgent", true},
		{"mixed case", "Please ReViEw this", "review", true},
		{"substring of longer word", "the contractor arrived", "contract", true},
		{"reviewer counts", "ask a reviewer", "review", true},
		{"first word in list order wins", "approval needed before the deadline for the invoice", "invoice", true},
		{"deadline before important", "Important: deadline moved", "deadline", true},
		{"approval", "Awaiting approval", "approval", true},
		{"split word does not match", "in voice", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, ok := Match(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantWord, word)
			assert.Equal(t, tt.wantOK, Matches(tt.text))
		})
	}
}
