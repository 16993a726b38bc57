package logger

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func newTestLogger(buf *bytes.Buffer, verbose bool) *ColorLogger {
	l := NewLogger(WithWriter(buf), WithVerbose(verbose)).(*ColorLogger)
	l.now = func() time.Time { return time.Date(2024, 3, 9, 14, 5, 6, 0, time.UTC) }
	return l
}

func TestColorLogger_Format(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	var buf bytes.Buffer
	l := newTestLogger(&buf, false)

	l.Info("connected")
	l.Warn("slow")
	l.Error("boom")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{
		"2024-03-09 14:05:06 INFO connected",
		"2024-03-09 14:05:06 WARN slow",
		"2024-03-09 14:05:06 ERROR boom",
	}, lines)
}

func TestColorLogger_DebugRequiresVerbose(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	var quiet bytes.Buffer
	newTestLogger(&quiet, false).Debug("hidden")
	assert.Empty(t, quiet.String())

	var loud bytes.Buffer
	newTestLogger(&loud, true).Debug("shown")
	assert.Equal(t, "2024-03-09 14:05:06 DEBUG shown\n", loud.String())
}
