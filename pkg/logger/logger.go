package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/perarneng/flaggmail/pkg/interfaces"
)

type ColorLogger struct {
	out     io.Writer
	verbose bool
	now     func() time.Time
}

type Option func(*ColorLogger)

// WithWriter sends log lines to w instead of stdout.
func WithWriter(w io.Writer) Option {
	return func(l *ColorLogger) { l.out = w }
}

// WithVerbose enables Debug output.
func WithVerbose(verbose bool) Option {
	return func(l *ColorLogger) { l.verbose = verbose }
}

func NewLogger(opts ...Option) interfaces.Logger {
	l := &ColorLogger{
		out: os.Stdout,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

var (
	infoColor  = color.New(color.FgGreen).SprintFunc()
	errorColor = color.New(color.FgRed).SprintFunc()
	warnColor  = color.New(color.FgYellow).SprintFunc()
	debugColor = color.New(color.FgCyan).SprintFunc()
)

func (l *ColorLogger) log(level, message string, colorFunc func(...interface{}) string) {
	timestamp := l.now().Format("2006-01-02 15:04:05")
	fmt.Fprintf(l.out, "%s %s %s\n", timestamp, colorFunc(level), message)
}

func (l *ColorLogger) Info(message string) {
	l.log("INFO", message, infoColor)
}

func (l *ColorLogger) Error(message string) {
	l.log("ERROR", message, errorColor)
}

func (l *ColorLogger) Warn(message string) {
	l.log("WARN", message, warnColor)
}

func (l *ColorLogger) Debug(message string) {
	if !l.verbose {
		return
	}
	l.log("DEBUG", message, debugColor)
}
