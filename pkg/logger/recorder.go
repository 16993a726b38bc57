package logger

import (
	"strings"
	"sync"
)

// Entry is a single line captured by a Recorder.
type Entry struct {
	Level   string
	Message string
}

// Recorder is an in-memory Logger used by tests to assert on log output.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) add(level, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Level: level, Message: message})
}

func (r *Recorder) Info(message string)  { r.add("INFO", message) }
func (r *Recorder) Error(message string) { r.add("ERROR", message) }
func (r *Recorder) Warn(message string)  { r.add("WARN", message) }
func (r *Recorder) Debug(message string) { r.add("DEBUG", message) }

func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), r.entries...)
}

// Messages returns the messages logged at level, in order.
func (r *Recorder) Messages(level string) []string {
	var out []string
	for _, e := range r.Entries() {
		if e.Level == level {
			out = append(out, e.Message)
		}
	}
	return out
}

// Contains reports whether any message at level contains substr.
func (r *Recorder) Contains(level, substr string) bool {
	for _, m := range r.Messages(level) {
		if strings.Contains(m, substr) {
			return true
		}
	}
	return false
}
