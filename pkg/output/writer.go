package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/perarneng/flaggmail/pkg/interfaces"
)

var _ interfaces.ReportWriter = (*FileWriter)(nil)

type FileWriter struct {
	logger interfaces.Logger
	now    func() time.Time
}

func NewFileWriter(logger interfaces.Logger) *FileWriter {
	return &FileWriter{
		logger: logger,
		now:    time.Now,
	}
}

func (w *FileWriter) validateParentDir(path string) error {
	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			w.logger.Error(fmt.Sprintf("Report directory does not exist: %s", dir))
			return fmt.Errorf("report directory does not exist: %s", dir)
		}
		return fmt.Errorf("error checking report directory: %w", err)
	}

	if !info.IsDir() {
		w.logger.Error(fmt.Sprintf("Report path parent is not a directory: %s", dir))
		return fmt.Errorf("report path parent is not a directory: %s", dir)
	}
	return nil
}

// WriteReport writes a plain-text summary of the run to path. An empty path
// is a no-op.
func (w *FileWriter) WriteReport(report *interfaces.RunReport, path string) error {
	if path == "" {
		return nil
	}
	if err := w.validateParentDir(path); err != nil {
		return err
	}

	if err := os.WriteFile(path, []byte(w.render(report)), 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	w.logger.Info(fmt.Sprintf("Wrote run report to %s", path))
	return nil
}

func (w *FileWriter) render(report *interfaces.RunReport) string {
	processed, matched, labeled, failed := report.Counts()

	var b strings.Builder
	fmt.Fprintf(&b, `Run: %s
Mailbox: %s
Label: %s
Dry run: %t
Messages: %d
Processed: %d
Matched: %d
Labeled: %d
Failed: %d

Messages:
`, w.now().Format(time.RFC3339), report.Mailbox, report.LabelName, report.DryRun,
		len(report.Results), processed, matched, labeled, failed)

	for i, res := range report.Results {
		fmt.Fprintf(&b, "  %d. %s %s\n", i+1, res.ID, describe(res))
	}
	return b.String()
}

func describe(res interfaces.MessageResult) string {
	switch {
	case res.Err != nil:
		return fmt.Sprintf("failed: %v", res.Err)
	case res.Labeled:
		return fmt.Sprintf("labeled (matched %q)", res.MatchedWord)
	case res.MatchedWord != "":
		return fmt.Sprintf("matched %q", res.MatchedWord)
	default:
		return "no match"
	}
}
