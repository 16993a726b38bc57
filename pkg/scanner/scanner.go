// Package scanner runs the flagging job: list recent messages, extract their
// plaintext, and label the ones that mention a marker word.
package scanner

import (
	"context"
	"errors"
	"fmt"

	"github.com/perarneng/flaggmail/pkg/classify"
	"github.com/perarneng/flaggmail/pkg/content"
	"github.com/perarneng/flaggmail/pkg/gmail"
	"github.com/perarneng/flaggmail/pkg/interfaces"
)

// ErrAllFailed is returned when no message in a non-empty batch could be
// processed.
var ErrAllFailed = errors.New("all messages failed")

type Labeler interface {
	Apply(ctx context.Context, messageID, name string) error
}

type Options struct {
	Mailbox    string
	MaxResults int64
	LabelName  string
	DryRun     bool
}

type Scanner struct {
	source    interfaces.MessageSource
	labeler   Labeler
	extractor *content.Extractor
	logger    interfaces.Logger
}

func New(source interfaces.MessageSource, labeler Labeler, logger interfaces.Logger) *Scanner {
	return &Scanner{
		source:    source,
		labeler:   labeler,
		extractor: content.NewExtractor(logger),
		logger:    logger,
	}
}

// Run processes up to opts.MaxResults messages of opts.Mailbox in list order.
// Failures on a single message are logged and recorded in the report; only a
// listing failure, cancellation, or a batch where every message failed makes
// Run return an error.
func (s *Scanner) Run(ctx context.Context, opts Options) (*interfaces.RunReport, error) {
	report := &interfaces.RunReport{
		Mailbox:   opts.Mailbox,
		LabelName: opts.LabelName,
		DryRun:    opts.DryRun,
	}

	s.logger.Info(fmt.Sprintf("Fetching message list from %s (max %d messages)...", opts.Mailbox, opts.MaxResults))
	messages, err := s.source.ListMessages(ctx, opts.Mailbox, opts.MaxResults)
	if err != nil {
		s.logger.Error(fmt.Sprintf("Failed to list messages: %v", err))
		return report, err
	}

	if len(messages) == 0 {
		s.logger.Info("No messages found.")
		return report, nil
	}

	for i, ref := range messages {
		select {
		case <-ctx.Done():
			s.logger.Error("Operation timeout or cancelled")
			return report, ctx.Err()
		default:
		}

		s.logger.Debug(fmt.Sprintf("Processing message %d/%d (ID: %s)", i+1, len(messages), ref.Id))
		report.Results = append(report.Results, s.process(ctx, ref.Id, opts))
	}

	s.logger.Info(fmt.Sprintf("Processed %d messages", len(messages)))

	_, _, _, failed := report.Counts()
	if failed == len(report.Results) {
		return report, ErrAllFailed
	}
	return report, nil
}

func (s *Scanner) process(ctx context.Context, id string, opts Options) interfaces.MessageResult {
	result := interfaces.MessageResult{ID: id}

	msg, err := s.source.GetMessage(ctx, id)
	if err != nil {
		s.logger.Error(fmt.Sprintf("Failed to get message %s: %v%s", id, err, statusSuffix(err)))
		result.Err = err
		return result
	}

	word, ok := classify.Match(s.extractor.Text(msg))
	if !ok {
		return result
	}
	result.MatchedWord = word

	if opts.DryRun {
		s.logger.Info(fmt.Sprintf("Would label message %s as important (matched %q)", id, word))
		return result
	}

	if err := s.labeler.Apply(ctx, id, opts.LabelName); err != nil {
		s.logger.Error(fmt.Sprintf("Failed to label message %s: %v%s", id, err, statusSuffix(err)))
		result.Err = err
		return result
	}
	result.Labeled = true
	s.logger.Info(fmt.Sprintf("Labeled message %s as important", id))
	return result
}

func statusSuffix(err error) string {
	if code := gmail.StatusCode(err); code != 0 {
		return fmt.Sprintf(" (HTTP %d)", code)
	}
	return ""
}
