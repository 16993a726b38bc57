package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/perarneng/flaggmail/pkg/gmail"
	"github.com/perarneng/flaggmail/pkg/labeler"
	"github.com/perarneng/flaggmail/pkg/output"
	"github.com/perarneng/flaggmail/pkg/scanner"
)

var (
	mailbox    string
	count      int
	labelName  string
	reportFile string
	dryRun     bool
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Label recent messages that mention a marker word",
	Long: `Fetch the most recent messages of a mailbox, extract their plaintext and
label every message that contains one of the marker words (invoice, urgent,
contract, deadline, important, review, approval). The label is created if it
does not exist yet.`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVarP(&mailbox, "mailbox", "m", "", "Gmail mailbox/label to scan (default INBOX)")
	scanCmd.Flags().IntVarP(&count, "count", "c", 0, "Maximum number of messages to scan (default 10)")
	scanCmd.Flags().StringVarP(&labelName, "label", "l", "", "Label to apply to matching messages (default AI-Filtered)")
	scanCmd.Flags().StringVar(&reportFile, "report", "", "Write a run report to this file")
	scanCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Classify messages without labeling them")

	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("mailbox") {
		cfg.Mailbox = mailbox
	}
	if flags.Changed("count") {
		cfg.MaxResults = count
	}
	if flags.Changed("label") {
		cfg.LabelName = labelName
	}
	if flags.Changed("report") {
		cfg.ReportFile = reportFile
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
	defer cancel()

	client := gmail.NewClient(cfg, log)
	log.Info("Connecting to Gmail API...")
	if err := client.Connect(ctx); err != nil {
		log.Error(fmt.Sprintf("Failed to connect to Gmail: %v", err))
		return err
	}

	s := scanner.New(client, labeler.New(client, log), log)
	report, runErr := s.Run(ctx, scanner.Options{
		Mailbox:    cfg.Mailbox,
		MaxResults: int64(cfg.MaxResults),
		LabelName:  cfg.LabelName,
		DryRun:     dryRun,
	})

	if err := output.NewFileWriter(log).WriteReport(report, cfg.ReportFile); err != nil {
		log.Warn(fmt.Sprintf("Failed to write report: %v", err))
	}

	if runErr != nil {
		return runErr
	}

	_, matched, labeled, failed := report.Counts()
	log.Info(fmt.Sprintf("Scan completed. Messages: %d, Matched: %d, Labeled: %d, Failed: %d",
		len(report.Results), matched, labeled, failed))
	return nil
}
