package interfaces

// MessageResult is the outcome of processing one message.
type MessageResult struct {
	ID          string
	MatchedWord string
	Labeled     bool
	Err         error
}

type RunReport struct {
	Mailbox   string
	LabelName string
	DryRun    bool
	Results   []MessageResult
}

// Counts tallies the results. A message that failed is counted only as
// failed.
func (r *RunReport) Counts() (processed, matched, labeled, failed int) {
	for _, res := range r.Results {
		if res.Err != nil {
			failed++
			continue
		}
		processed++
		if res.MatchedWord != "" {
			matched++
		}
		if res.Labeled {
			labeled++
		}
	}
	return processed, matched, labeled, failed
}

type ReportWriter interface {
	WriteReport(report *RunReport, path string) error
}
