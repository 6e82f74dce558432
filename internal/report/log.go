package report

import (
	"context"
	"log"

	"github.com/swapnil/naukri-auto-apply/internal/types"
)

// LogReporter writes the batch summary to the process log. It is the
// default when no delivery channel is configured.
type LogReporter struct{}

func (LogReporter) Send(_ context.Context, report types.BatchReport) error {
	log.Printf("[REPORT] %s", subjectFor(report))
	for _, rec := range report.Applied {
		log.Printf("[REPORT] applied: %s at %s (%.1f%%)", rec.Title, rec.Company, rec.MatchPercentage)
	}
	for _, rec := range report.Skipped {
		log.Printf("[REPORT] %s: %s at %s: %s", rec.Status, rec.Title, rec.Company, rec.Reason)
	}
	return nil
}

// Multi fans a report out to several reporters; the first failure wins but
// all reporters run.
type Multi []interface {
	Send(ctx context.Context, report types.BatchReport) error
}

func (m Multi) Send(ctx context.Context, report types.BatchReport) error {
	var firstErr error
	for _, r := range m {
		if err := r.Send(ctx, report); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
