// Package apply sequences eligibility checks, duplicate and redirect
// detection, submission, verification, and outcome recording for a queue of
// job postings, under the daily application-rate ceiling.
package apply

import (
	"context"

	"github.com/swapnil/naukri-auto-apply/internal/types"
)

// SubmissionStatus is the observable state of the apply control after a
// click attempt.
type SubmissionStatus struct {
	// Success is true when the page shows a success message or the
	// already-applied indicator.
	Success bool
	// ButtonStillVisible is true when the apply control is still rendered,
	// which combined with !Success means the attempt went nowhere.
	ButtonStillVisible bool
}

// PageInspector is the browser-automation capability the orchestrator drives.
// Implementations own a single authenticated browsing context; all calls are
// serialized by the orchestrator.
type PageInspector interface {
	// Navigate opens the job's detail page. Failure is terminal for the
	// job, never for the batch.
	Navigate(ctx context.Context, url string) error

	// AlreadyApplied probes the page for the applied indicator.
	AlreadyApplied(ctx context.Context) (bool, error)

	// ExtractDetail reads the detail-page fields used for scoring.
	ExtractDetail(ctx context.Context) (types.JobDetail, error)

	// ExternalRedirect reports whether applying would leave the portal
	// for the employer's own site.
	ExternalRedirect(ctx context.Context) (bool, error)

	// HasApplyControl reports whether a visible apply control exists.
	HasApplyControl(ctx context.Context) (bool, error)

	// ClickApply triggers the submit action.
	ClickApply(ctx context.Context) error

	// VerifyOutcome inspects the page after the settle delay.
	VerifyOutcome(ctx context.Context) (SubmissionStatus, error)

	// ConfirmationShown reports whether the final success banner is on
	// the page.
	ConfirmationShown(ctx context.Context) (bool, error)
}

// Scorer is the rule-based eligibility engine.
type Scorer interface {
	Score(job types.JobPosting) types.ScoreResult
}

// Matcher is the alternate, external scorer used by the AI flow. It shares
// the Scorer contract but may fail, in which case the orchestrator falls
// back to the rule-based engine.
type Matcher interface {
	Analyze(ctx context.Context, job types.JobPosting, resumeText string) (types.ScoreResult, error)
}

// Reporter consumes the finished batch partition.
type Reporter interface {
	Send(ctx context.Context, report types.BatchReport) error
}

// ArtifactWriter persists per-job and per-batch result artifacts.
type ArtifactWriter interface {
	SaveApplied(ctx context.Context, rec types.ApplicationRecord) error
	SaveBatch(ctx context.Context, report types.BatchReport) error
}
