package apply

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/swapnil/naukri-auto-apply/internal/throttle"
	"github.com/swapnil/naukri-auto-apply/internal/types"
)

// Daily ceilings for the two flows.
const (
	DefaultApplyLimit = 40
	AIFlowApplyLimit  = 50
)

// reasonLimitReached marks jobs skipped without any attempt because the
// daily budget was exhausted.
const reasonLimitReached = "Daily application limit reached"

// Options configures an orchestrator run.
type Options struct {
	// MaxApplyLimit is the daily ceiling; DefaultApplyLimit when zero.
	MaxApplyLimit int

	// SettleDelay is the fixed wait between clicking apply and verifying
	// the outcome.
	SettleDelay time.Duration

	// ConfirmDelay is the wait before checking the final success banner.
	ConfirmDelay time.Duration

	// InterJobDelay spaces out applications in the AI flow to respect
	// external rate limits. Zero disables it.
	InterJobDelay time.Duration

	// ResumeText is forwarded to the external matcher when one is set.
	ResumeText string

	// MNCSegment marks a run against the filtered large-company audience.
	MNCSegment bool

	// Testing suppresses the reporting collaborator.
	Testing bool
}

func (o Options) withDefaults() Options {
	if o.MaxApplyLimit <= 0 {
		o.MaxApplyLimit = DefaultApplyLimit
	}
	if o.SettleDelay <= 0 {
		o.SettleDelay = 6 * time.Second
	}
	if o.ConfirmDelay <= 0 {
		o.ConfirmDelay = 5 * time.Second
	}
	return o
}

// Orchestrator processes a queue of JobPostings into applied and skipped
// outcomes. Jobs run strictly one at a time against one shared authenticated
// browsing context; cancellation is observed between jobs only.
type Orchestrator struct {
	inspector PageInspector
	scorer    Scorer
	matcher   Matcher // optional; enables the AI flow
	tracker   *throttle.Tracker
	reporter  Reporter       // optional
	artifacts ArtifactWriter // optional
	opts      Options
}

// New returns an orchestrator. Inspector, scorer, and tracker are required;
// reporter, artifacts, and matcher may be nil.
func New(inspector PageInspector, scorer Scorer, tracker *throttle.Tracker, opts Options) *Orchestrator {
	return &Orchestrator{
		inspector: inspector,
		scorer:    scorer,
		tracker:   tracker,
		opts:      opts.withDefaults(),
	}
}

// WithMatcher enables the external AI matcher for eligibility decisions.
func (o *Orchestrator) WithMatcher(m Matcher) *Orchestrator {
	o.matcher = m
	return o
}

// WithReporter sets the reporting collaborator.
func (o *Orchestrator) WithReporter(r Reporter) *Orchestrator {
	o.reporter = r
	return o
}

// WithArtifacts sets the artifact sink.
func (o *Orchestrator) WithArtifacts(a ArtifactWriter) *Orchestrator {
	o.artifacts = a
	return o
}

// jobOutcome is the terminal result of processing one job. Expected
// failures are values here, not errors: only infrastructure problems
// surface as Go errors from Run.
type jobOutcome struct {
	record  types.ApplicationRecord
	applied bool
}

// Run processes the batch. The returned report is populated even when
// individual jobs failed; only counter/session persistence failures and a
// missing budget read abort the run.
func (o *Orchestrator) Run(ctx context.Context, jobs []types.JobPosting) (*types.BatchReport, error) {
	report := &types.BatchReport{
		RunID:      uuid.NewString(),
		Applied:    []types.ApplicationRecord{},
		Skipped:    []types.ApplicationRecord{},
		MNCSegment: o.opts.MNCSegment,
	}

	count, err := o.tracker.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to read application counter: %w", err)
	}
	budget := o.opts.MaxApplyLimit - count.SuccessfullyApplied
	if budget <= 0 {
		log.Printf("Reached maximum job application limit of %d", o.opts.MaxApplyLimit)
		for _, job := range jobs {
			report.Skipped = append(report.Skipped,
				types.NewSkippedRecord(job, reasonLimitReached, types.ScoreResult{}))
		}
		return report, nil
	}

	total := len(jobs)
	for i, job := range jobs {
		if err := ctx.Err(); err != nil {
			// Cooperative stop: observed between jobs, never mid-job.
			for _, rest := range jobs[i:] {
				report.Skipped = append(report.Skipped,
					types.NewSkippedRecord(rest, "Run cancelled", types.ScoreResult{}))
			}
			break
		}
		if report.TotalAppliedJobsCount >= budget {
			log.Printf("Reached maximum job applications limit of %d", budget)
			for _, rest := range jobs[i:] {
				report.Skipped = append(report.Skipped,
					types.NewSkippedRecord(rest, reasonLimitReached, types.ScoreResult{}))
			}
			break
		}

		log.Printf("Processing %d out of %d: %s at %s", i+1, total, job.Title, job.Company)
		outcome := o.processJob(ctx, job)
		if outcome.applied {
			report.Applied = append(report.Applied, outcome.record)
			report.TotalAppliedJobsCount++
			if o.artifacts != nil {
				if err := o.artifacts.SaveApplied(ctx, outcome.record); err != nil {
					log.Printf("Failed to save applied-job artifact: %v", err)
				}
			}
		} else {
			report.Skipped = append(report.Skipped, outcome.record)
		}

		if o.opts.InterJobDelay > 0 {
			sleepCtx(ctx, o.opts.InterJobDelay)
		}
	}

	if err := o.finishBatch(ctx, report); err != nil {
		return report, err
	}
	return report, nil
}

// finishBatch updates the counters and hands the partition to the artifact
// and reporting collaborators. Counter persistence failures propagate: the
// run must not silently continue with stale counts.
func (o *Orchestrator) finishBatch(ctx context.Context, report *types.BatchReport) error {
	if report.TotalAppliedJobsCount > 0 {
		count, err := o.tracker.Update(report.TotalAppliedJobsCount)
		if err != nil {
			return err
		}
		log.Printf("Total jobs applied today: %d, till now: %d",
			count.SuccessfullyApplied, count.SuccessfullyAppliedTillNow)
	}

	runOfDay, err := o.tracker.BumpEscalation()
	if err != nil {
		return err
	}
	report.RunOfDay = runOfDay

	if o.artifacts != nil {
		if err := o.artifacts.SaveBatch(ctx, *report); err != nil {
			log.Printf("Failed to save batch artifacts: %v", err)
		}
	}

	if o.reporter != nil && !o.opts.Testing &&
		(len(report.Applied) > 0 || len(report.Skipped) > 0) {
		if err := o.reporter.Send(ctx, *report); err != nil {
			log.Printf("Failed to send batch report: %v", err)
		}
	}
	return nil
}

// processJob is the per-job state machine. Every exit is a value; an
// unexpected inspector error becomes a skip record, never a batch abort.
func (o *Orchestrator) processJob(ctx context.Context, job types.JobPosting) jobOutcome {
	if err := o.inspector.Navigate(ctx, job.Link); err != nil {
		log.Printf("Navigation failed for %s: %v", job.Link, err)
		return skipped(job, "Navigation failed", types.ScoreResult{})
	}

	if applied, err := o.inspector.AlreadyApplied(ctx); err == nil && applied {
		log.Printf("Already applied to %s", job.Title)
		return skipped(job, "Already applied", types.ScoreResult{})
	}

	detail, err := o.inspector.ExtractDetail(ctx)
	if err != nil {
		// Scoring still works off the queued fields.
		log.Printf("Detail extraction failed for %s: %v", job.Title, err)
	} else {
		job = job.Merge(detail)
	}

	score := o.decide(ctx, job)
	if !score.IsEligible {
		reason := score.Reason
		if reason == "" {
			reason = "not eligible"
		}
		log.Printf("Job %s skipped - %s", job.Title, reason)
		return skipped(job, reason, score)
	}

	// Re-navigation is idempotent and puts the page in a known state
	// before the apply-control probes.
	if err := o.inspector.Navigate(ctx, job.Link); err != nil {
		return skipped(job, fmt.Sprintf("Error: %v", err), score)
	}

	if redirect, err := o.inspector.ExternalRedirect(ctx); err == nil && redirect {
		return skipped(job, "Company website redirect", score)
	}

	hasControl, err := o.inspector.HasApplyControl(ctx)
	if err != nil || !hasControl {
		return skipped(job, "No apply button found", score)
	}

	if err := o.inspector.ClickApply(ctx); err != nil {
		return skipped(job, fmt.Sprintf("Apply failed: %v", err), score)
	}

	sleepCtx(ctx, o.opts.SettleDelay)

	status, err := o.inspector.VerifyOutcome(ctx)
	if err != nil {
		return skipped(job, fmt.Sprintf("Apply failed: %v", err), score)
	}
	if !status.Success && status.ButtonStillVisible {
		return skipped(job, "Apply failed: Application did not complete successfully", score)
	}

	sleepCtx(ctx, o.opts.ConfirmDelay)

	confirmed, err := o.inspector.ConfirmationShown(ctx)
	if err != nil || !confirmed {
		return skipped(job, "Application confirmation not found - clicked successfully", score)
	}

	log.Printf("Successfully applied to %s at %s", job.Title, job.Company)
	return jobOutcome{
		record:  types.NewAppliedRecord(job, score, time.Now()),
		applied: true,
	}
}

// decide picks the eligibility verdict: the external matcher when present,
// with fallback to the rule-based scorer on persistent matcher failure.
func (o *Orchestrator) decide(ctx context.Context, job types.JobPosting) types.ScoreResult {
	if o.matcher == nil {
		return o.scorer.Score(job)
	}
	result, err := o.matcher.Analyze(ctx, job, o.opts.ResumeText)
	if err != nil {
		log.Printf("AI matching failed: %v. Using rule-based skill matching.", err)
		return o.scorer.Score(job)
	}
	return result
}

func skipped(job types.JobPosting, reason string, score types.ScoreResult) jobOutcome {
	return jobOutcome{record: types.NewSkippedRecord(job, reason, score)}
}

// sleepCtx sleeps for d or until ctx is done, whichever comes first.
func sleepCtx(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
