package types

import (
	"strings"
	"time"
)

// Status is the terminal state of one processed job.
type Status string

// Terminal statuses for an ApplicationRecord.
const (
	StatusApplied        Status = "applied"
	StatusSkipped        Status = "skipped"
	StatusFailed         Status = "failed"
	StatusAlreadyApplied Status = "already_applied"
)

// AppliedAtUnset is recorded when a job finished without a submission.
const AppliedAtUnset = "N/A"

// ApplicationRecord is a JobPosting projected with its processing outcome.
// Records are forwarded to the reporting collaborator and optionally
// mirrored into a store with a 24-hour expiry.
type ApplicationRecord struct {
	Title    string `json:"title"`
	Company  string `json:"company"`
	Location string `json:"location"`
	Link     string `json:"link"`

	Status Status `json:"status"`
	Reason string `json:"reason,omitempty"`

	// AppliedAt is an RFC 3339 timestamp, or AppliedAtUnset.
	AppliedAt string `json:"applied_at"`

	MatchPercentage float64  `json:"match_percentage"`
	MatchedSkills   []string `json:"matched_skills,omitempty"`
}

// NewAppliedRecord builds the record for a verified submission.
func NewAppliedRecord(job JobPosting, score ScoreResult, at time.Time) ApplicationRecord {
	return ApplicationRecord{
		Title:           job.Title,
		Company:         job.Company,
		Location:        job.Location,
		Link:            job.Link,
		Status:          StatusApplied,
		AppliedAt:       at.UTC().Format(time.RFC3339),
		MatchPercentage: score.MatchPercentage,
		MatchedSkills:   score.MatchedSkills,
	}
}

// NewSkippedRecord builds the record for a job that was not submitted.
// The status is derived from the reason text.
func NewSkippedRecord(job JobPosting, reason string, score ScoreResult) ApplicationRecord {
	rec := ApplicationRecord{
		Title:           job.Title,
		Company:         job.Company,
		Location:        job.Location,
		Link:            job.Link,
		Reason:          reason,
		AppliedAt:       AppliedAtUnset,
		MatchPercentage: score.MatchPercentage,
		MatchedSkills:   score.MatchedSkills,
	}
	rec.Status = deriveStatus(rec)
	return rec
}

// deriveStatus maps a record's reason text onto a terminal status.
func deriveStatus(rec ApplicationRecord) Status {
	if rec.AppliedAt != "" && rec.AppliedAt != AppliedAtUnset {
		return StatusApplied
	}
	if strings.Contains(rec.Reason, "Already applied") {
		return StatusAlreadyApplied
	}
	if strings.Contains(rec.Reason, "failed") || strings.Contains(rec.Reason, "Navigation failed") {
		return StatusFailed
	}
	return StatusSkipped
}

// BatchReport is the batch-level result handed to the reporting collaborator.
// It is always populated, even when individual jobs failed mid-loop.
type BatchReport struct {
	RunID   string              `json:"run_id"`
	Applied []ApplicationRecord `json:"applied_jobs"`
	Skipped []ApplicationRecord `json:"skipped_jobs"`

	// TotalAppliedJobsCount is the number of verified submissions this run.
	TotalAppliedJobsCount int `json:"total_applied_jobs_count"`

	// RunOfDay is the escalation counter value for this run; the email
	// reporter widens its recipient list on every third run within a day.
	RunOfDay int `json:"run_of_day"`

	// MNCSegment marks a run against the filtered large-company audience.
	MNCSegment bool `json:"mnc_segment,omitempty"`
}
