// Package types provides type definitions for structured data used throughout the auto-apply system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ApplicantsUnknown marks a posting whose applicant count could not be read
// from the portal. An unknown count is treated as unbounded, i.e. the posting
// is considered saturated for eligibility purposes.
const ApplicantsUnknown = -1

// JobPosting represents one scraped listing. The Link is the unique key.
// A posting is immutable once extracted and lives only for the duration of
// one scoring+apply cycle.
type JobPosting struct {
	Link        string `json:"link"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Description string `json:"description"`

	// SkillChips are the site-supplied tag strings, in display order.
	SkillChips []string `json:"skill_chips,omitempty"`

	// ApplicantsCount is the portal-reported applicant count, or
	// ApplicantsUnknown when the stat block was missing.
	ApplicantsCount int `json:"applicants_count"`

	// OpeningsCount defaults to 1 when the portal does not report it.
	OpeningsCount int `json:"openings_count"`

	// KeySkillsMatch reflects the portal's own "Keyskills" match badge.
	KeySkillsMatch bool `json:"key_skills_match"`

	// WorkExperienceMismatch is true when the portal shows the cross icon
	// next to its "Work Experience" badge.
	WorkExperienceMismatch bool `json:"work_experience_mismatch"`
}

// JobDetail holds the fields extracted from a job's detail page. The
// orchestrator merges these into the queued posting before scoring.
type JobDetail struct {
	Description            string
	SkillChips             []string
	ApplicantsCount        int
	OpeningsCount          int
	KeySkillsMatch         bool
	WorkExperienceMismatch bool
}

// Merge returns a copy of the posting enriched with detail-page fields.
// Queue-supplied values are kept when the detail page had nothing.
func (j JobPosting) Merge(d JobDetail) JobPosting {
	out := j
	if d.Description != "" {
		out.Description = d.Description
	}
	if len(d.SkillChips) > 0 {
		out.SkillChips = d.SkillChips
	}
	out.ApplicantsCount = d.ApplicantsCount
	out.OpeningsCount = d.OpeningsCount
	if out.OpeningsCount <= 0 {
		out.OpeningsCount = 1
	}
	out.KeySkillsMatch = d.KeySkillsMatch
	out.WorkExperienceMismatch = d.WorkExperienceMismatch
	return out
}
