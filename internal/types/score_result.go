package types

// ScoreBreakdown carries the raw accumulator values behind a match
// percentage, for reporting and debugging.
type ScoreBreakdown struct {
	Total            float64  `json:"total"`
	Max              float64  `json:"max"`
	Bonus            float64  `json:"bonus,omitempty"`
	JobRequiredScore float64  `json:"job_required_score"`
	DemandBasedPct   *float64 `json:"demand_based_pct"` // nil when the posting demanded too few recognized skills
}

// ScoreResult is the outcome of scoring one JobPosting. It is derived fresh
// per posting and never mutated.
type ScoreResult struct {
	IsEligible      bool    `json:"is_eligible"`
	MatchPercentage float64 `json:"match_percentage"`

	// InitialMatchPercentage is set when a title-based bonus lifted the
	// percentage; it preserves the pre-bonus value.
	InitialMatchPercentage float64 `json:"initial_match_percentage,omitempty"`

	// MatchedSkills lists matched skill names in rule-table order, with a
	// "(related)" suffix when only a weaker synonym matched.
	MatchedSkills []string `json:"matched_skills"`

	// Reason is the human-readable rejection cause; empty on acceptance.
	Reason string `json:"reason,omitempty"`

	Score *ScoreBreakdown `json:"score,omitempty"`
}
