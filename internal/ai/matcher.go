package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"

	"github.com/swapnil/naukri-auto-apply/internal/types"
)

const (
	maxAttempts      = 5
	initialBackoff   = time.Second
	maxChipsInPrompt = 30
)

// verdictSchema guards against malformed or truncated model output before
// any field is trusted.
const verdictSchema = `{
	"type": "object",
	"required": ["eligible", "matchPercentage", "reason"],
	"properties": {
		"eligible": {"type": "boolean"},
		"matchPercentage": {"type": "number", "minimum": 0, "maximum": 100},
		"matchedSkills": {"type": "array", "items": {"type": "string"}},
		"reason": {"type": "string"}
	},
	"additionalProperties": false
}`

type verdict struct {
	Eligible        bool     `json:"eligible"`
	MatchPercentage float64  `json:"matchPercentage"`
	MatchedSkills   []string `json:"matchedSkills"`
	Reason          string   `json:"reason"`
}

// Matcher scores jobs against a resume through an LLM. It satisfies the
// orchestrator's Matcher contract; persistent failures surface as errors so
// the caller can fall back to the rule-based engine.
type Matcher struct {
	client  Client
	schema  *gojsonschema.Schema
	verbose bool

	// sleep is swapped in tests to avoid real backoff waits.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewMatcher wraps an LLM client as a job matcher.
func NewMatcher(client Client, verbose bool) (*Matcher, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(verdictSchema))
	if err != nil {
		return nil, fmt.Errorf("failed to compile verdict schema: %w", err)
	}
	return &Matcher{
		client:  client,
		schema:  schema,
		verbose: verbose,
		sleep:   sleepCtx,
	}, nil
}

// Analyze asks the model for an eligibility verdict. Rate-limit responses
// are retried with exponential backoff starting at one second.
func (m *Matcher) Analyze(ctx context.Context, job types.JobPosting, resumeText string) (types.ScoreResult, error) {
	prompt := buildPrompt(job, resumeText)

	backoff := initialBackoff
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		raw, err := m.client.GenerateJSON(ctx, prompt)
		if err == nil {
			result, perr := m.parseVerdict(raw)
			if perr == nil {
				return result, nil
			}
			lastErr = perr
			break // malformed output is not retried, fall back immediately
		}

		lastErr = err
		if !isRateLimited(err) {
			break
		}
		if m.verbose {
			log.Printf("[AI] Rate limited on attempt %d/%d, retrying in %s", attempt, maxAttempts, backoff)
		}
		if err := m.sleep(ctx, backoff); err != nil {
			return types.ScoreResult{}, err
		}
		backoff *= 2
	}

	return types.ScoreResult{}, fmt.Errorf("AI analysis failed: %w", lastErr)
}

// Close releases the underlying client.
func (m *Matcher) Close() error {
	return m.client.Close()
}

func (m *Matcher) parseVerdict(raw string) (types.ScoreResult, error) {
	res, err := m.schema.Validate(gojsonschema.NewStringLoader(raw))
	if err != nil {
		return types.ScoreResult{}, fmt.Errorf("verdict is not valid JSON: %w", err)
	}
	if !res.Valid() {
		details := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			details = append(details, e.String())
		}
		return types.ScoreResult{}, fmt.Errorf("verdict failed schema validation: %s", strings.Join(details, "; "))
	}

	var v verdict
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return types.ScoreResult{}, fmt.Errorf("failed to decode verdict: %w", err)
	}

	result := types.ScoreResult{
		IsEligible:      v.Eligible,
		MatchPercentage: v.MatchPercentage,
		MatchedSkills:   v.MatchedSkills,
	}
	if !v.Eligible {
		result.Reason = v.Reason
		if result.Reason == "" {
			result.Reason = "not eligible"
		}
	}
	return result, nil
}

func buildPrompt(job types.JobPosting, resumeText string) string {
	var b strings.Builder
	b.WriteString("You are screening a job posting against a candidate's resume.\n")
	b.WriteString("Decide whether the candidate should apply.\n\n")
	fmt.Fprintf(&b, "Job title: %s\nCompany: %s\nLocation: %s\n", job.Title, job.Company, job.Location)

	chips := job.SkillChips
	if len(chips) > maxChipsInPrompt {
		chips = chips[:maxChipsInPrompt]
	}
	if len(chips) > 0 {
		fmt.Fprintf(&b, "Required skills: %s\n", strings.Join(chips, ", "))
	}
	if job.Description != "" {
		fmt.Fprintf(&b, "\nJob description:\n%s\n", job.Description)
	}
	fmt.Fprintf(&b, "\nCandidate resume:\n%s\n", resumeText)

	b.WriteString(`
Respond with a single JSON object, no prose:
{"eligible": <bool>, "matchPercentage": <0-100>, "matchedSkills": [<strings>], "reason": "<why, when ineligible>"}
`)
	return b.String()
}

// isRateLimited detects quota and throttling responses across the error
// shapes the Gemini SDK surfaces.
func isRateLimited(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "resource_exhausted") ||
		strings.Contains(msg, "quota")
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
