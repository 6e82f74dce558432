// Package matching implements the rule-based eligibility and scoring engine
// for scraped job postings. Scoring is a pure function over a posting and the
// static rule tables: no I/O, no side effects, deterministic output.
//
// The engine runs as an ordered pipeline of named stages. Each stage either
// terminates with a final ScoreResult or updates the shared accumulator and
// lets the next stage run. Rule precedence and every short-circuit point are
// therefore explicit in the stage list.
package matching

import (
	"fmt"
	"strings"

	"github.com/swapnil/naukri-auto-apply/internal/types"
)

const (
	// minJobRequiredScore is the demand bar: postings that explicitly ask
	// for at least this much recognized skill weight are scored against
	// their own demands rather than the full table.
	minJobRequiredScore = 8

	// demandMatchThreshold applies when the demand bar is met;
	// looseMatchThreshold when it is not.
	demandMatchThreshold = 45
	looseMatchThreshold  = 25

	// badgeEligibilityThreshold is the bound used by the key-skills-badge
	// branches, both with and without the title bonus.
	badgeEligibilityThreshold = 35

	// javaStackTermBar is how many whole-word Java-stack terms in the
	// description mark the role as a Java/J2EE posting.
	javaStackTermBar = 2

	// applicantsPerOpening sizes the saturation cap; the cap never drops
	// below minApplicantLimit.
	applicantsPerOpening = 1300
	minApplicantLimit    = 100
)

// Scorer scores job postings against the static rule tables.
type Scorer struct{}

// NewScorer returns a rule-based scorer.
func NewScorer() *Scorer {
	return &Scorer{}
}

// accumulator carries scoring state across pipeline stages.
type accumulator struct {
	job   types.JobPosting
	desc  string   // lowercased description
	chips []string // lowercased tags

	totalScore       float64
	totalSkillScore  float64
	maxPossibleScore float64
	jobRequiredScore float64
	bonusScore       float64

	matched         []string
	coreMernPrimary int

	disqualifiedByChips bool
	javaStackRole       bool

	finalPct       float64
	threshold      float64
	coreMernOk     bool
	applicantOk    bool
	applicantLimit int
}

// stage is one named step of the scoring pipeline. A non-nil result
// terminates scoring.
type stage struct {
	name string
	run  func(*accumulator) *types.ScoreResult
}

var pipeline = []stage{
	{"blocked-company", stageBlockedCompany},
	{"work-experience-badge", stageWorkExperienceBadge},
	{"accumulate", stageAccumulate},
	{"java-stack-gate", stageJavaStackGate},
	{"disqualifying-chips-gate", stageChipGate},
	{"fullstack-node-gate", stageFullstackNodeGate},
	{"experience-gate", stageExperienceGate},
	{"key-skills-badge", stageKeySkillsBadge},
	{"default", stageDefault},
}

// Score evaluates one posting. Every branch returns a populated result:
// Reason is set on rejection and empty on acceptance, and MatchPercentage is
// always within [0,100].
func (s *Scorer) Score(job types.JobPosting) types.ScoreResult {
	acc := &accumulator{
		job:   job,
		desc:  strings.ToLower(job.Description),
		chips: lowerAll(job.SkillChips),
	}
	for _, st := range pipeline {
		if res := st.run(acc); res != nil {
			return *res
		}
	}
	// stageDefault always terminates; reaching here would be a pipeline bug.
	panic("matching: scoring pipeline fell through")
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(strings.TrimSpace(s))
	}
	return out
}

// stageBlockedCompany short-circuits all scoring for blocklisted employers.
func stageBlockedCompany(a *accumulator) *types.ScoreResult {
	pattern := BlockedCompanyMatch(a.job.Company)
	if pattern == "" {
		return nil
	}
	return &types.ScoreResult{
		IsEligible:      false,
		MatchPercentage: 0,
		MatchedSkills:   []string{},
		Reason:          fmt.Sprintf("Company %q matched blocked company pattern: %s", a.job.Company, pattern),
	}
}

// stageWorkExperienceBadge rejects postings the portal itself flags as an
// experience mismatch.
func stageWorkExperienceBadge(a *accumulator) *types.ScoreResult {
	if !a.job.WorkExperienceMismatch {
		return nil
	}
	return &types.ScoreResult{
		IsEligible:      false,
		MatchPercentage: 0,
		MatchedSkills:   []string{},
		Reason:          "Work experience does not match the job requirements",
	}
}

// stageAccumulate walks the skill table and the bonus lists, computes both
// candidate percentages, and derives the combined-stack, applicant, and
// disqualification facts used by later gates. It never terminates.
func stageAccumulate(a *accumulator) *types.ScoreResult {
	a.matched = []string{}

	for _, def := range skillTable {
		a.maxPossibleScore += def.Weight

		required := anyTerm(def.RequiredTerms, func(t string) bool {
			return matchesAnywhere(t, a.desc, a.chips)
		})
		if !required {
			continue
		}
		a.jobRequiredScore += def.Weight

		primaryInChips := anyTerm(def.Primary, func(t string) bool {
			return matchesInChips(t, a.chips)
		})
		primaryInDesc := anyTerm(def.Primary, func(t string) bool {
			return termRegex(t).MatchString(a.desc)
		})

		if primaryInChips || primaryInDesc {
			add := def.Weight
			if primaryInChips {
				add += def.Weight * 0.15 // tag match signals stronger intent than prose
			}
			a.totalScore += add
			a.totalSkillScore += def.Weight
			a.matched = append(a.matched, def.Name)
			if coreMernSkills[def.Name] {
				a.coreMernPrimary++
			}
			continue
		}

		relatedInChips := anyTerm(def.Related, func(t string) bool {
			return matchesInChips(t, a.chips)
		})
		relatedInDesc := anyTerm(def.Related, func(t string) bool {
			return termRegex(t).MatchString(a.desc)
		})
		if relatedInChips || relatedInDesc {
			base := def.Weight * 0.5
			add := base
			if relatedInChips {
				add += base * 0.2
			}
			a.totalScore += add
			a.totalSkillScore += base
			a.matched = append(a.matched, def.Name+" (related)")
		}
	}

	// Competing-stack tags. A bare java/c# tag counts once on its own.
	chipCount := 0
	for _, q := range disqualifyingChips {
		for _, chip := range a.chips {
			if strings.Contains(chip, q) {
				chipCount++
				break
			}
		}
	}
	for _, chip := range a.chips {
		if chip == "java" || chip == "c#" || chip == "csharp" {
			chipCount++
			break
		}
	}
	a.disqualifiedByChips = chipCount >= 2

	javaTerms := 0
	for _, term := range javaStackTerms {
		if termRegex(term).MatchString(a.desc) {
			javaTerms++
		}
	}
	a.javaStackRole = javaTerms >= javaStackTermBar

	for _, check := range bonusKeywords {
		if strings.Contains(a.desc, check.Keyword) {
			a.bonusScore += check.Bonus
		}
	}
	for _, triplet := range keywordTriplets {
		if strings.Contains(a.desc, triplet[0]) &&
			strings.Contains(a.desc, triplet[1]) &&
			strings.Contains(a.desc, triplet[2]) {
			a.bonusScore += 1.0
		}
	}
	a.bonusScore += titleBonus(a.job.Title)
	a.totalScore += a.bonusScore

	a.finalPct = clampPct(selectPercentage(a))

	a.coreMernOk = !isCombinedStackTitle(a.job.Title) || a.coreMernPrimary >= 2

	openings := a.job.OpeningsCount
	if openings <= 0 {
		openings = 1
	}
	a.applicantLimit = applicantsPerOpening * openings
	if a.applicantLimit < minApplicantLimit {
		a.applicantLimit = minApplicantLimit
	}
	// An unknown count is unbounded and therefore saturated.
	a.applicantOk = a.job.ApplicantsCount != types.ApplicantsUnknown &&
		a.job.ApplicantsCount < a.applicantLimit

	a.threshold = looseMatchThreshold
	if a.jobRequiredScore >= minJobRequiredScore {
		a.threshold = demandMatchThreshold
	}
	return nil
}

// selectPercentage picks between the demand-based and raw-formula
// percentages. The demand-based value applies only when the posting demanded
// enough recognized skill weight.
func selectPercentage(a *accumulator) float64 {
	raw := a.rawFormulaPct()
	if a.jobRequiredScore < minJobRequiredScore {
		return raw
	}
	demand := a.totalSkillScore / a.jobRequiredScore * 100
	if demand > 100 {
		demand = 100
	}
	if demand >= 0 {
		return demand
	}
	return raw
}

func (a *accumulator) rawFormulaPct() float64 {
	return a.totalScore / (a.maxPossibleScore + float64(len(keywordTriplets))) * 100
}

func clampPct(pct float64) float64 {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// demandBasedPct reports the unclamped demand-based percentage for the score
// breakdown, or nil when the demand bar was not met.
func (a *accumulator) demandBasedPct() *float64 {
	if a.jobRequiredScore < minJobRequiredScore {
		return nil
	}
	pct := a.totalSkillScore / a.jobRequiredScore * 100
	return &pct
}

func (a *accumulator) breakdown(includeBonus bool) *types.ScoreBreakdown {
	b := &types.ScoreBreakdown{
		Total:            a.totalScore,
		Max:              a.maxPossibleScore,
		JobRequiredScore: a.jobRequiredScore,
		DemandBasedPct:   a.demandBasedPct(),
	}
	if includeBonus {
		b.Bonus = a.bonusScore
	}
	return b
}

// stageJavaStackGate rejects roles whose description reads as a Java/J2EE
// stack posting. Matched skills are withheld on this branch.
func stageJavaStackGate(a *accumulator) *types.ScoreResult {
	if !a.javaStackRole {
		return nil
	}
	return &types.ScoreResult{
		IsEligible:      false,
		MatchPercentage: a.finalPct,
		MatchedSkills:   []string{},
		Reason:          "Job is Java/J2EE/Spring stack (not MERN/React/Node)",
		Score:           a.breakdown(false),
	}
}

// stageChipGate rejects postings whose tags carry two or more competing-stack
// markers, regardless of score.
func stageChipGate(a *accumulator) *types.ScoreResult {
	if !a.disqualifiedByChips {
		return nil
	}
	return &types.ScoreResult{
		IsEligible:      false,
		MatchPercentage: a.finalPct,
		MatchedSkills:   a.matched,
		Reason:          "Job key skills are heavily non-MERN (e.g. Angular/Vue/PHP/Java)",
		Score:           a.breakdown(false),
	}
}

// stageFullstackNodeGate rejects fullstack titles that never mention the
// Node runtime.
func stageFullstackNodeGate(a *accumulator) *types.ScoreResult {
	if fullstackNeedsNode(a.job.Title, a.job.Description, a.job.SkillChips) {
		return nil
	}
	return &types.ScoreResult{
		IsEligible:      false,
		MatchPercentage: a.finalPct,
		MatchedSkills:   a.matched,
		Reason:          "Fullstack job lacks Node.js requirement",
	}
}

// stageExperienceGate rejects postings demanding more experience than the
// acceptable band.
func stageExperienceGate(a *accumulator) *types.ScoreResult {
	req := ExtractExperienceRequirement(a.job.Description)
	if req.IsValid {
		return nil
	}
	return &types.ScoreResult{
		IsEligible:      false,
		MatchPercentage: a.finalPct,
		MatchedSkills:   a.matched,
		Reason:          fmt.Sprintf("Experience requirement not suitable: %s", req.Reason),
	}
}

// stageKeySkillsBadge resolves both sides of the portal's key-skills badge.
//
// Badge false: eligibility collapses to a single percentage bound and the
// matched-skills list is withheld. Badge true: a suitable title can inject a
// staged bonus before the final test; this branch supersedes stageDefault,
// which is consequently unreachable whenever the badge is set (kept faithful
// to the observed behavior, see DESIGN.md).
func stageKeySkillsBadge(a *accumulator) *types.ScoreResult {
	if !a.job.KeySkillsMatch {
		eligible := a.finalPct >= badgeEligibilityThreshold
		res := &types.ScoreResult{
			IsEligible:      eligible,
			MatchPercentage: a.finalPct,
			MatchedSkills:   []string{},
		}
		if !eligible {
			res.Reason = "Key skills do not match the job requirements"
		}
		return res
	}

	initialPct := a.finalPct
	boosted := false
	if isWebDevTitle(a.job.Title) && a.finalPct < 40 {
		boosted = true
		switch {
		case a.finalPct < 20:
			a.totalScore += 20
		case a.finalPct > 20 && a.finalPct < 30:
			a.totalScore += 15
		default:
			a.totalScore += 10
		}
	}

	pctWithBonus := clampPct(a.rawFormulaPct())
	eligible := pctWithBonus >= badgeEligibilityThreshold && a.coreMernOk && a.applicantOk

	res := &types.ScoreResult{
		IsEligible:      eligible,
		MatchPercentage: pctWithBonus,
		MatchedSkills:   a.matched,
		Score:           a.breakdown(false),
	}
	if boosted {
		res.InitialMatchPercentage = initialPct
	}
	if !eligible {
		switch {
		case !a.applicantOk:
			res.Reason = fmt.Sprintf("applied members:%d are greater than the limit:%d",
				a.job.ApplicantsCount, a.applicantLimit)
		case !a.coreMernOk:
			res.Reason = "Fullstack/MERN title but profile has fewer than 2 core MERN skills (React, Node, Express, MongoDB)"
		default:
			res.Reason = fmt.Sprintf("Match %.1f%% below threshold %d%%",
				pctWithBonus, badgeEligibilityThreshold)
		}
	}
	return res
}

// stageDefault is the nominal conjunction of all primary gates. Because
// stageKeySkillsBadge terminates on both badge values, this stage is
// structurally dead; it is kept verbatim because it documents the intended
// precedence, which product owners have not yet confirmed (see DESIGN.md).
func stageDefault(a *accumulator) *types.ScoreResult {
	eligible := a.finalPct >= a.threshold &&
		a.coreMernOk &&
		!a.disqualifiedByChips &&
		!a.javaStackRole &&
		a.applicantOk

	res := &types.ScoreResult{
		IsEligible:      eligible,
		MatchPercentage: a.finalPct,
		MatchedSkills:   a.matched,
		Score:           a.breakdown(true),
	}
	if !eligible {
		switch {
		case !a.coreMernOk:
			res.Reason = "Fullstack/MERN title but profile has fewer than 2 core MERN skills (React, Node, Express, MongoDB)"
		case a.finalPct < a.threshold && a.jobRequiredScore >= minJobRequiredScore:
			res.Reason = fmt.Sprintf("Demand-based match %.1f%% below threshold %d%%",
				a.finalPct, demandMatchThreshold)
		case a.finalPct < a.threshold:
			res.Reason = fmt.Sprintf("Match %.1f%% below threshold", a.finalPct)
		default:
			res.Reason = fmt.Sprintf("applied members:%d are greater than the limit:%d",
				a.job.ApplicantsCount, a.applicantLimit)
		}
	}
	return res
}
