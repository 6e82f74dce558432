package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swapnil/naukri-auto-apply/internal/types"
)

// mernChips is a rich tag set that clears the raw-formula threshold on the
// badge-true path.
var mernChips = []string{
	"react", "node.js", "express", "mongodb", "typescript", "javascript",
	"redux", "docker", "aws", "graphql", "jest", "github", "git", "html",
	"css", "rest api", "jwt", "tailwind", "kubernetes", "webpack",
}

func TestScoreBlockedCompany(t *testing.T) {
	s := NewScorer()

	result := s.Score(types.JobPosting{
		Title:       "React Developer",
		Company:     "Accenture Solutions Pvt Ltd",
		Description: "react, node, mongodb",
		SkillChips:  []string{"react"},
	})

	assert.False(t, result.IsEligible)
	assert.Zero(t, result.MatchPercentage)
	assert.Empty(t, result.MatchedSkills)
	assert.Contains(t, result.Reason, "blocked company pattern")
}

func TestScoreWorkExperienceBadge(t *testing.T) {
	s := NewScorer()

	result := s.Score(types.JobPosting{
		Title:                  "React Developer",
		Company:                "Globex",
		SkillChips:             []string{"react"},
		WorkExperienceMismatch: true,
	})

	assert.False(t, result.IsEligible)
	assert.Zero(t, result.MatchPercentage)
	assert.Equal(t, "Work experience does not match the job requirements", result.Reason)
}

func TestScoreJavaStackGate(t *testing.T) {
	s := NewScorer()

	result := s.Score(types.JobPosting{
		Title:       "Software Engineer",
		Company:     "Globex",
		Description: "Strong java and spring boot background required.",
	})

	assert.False(t, result.IsEligible)
	assert.Contains(t, result.Reason, "Java/J2EE/Spring stack")
	assert.Empty(t, result.MatchedSkills, "skills are withheld on the java gate")
}

func TestScoreDisqualifyingChips(t *testing.T) {
	s := NewScorer()

	t.Run("two competing tags disqualify", func(t *testing.T) {
		result := s.Score(types.JobPosting{
			Title:      "Frontend Developer",
			Company:    "Globex",
			SkillChips: []string{"react", "angular", "vue"},
		})
		assert.False(t, result.IsEligible)
		assert.Contains(t, result.Reason, "heavily non-MERN")
	})

	t.Run("bare java tag counts once", func(t *testing.T) {
		result := s.Score(types.JobPosting{
			Title:      "Frontend Developer",
			Company:    "Globex",
			SkillChips: []string{"react", "java", "angular"},
		})
		assert.False(t, result.IsEligible)
		assert.Contains(t, result.Reason, "heavily non-MERN")
	})

	t.Run("a single competing tag does not", func(t *testing.T) {
		result := s.Score(types.JobPosting{
			Title:           "Frontend Developer",
			Company:         "Globex",
			SkillChips:      append([]string{"angular"}, mernChips...),
			KeySkillsMatch:  true,
			ApplicantsCount: 10,
			OpeningsCount:   1,
		})
		assert.True(t, result.IsEligible)
		assert.Empty(t, result.Reason)
	})
}

func TestScoreFullstackNodeGate(t *testing.T) {
	s := NewScorer()

	result := s.Score(types.JobPosting{
		Title:       "Fullstack Developer",
		Company:     "Globex",
		Description: "We build web frontends with React and Python services.",
		SkillChips:  []string{"react"},
	})

	assert.False(t, result.IsEligible)
	assert.Equal(t, "Fullstack job lacks Node.js requirement", result.Reason)
}

func TestScoreExperienceGate(t *testing.T) {
	s := NewScorer()

	result := s.Score(types.JobPosting{
		Title:       "React Developer",
		Company:     "Globex",
		Description: "Requires 6 to 8 years of experience with react.",
		SkillChips:  []string{"react"},
	})

	assert.False(t, result.IsEligible)
	assert.Contains(t, result.Reason, "Experience requirement not suitable")
}

func TestScoreKeySkillsBadgeFalse(t *testing.T) {
	s := NewScorer()

	t.Run("low match rejects", func(t *testing.T) {
		result := s.Score(types.JobPosting{
			Title:       "Office Assistant",
			Company:     "Globex",
			Description: "General administrative duties.",
		})
		assert.False(t, result.IsEligible)
		assert.Equal(t, "Key skills do not match the job requirements", result.Reason)
		assert.Empty(t, result.MatchedSkills)
	})

	t.Run("high match accepts but withholds skills", func(t *testing.T) {
		// A single demanded skill, fully matched: demand-based pct is 100.
		result := s.Score(types.JobPosting{
			Title:      "Software Engineer",
			Company:    "Globex",
			SkillChips: []string{"react"},
		})
		assert.True(t, result.IsEligible)
		assert.Empty(t, result.Reason)
		assert.Empty(t, result.MatchedSkills)
		assert.InDelta(t, 100, result.MatchPercentage, 0.01)
	})
}

func TestScoreKeySkillsBadgeTrue(t *testing.T) {
	s := NewScorer()

	t.Run("rich profile accepts", func(t *testing.T) {
		result := s.Score(types.JobPosting{
			Title:           "Software Engineer",
			Company:         "Globex",
			SkillChips:      mernChips,
			KeySkillsMatch:  true,
			ApplicantsCount: 50,
			OpeningsCount:   1,
		})
		assert.True(t, result.IsEligible)
		assert.Empty(t, result.Reason)
		assert.Contains(t, result.MatchedSkills, "React")
		assert.Contains(t, result.MatchedSkills, "Node.js")
		assert.Contains(t, result.MatchedSkills, "MongoDB")
		assert.Greater(t, result.MatchPercentage, 35.0)
		assert.LessOrEqual(t, result.MatchPercentage, 100.0)
		require.NotNil(t, result.Score)
		assert.Greater(t, result.Score.Total, 0.0)
	})

	t.Run("saturated applicants reject", func(t *testing.T) {
		result := s.Score(types.JobPosting{
			Title:           "Software Engineer",
			Company:         "Globex",
			SkillChips:      mernChips,
			KeySkillsMatch:  true,
			ApplicantsCount: 5000,
			OpeningsCount:   1,
		})
		assert.False(t, result.IsEligible)
		assert.Equal(t, "applied members:5000 are greater than the limit:1300", result.Reason)
	})

	t.Run("unknown applicant count is saturated", func(t *testing.T) {
		result := s.Score(types.JobPosting{
			Title:           "Software Engineer",
			Company:         "Globex",
			SkillChips:      mernChips,
			KeySkillsMatch:  true,
			ApplicantsCount: types.ApplicantsUnknown,
			OpeningsCount:   1,
		})
		assert.False(t, result.IsEligible)
		assert.Contains(t, result.Reason, "greater than the limit")
	})

	t.Run("openings scale the applicant cap", func(t *testing.T) {
		result := s.Score(types.JobPosting{
			Title:           "Software Engineer",
			Company:         "Globex",
			SkillChips:      mernChips,
			KeySkillsMatch:  true,
			ApplicantsCount: 5000,
			OpeningsCount:   4,
		})
		assert.True(t, result.IsEligible, "5000 applicants is under a 5200 cap")
	})

	t.Run("combined-stack title needs two core skills", func(t *testing.T) {
		result := s.Score(types.JobPosting{
			Title:           "MERN Stack Developer",
			Company:         "Globex",
			SkillChips:      []string{"react"},
			KeySkillsMatch:  true,
			ApplicantsCount: 10,
			OpeningsCount:   1,
		})
		assert.False(t, result.IsEligible)
		assert.Contains(t, result.Reason, "core MERN skills")
	})
}

func TestScoreStagedTitleBonus(t *testing.T) {
	s := NewScorer()

	// One low-weight demanded skill keeps the raw percentage under 20, so a
	// suitable title injects the largest staged bonus.
	result := s.Score(types.JobPosting{
		Title:           "Frontend Developer",
		Company:         "Globex",
		Description:     "We value agile practices in daily work.",
		KeySkillsMatch:  true,
		ApplicantsCount: 10,
		OpeningsCount:   1,
	})

	assert.False(t, result.IsEligible)
	assert.Contains(t, result.Reason, "below threshold")
	assert.Greater(t, result.MatchPercentage, result.InitialMatchPercentage,
		"staged bonus raises the reported percentage")
	assert.Greater(t, result.InitialMatchPercentage, 0.0)
}

func TestScorePercentageBounds(t *testing.T) {
	s := NewScorer()

	jobs := []types.JobPosting{
		{Title: "Node JS Backend Developer", Company: "Globex", Description: "node express api work"},
		{Title: "React Js Developer", Company: "Globex", SkillChips: mernChips, KeySkillsMatch: true, ApplicantsCount: 10, OpeningsCount: 1},
		{Title: "Clerk", Company: "Globex"},
		{Title: "Engineer", Company: "Globex", SkillChips: mernChips, ApplicantsCount: types.ApplicantsUnknown},
	}
	for _, job := range jobs {
		result := s.Score(job)
		assert.GreaterOrEqual(t, result.MatchPercentage, 0.0, "title %s", job.Title)
		assert.LessOrEqual(t, result.MatchPercentage, 100.0, "title %s", job.Title)
	}
}

func TestScoreIsDeterministic(t *testing.T) {
	s := NewScorer()
	job := types.JobPosting{
		Title:           "Software Engineer",
		Company:         "Globex",
		SkillChips:      mernChips,
		Description:     "react hooks, rest api, docker and ci/cd pipelines",
		KeySkillsMatch:  true,
		ApplicantsCount: 50,
		OpeningsCount:   1,
	}

	first := s.Score(job)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, s.Score(job))
	}
}
