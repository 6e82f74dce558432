package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractExperienceRequirement(t *testing.T) {
	tests := []struct {
		name      string
		desc      string
		wantValid bool
		wantMin   int
		wantMax   int
	}{
		{
			name:      "empty description is satisfied",
			desc:      "",
			wantValid: true,
		},
		{
			name:      "no experience mention is satisfied",
			desc:      "Build delightful UIs with React.",
			wantValid: true,
		},
		{
			name:      "range inside the band",
			desc:      "Candidates need 2 to 5 years of experience in React.",
			wantValid: true,
			wantMin:   2,
			wantMax:   5,
		},
		{
			name:      "hyphenated range inside the band",
			desc:      "1-3 years experience required.",
			wantValid: true,
			wantMin:   1,
			wantMax:   3,
		},
		{
			name:      "range starting above the band",
			desc:      "6 to 8 years of experience mandatory.",
			wantValid: false,
			wantMin:   6,
			wantMax:   8,
		},
		{
			name:      "plus form above the band",
			desc:      "Requires 6+ years experience.",
			wantValid: false,
			wantMin:   6,
		},
		{
			name:      "single number inside the band",
			desc:      "3 years of experience with Node.",
			wantValid: true,
			wantMin:   3,
		},
		{
			name:      "minimum phrasing above the band",
			desc:      "At least 5 years of experience with Java.",
			wantValid: false,
			wantMin:   5,
		},
		{
			name:      "zero years is below the band",
			desc:      "0 years of experience accepted.",
			wantValid: false,
			wantMin:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := ExtractExperienceRequirement(tt.desc)
			assert.Equal(t, tt.wantValid, req.IsValid)
			assert.Equal(t, tt.wantMin, req.Min)
			assert.Equal(t, tt.wantMax, req.Max)
		})
	}
}
