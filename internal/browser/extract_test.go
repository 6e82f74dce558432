package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swapnil/naukri-auto-apply/internal/types"
)

const postingHTML = `<html><body>
<section class="styles_jhc__stat__PgY67"><span>Applicants:</span><span>4,521</span></section>
<section class="styles_jhc__stat__PgY67"><span>Openings:</span><span>3</span></section>
<div class="styles_MS__details__iS7mj"><i class="ni-icon-check_circle"></i><span>Keyskills</span></div>
<div class="styles_MS__details__iS7mj"><i class="ni-icon-crossMatchscore"></i><span>Work Experience</span></div>
<div class="styles_JDC__dang-inner-html__h0K4t">
  Build UIs with React and Node.js. 2 to 4 years of experience.
</div>
<div class="styles_chip__7YCfG"> React </div>
<div class="styles_chip__7YCfG">Node.js</div>
<div class="styles_chip__7YCfG">MongoDB</div>
</body></html>`

func TestParseDetail(t *testing.T) {
	detail, err := parseDetail(postingHTML)
	require.NoError(t, err)

	assert.Equal(t, []string{"react", "node.js", "mongodb"}, detail.SkillChips)
	assert.Contains(t, detail.Description, "Build UIs with React and Node.js.")
	assert.Equal(t, 4521, detail.ApplicantsCount)
	assert.Equal(t, 3, detail.OpeningsCount)
	assert.True(t, detail.KeySkillsMatch)
	assert.True(t, detail.WorkExperienceMismatch)
}

func TestParseDetailDefaults(t *testing.T) {
	detail, err := parseDetail(`<html><body><p>bare page</p></body></html>`)
	require.NoError(t, err)

	assert.Empty(t, detail.SkillChips)
	assert.Empty(t, detail.Description)
	assert.Equal(t, types.ApplicantsUnknown, detail.ApplicantsCount)
	assert.Equal(t, 1, detail.OpeningsCount)
	assert.False(t, detail.KeySkillsMatch)
	assert.False(t, detail.WorkExperienceMismatch)
}

func TestParseDetailMismatchedBadges(t *testing.T) {
	// A cross icon next to Keyskills must not set the match flag.
	html := `<html><body>
<div class="styles_MS__details__iS7mj"><i class="ni-icon-crossMatchscore"></i><span>Keyskills</span></div>
<div class="styles_MS__details__iS7mj"><i class="ni-icon-check_circle"></i><span>Work Experience</span></div>
</body></html>`

	detail, err := parseDetail(html)
	require.NoError(t, err)
	assert.False(t, detail.KeySkillsMatch)
	assert.False(t, detail.WorkExperienceMismatch)
}

func TestParseStatNumber(t *testing.T) {
	tests := []struct {
		raw    string
		want   int
		wantOK bool
	}{
		{"4,521", 4521, true},
		{"50+", 50, true},
		{" 12 ", 12, true},
		{"", 0, false},
		{"N/A", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseStatNumber(tt.raw)
		assert.Equal(t, tt.wantOK, ok, tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)
	}
}
