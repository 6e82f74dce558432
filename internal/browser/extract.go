package browser

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"

	"github.com/swapnil/naukri-auto-apply/internal/types"
)

// Posting page selectors. These track the portal's hashed CSS module class
// names and break when the portal ships a redesign.
const (
	selDescription  = ".styles_JDC__dang-inner-html__h0K4t"
	selSkillChip    = ".styles_chip__7YCfG"
	selHeaderStat   = ".styles_jhc__stat__PgY67"
	selMatchDetails = ".styles_MS__details__iS7mj"
)

// ExtractDetail implements apply.PageInspector. It snapshots the rendered
// DOM and parses it offline so a single round trip serves all fields.
func (b *Browser) ExtractDetail(ctx context.Context) (types.JobDetail, error) {
	var html string
	if err := b.run(ctx, b.opts.NavTimeout, chromedp.OuterHTML("html", &html)); err != nil {
		return types.JobDetail{}, fmt.Errorf("failed to snapshot posting page: %w", err)
	}
	return parseDetail(html)
}

func parseDetail(html string) (types.JobDetail, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return types.JobDetail{}, fmt.Errorf("failed to parse posting page: %w", err)
	}

	detail := types.JobDetail{
		Description:     strings.TrimSpace(doc.Find(selDescription).Text()),
		ApplicantsCount: types.ApplicantsUnknown,
		OpeningsCount:   1,
	}

	doc.Find(selSkillChip).Each(func(_ int, s *goquery.Selection) {
		chip := strings.ToLower(strings.TrimSpace(s.Text()))
		if chip != "" {
			detail.SkillChips = append(detail.SkillChips, chip)
		}
	})

	doc.Find(selHeaderStat).Each(func(_ int, s *goquery.Selection) {
		label := s.Text()
		value := strings.TrimSpace(s.Find("span").Last().Text())
		switch {
		case strings.Contains(label, "Applicants:"):
			if n, ok := parseStatNumber(value); ok {
				detail.ApplicantsCount = n
			}
		case strings.Contains(label, "Openings:"):
			if n, ok := parseStatNumber(value); ok && n > 0 {
				detail.OpeningsCount = n
			}
		}
	})

	doc.Find(selMatchDetails).Each(func(_ int, s *goquery.Selection) {
		label := strings.TrimSpace(s.Find("span").Text())
		switch {
		case label == "Keyskills" && s.Find("i.ni-icon-check_circle").Length() > 0:
			detail.KeySkillsMatch = true
		case label == "Work Experience" && s.Find("i.ni-icon-crossMatchscore").Length() > 0:
			detail.WorkExperienceMismatch = true
		}
	})

	return detail, nil
}

// parseStatNumber handles grouped counts like "4,500". The portal shows
// "50+" style saturated counts on some postings; the suffix is dropped.
func parseStatNumber(raw string) (int, bool) {
	cleaned := strings.ReplaceAll(raw, ",", "")
	cleaned = strings.TrimSuffix(cleaned, "+")
	n, err := strconv.Atoi(strings.TrimSpace(cleaned))
	if err != nil {
		return 0, false
	}
	return n, true
}
