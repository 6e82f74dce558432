package matching

import (
	"regexp"
	"strings"
)

var (
	reactTitleBonusRe  = regexp.MustCompile(`(?i)react\s*js(?:\s+(?:frontend|web))?\s*developer`)
	nodeTitlePenaltyRe = regexp.MustCompile(`(?i)node[.\s]*js(?:\s+(?:backend|server))?\s*developer`)

	fullstackTitleRe     = regexp.MustCompile(`(?i)fullstack\s*(?:developer|engineer)`)
	combinedStackTitleRe = regexp.MustCompile(`(?i)\b(?:fullstack|full stack|mern)\b`)

	webDevTitleRe   = regexp.MustCompile(`(?i)\bweb\s+develop(?:er|ment)\b`)
	frontendTitleRe = regexp.MustCompile(`(?i)\bfront\s*(?:-|\s)?\s*end\s+develop(?:er|ment|ing)|front\s*(?:-|\s)?\s*end\s+engineer\b`)
	reactDevTitleRe = regexp.MustCompile(`(?i)\breact(?:\s*\.?\s*js)?\s+develop(?:er|ment|ing)|react(?:\s*\.?\s*js)?\s+engineer\b`)
	nextDevTitleRe  = regexp.MustCompile(`(?i)\bnext(?:\s*\.?\s*js)?\s+develop(?:er|ment|ing)|next(?:\s*\.?\s*js)?\s+engineer\b`)
)

// titleBonus rewards a strong frontend title and heavily penalizes a
// backend-only Node.js title phrasing.
func titleBonus(title string) float64 {
	var bonus float64
	if reactTitleBonusRe.MatchString(title) {
		bonus += 12
	}
	if nodeTitlePenaltyRe.MatchString(title) {
		bonus -= 50
	}
	return bonus
}

// isCombinedStackTitle reports whether the title claims a fullstack or MERN
// role, which requires core-stack backing from primary matches.
func isCombinedStackTitle(title string) bool {
	return combinedStackTitleRe.MatchString(title)
}

// fullstackNeedsNode applies the secondary runtime check: a fullstack title
// must mention Node somewhere in the description or tags.
func fullstackNeedsNode(title, description string, chips []string) bool {
	if !fullstackTitleRe.MatchString(title) {
		return true
	}
	nodeKeywords := []string{"node", "node.js", "nodejs"}
	descLower := strings.ToLower(description)
	for _, kw := range nodeKeywords {
		if strings.Contains(descLower, kw) {
			return true
		}
		for _, chip := range chips {
			if strings.Contains(strings.ToLower(chip), kw) {
				return true
			}
		}
	}
	return false
}

// isWebDevTitle reports whether the title matches one of the target role
// phrasings (web, frontend, React, or Next developer/engineer).
func isWebDevTitle(title string) bool {
	return webDevTitleRe.MatchString(title) ||
		frontendTitleRe.MatchString(title) ||
		reactDevTitleRe.MatchString(title) ||
		nextDevTitleRe.MatchString(title)
}
