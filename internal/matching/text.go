package matching

import (
	"regexp"
	"sync"
)

// termRegexes caches compiled whole-word matchers keyed by term. Terms come
// from static tables plus the occasional ad hoc lookup, so a lazy cache keeps
// init cheap without recompiling per call.
var termRegexes sync.Map // string -> *regexp.Regexp

// termRegex returns a case-insensitive whole-word matcher for term. The term
// is quoted so "node.js" will not match "nodexjs".
func termRegex(term string) *regexp.Regexp {
	if re, ok := termRegexes.Load(term); ok {
		return re.(*regexp.Regexp)
	}
	re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`)
	termRegexes.Store(term, re)
	return re
}

// matchesAnywhere reports whether term appears as a whole word in the
// description or in any tag.
func matchesAnywhere(term, description string, chips []string) bool {
	re := termRegex(term)
	if re.MatchString(description) {
		return true
	}
	for _, chip := range chips {
		if re.MatchString(chip) {
			return true
		}
	}
	return false
}

// matchesInChips reports whether term appears as a whole word in any tag.
func matchesInChips(term string, chips []string) bool {
	re := termRegex(term)
	for _, chip := range chips {
		if re.MatchString(chip) {
			return true
		}
	}
	return false
}

// anyTerm reports whether any of terms matches per match.
func anyTerm(terms []string, match func(string) bool) bool {
	for _, t := range terms {
		if match(t) {
			return true
		}
	}
	return false
}
