package matching

import (
	"regexp"
	"strconv"
)

const (
	// Acceptable band for the minimum years a posting may demand.
	minAcceptableYears = 1
	maxAcceptableYears = 3
)

// experiencePatterns are tried in order; the first match decides.
var experiencePatterns = []*regexp.Regexp{
	// Range: "2 to 5 years experience", "2-5 years of experience"
	regexp.MustCompile(`(?i)(\d+)\s*(?:to|-)\s*(\d+)\s*years?\s*(?:of\s*)?experience`),
	// "3+ years experience", "3 years of experience"
	regexp.MustCompile(`(?i)(\d+)\+?\s*years?\s*(?:of\s*)?experience`),
	// "minimum 2 years experience"
	regexp.MustCompile(`(?i)minimum\s*(\d+)\s*years?\s*(?:of\s*)?experience`),
	// "at least 2 years experience"
	regexp.MustCompile(`(?i)at\s*least\s*(\d+)\s*years?\s*(?:of\s*)?experience`),
}

// ExperienceRequirement is the outcome of extracting an experience demand
// from a description. Absence of any experience text counts as satisfied.
type ExperienceRequirement struct {
	IsValid       bool
	Min           int
	Max           int // 0 when the posting gave a single number
	OriginalMatch string
	Reason        string
}

// ExtractExperienceRequirement scans the description for an experience
// demand. A requirement is satisfied only when the extracted minimum falls
// inside the acceptable band.
func ExtractExperienceRequirement(description string) ExperienceRequirement {
	if description == "" {
		return ExperienceRequirement{IsValid: true, Reason: "No description provided"}
	}

	for _, pattern := range experiencePatterns {
		match := pattern.FindStringSubmatch(description)
		if match == nil {
			continue
		}

		minYears, err := strconv.Atoi(match[1])
		if err != nil {
			return ExperienceRequirement{
				IsValid:       false,
				OriginalMatch: match[0],
				Reason:        "Invalid experience format or experience requirement doesn't match",
			}
		}
		inRange := minYears >= minAcceptableYears && minYears <= maxAcceptableYears

		req := ExperienceRequirement{
			IsValid:       inRange,
			Min:           minYears,
			OriginalMatch: match[0],
			Reason:        "Experience requirement matched",
		}
		if !inRange {
			req.Reason = "Experience requirement NOT matched"
		}
		if len(match) > 2 && match[2] != "" {
			req.Max, _ = strconv.Atoi(match[2])
		}
		return req
	}

	return ExperienceRequirement{IsValid: true, Reason: "No experience requirement mentioned"}
}
