package matching

import "strings"

// blockedCompanies are case-insensitive substrings matched against the
// posting's company name. Partial matches are intentional: "accenture"
// blocks "Accenture Solutions", "Accenture India", and so on.
var blockedCompanies = []string{
	// Recruitment agencies
	"rgb",
	"gedu",
	"uplers",
	"leading client",

	// Mass recruiters / service companies
	"accenture",
	"accenture solutions",
	"accenture india",
	"accenture pvt",
	"accenture limited",
	"tcs",
	"tata consultancy",
	"tcs limited",
	"wipro",
	"infosys",
	"cognizant",
	"capgemini",
	"hcl",
	"tech mahindra",
}

// BlockedCompanyMatch returns the blocklist pattern the company name matched,
// or "" when the company is not blocked.
func BlockedCompanyMatch(company string) string {
	if company == "" {
		return ""
	}
	lower := strings.ToLower(strings.TrimSpace(company))
	for _, pattern := range blockedCompanies {
		if strings.Contains(lower, pattern) {
			return pattern
		}
	}
	return ""
}

// IsCompanyBlocked reports whether the company matches any blocklist entry.
func IsCompanyBlocked(company string) bool {
	return BlockedCompanyMatch(company) != ""
}
