package usecase

import "strings"

// containsFold reports whether needle appears in haystack, ignoring case.
// An empty needle is treated as absent by callers and never reaches here.
func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// containsAnyFold reports whether any of the fields contains needle, ignoring case
func containsAnyFold(needle string, fields ...string) bool {
	for _, f := range fields {
		if containsFold(f, needle) {
			return true
		}
	}
	return false
}

// splitKeywords splits comma-separated text into trimmed, lower-cased keywords.
// Empty tokens are dropped so "diabetes," does not match every row.
func splitKeywords(text string) []string {
	parts := strings.Split(text, ",")
	keywords := make([]string, 0, len(parts))
	for _, p := range parts {
		kw := strings.ToLower(strings.TrimSpace(p))
		if kw != "" {
			keywords = append(keywords, kw)
		}
	}
	return keywords
}

// matchesAnyKeyword reports whether any lower-cased keyword is a substring of text
func matchesAnyKeyword(text string, keywords []string) bool {
	lowered := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}
