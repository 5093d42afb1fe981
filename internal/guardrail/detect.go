// Package guardrail closes the loop between the deterministic eligibility
// engine and the free-text reply drafted by the language model: drafts that
// quote monetary figures are re-verified against the engine's raw tool output
// before they reach the customer.
package guardrail

import "regexp"

// Heuristic currency-shorthand patterns. Matching is deliberately broad: a
// false positive only costs one verification call, a false negative lets a
// hallucinated figure through.
var monetaryPatterns = []*regexp.Regexp{
	// "5 lakh", "2.5 lakhs"
	regexp.MustCompile(`(?i)\b\d+(?:\.\d+)?\s*lakhs?\b`),
	// "5L", "2.5L" shorthand
	regexp.MustCompile(`\b\d+(?:\.\d+)?L\b`),
	// Indian digit grouping: 2,50,000 or 1,00,00,000
	regexp.MustCompile(`\b\d{1,2}(?:,\d{2})*,\d{3}\b`),
}

// ContainsMonetaryFigure reports whether the text carries at least one
// monetary-magnitude expression the guardrail should verify.
func ContainsMonetaryFigure(text string) bool {
	for _, p := range monetaryPatterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// Figures returns every monetary expression found in the text, in order of
// appearance. Used for logging and tests.
func Figures(text string) []string {
	var out []string
	for _, p := range monetaryPatterns {
		out = append(out, p.FindAllString(text, -1)...)
	}
	return out
}
