// internal/advisor/policy.go
package advisor

import "fmt"

// Confidence bands. A diagnosed response sits above followUpThreshold and
// gets a follow-up reminder; anything below lowConfidenceThreshold gets an
// expert-referral notice; the band in between gets neither.
const (
	followUpThreshold      = 0.7
	lowConfidenceThreshold = 0.6

	generalConfidence = 0.6
	errorConfidence   = 0.1
	followUpAfterDays = 7
)

// NoticeFor returns the trailing notice for a confidence score, or "" when
// the score falls in the neutral band. Boundary values take the neutral
// band: exactly 0.7 earns no follow-up and exactly 0.6 earns no referral.
func NoticeFor(confidence float64, lang Language) string {
	templates := templatesFor(lang)
	switch {
	case confidence > followUpThreshold:
		return fmt.Sprintf(templates.FollowUp, followUpAfterDays)
	case confidence < lowConfidenceThreshold:
		return templates.ConfidenceLow
	default:
		return ""
	}
}
