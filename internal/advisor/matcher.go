// internal/advisor/matcher.go
package advisor

import (
	"strings"
	"unicode/utf8"
)

// minSymptomTokenLen filters connective words like "on" and "of" out of the
// symptom token pool. Shorter tokens match almost any sentence and would let
// a disease shadow an explicit pest mention.
const minSymptomTokenLen = 4

// genericTokens are crop-anatomy words that pass the length filter but
// appear in nearly any farmer query. Left in the pool they would claim
// queries like "aphids on my plant" for a disease before the pest scan
// runs.
var genericTokens = map[string]bool{
	"plant": true,
	"leaf":  true,
	"पौधे":  true,
	"पत्ती": true,
	"మొక్క": true,
}

// matchConfidence is assigned to every positive disease or pest match.
const matchConfidence = 0.8

// Detect scans the query text against the knowledge base for the given
// language. Diseases are checked first in catalog order; pests are only
// considered when no disease matched. The first hit wins and the scan
// stops, so results are deterministic for a given query and language.
func Detect(queryText string, lang Language) DiagnosisResult {
	queryLower := strings.ToLower(queryText)

	for _, disease := range Diseases(lang) {
		for _, symptom := range disease.Symptoms {
			if symptomMatches(symptom, queryLower) {
				return DiagnosisResult{
					Kind:       IssueDisease,
					IssueKey:   disease.Key,
					Confidence: matchConfidence,
				}
			}
		}
	}

	for _, pest := range Pests(lang) {
		if strings.Contains(queryLower, strings.ToLower(pest.Key)) {
			return DiagnosisResult{
				Kind:       IssuePest,
				IssueKey:   pest.Key,
				Confidence: matchConfidence,
			}
		}
	}

	return DiagnosisResult{}
}

// symptomMatches reports whether any usable token of the symptom phrase
// occurs as a substring of the lowercased query. Tokens below the length
// cutoff and generic anatomy words are not usable.
func symptomMatches(symptom, queryLower string) bool {
	for _, token := range strings.Fields(strings.ToLower(symptom)) {
		if utf8.RuneCountInString(token) < minSymptomTokenLen {
			continue
		}
		if genericTokens[token] {
			continue
		}
		if strings.Contains(queryLower, token) {
			return true
		}
	}
	return false
}
