// internal/advisor/types.go
package advisor

import "strings"

// Language is a supported response language code.
type Language string

const (
	LangEnglish Language = "en"
	LangHindi   Language = "hi"
	LangTelugu  Language = "te"
)

// NormalizeLanguage maps any language code onto the supported set. Codes
// outside the set fall back to English rather than erroring; every lookup
// site relies on this.
func NormalizeLanguage(code string) Language {
	switch Language(strings.ToLower(code)) {
	case LangEnglish:
		return LangEnglish
	case LangHindi:
		return LangHindi
	case LangTelugu:
		return LangTelugu
	default:
		return LangEnglish
	}
}

// IssueKind tags a detected issue as a disease or a pest.
type IssueKind string

const (
	IssueDisease IssueKind = "disease"
	IssuePest    IssueKind = "pest"
)

// DiagnosisResult is the keyword matcher's output. IssueKey is empty when
// nothing matched; the composer assigns its own baseline confidence in that
// case.
type DiagnosisResult struct {
	Kind       IssueKind `json:"kind,omitempty"`
	IssueKey   string    `json:"issue_key,omitempty"`
	Confidence float64   `json:"confidence"`
}

// Detected reports whether the matcher found an issue.
func (d DiagnosisResult) Detected() bool {
	return d.IssueKey != ""
}

// ResponseType classifies a composed response.
type ResponseType string

const (
	ResponseDiseaseDiagnosis ResponseType = "disease_diagnosis"
	ResponsePestControl      ResponseType = "pest_control"
	ResponseGeneralAdvice    ResponseType = "general_advice"
	ResponseError            ResponseType = "error"
)

// ComposedResponse is the advisor's output contract. ResponseText is never
// empty: internal faults substitute the per-language fallback sentence with
// ResponseType set to ResponseError.
type ComposedResponse struct {
	ResponseText string       `json:"response"`
	Confidence   float64      `json:"confidence"`
	ResponseType ResponseType `json:"response_type"`
	Suggestions  []string     `json:"suggestions"`
	Actions      []string     `json:"actions"`
	Language     Language     `json:"language"`
}

// ImageAnalysis is the image-classification collaborator's result as consumed
// by the composer.
type ImageAnalysis struct {
	Description     string   `json:"description"`
	Recommendations string   `json:"recommendations,omitempty"`
	DetectedIssues  []string `json:"detected_issues"`
	Confidence      float64  `json:"confidence"`
}

// ComposeInput carries a query and its optional context hints into the
// composer.
type ComposeInput struct {
	QueryText string
	Language  string
	CropType  string
	Location  string
	Image     *ImageAnalysis
}
