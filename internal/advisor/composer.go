// internal/advisor/composer.go
package advisor

import (
	"fmt"
	"strings"
	"time"

	"github.com/sanjaykumar079/farmer-backend/internal/common/logger"
	"github.com/sanjaykumar079/farmer-backend/internal/common/metrics"
)

// Composer turns a farmer query into an advisory response. It is stateless
// apart from its logger and safe for concurrent use.
type Composer struct {
	logger logger.Logger
}

func NewComposer(log logger.Logger) *Composer {
	return &Composer{logger: log}
}

// Compose builds the advisory response for a query. It never returns an
// error: any internal fault is recovered and replaced by the per-language
// fallback response with ResponseType set to ResponseError.
func (c *Composer) Compose(input ComposeInput) (resp ComposedResponse) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("Advisory composition failed", map[string]interface{}{
				"panic":    fmt.Sprintf("%v", r),
				"language": input.Language,
			})
			resp = fallbackResponse(input.Language)
			metrics.QueriesFailed.WithLabelValues("COMPOSE_PANIC").Inc()
		}
		metrics.QueriesProcessed.WithLabelValues(string(resp.ResponseType), string(resp.Language)).Inc()
		metrics.ComposeDuration.WithLabelValues(string(resp.ResponseType)).Observe(time.Since(start).Seconds())
	}()

	lang := NormalizeLanguage(input.Language)
	templates := templatesFor(lang)

	c.logger.Info("Composing advisory response", map[string]interface{}{
		"language": string(lang),
		"queryLen": len(input.QueryText),
		"cropType": input.CropType,
		"hasImage": input.Image != nil,
	})

	diagnosis := Detect(input.QueryText, lang)

	resp = ComposedResponse{
		Language:    lang,
		Suggestions: Suggestions(lang),
	}

	if diagnosis.Detected() {
		resp.Confidence = diagnosis.Confidence
		switch diagnosis.Kind {
		case IssueDisease:
			record := diseaseRecord(lang, diagnosis.IssueKey)
			resp.ResponseType = ResponseDiseaseDiagnosis
			resp.ResponseText = fmt.Sprintf(templates.DiseaseDetected, diagnosis.IssueKey) + "\n\n" +
				fmt.Sprintf("**%s:** %s\n\n", Translate("Treatment", lang), record.Treatment) +
				fmt.Sprintf("**%s:** %s", Translate("Prevention", lang), record.Prevention)
			resp.Actions = []string{
				Translate("Apply recommended treatment", lang),
				Translate("Monitor progress daily", lang),
				Translate("Remove affected plant parts", lang),
			}
		case IssuePest:
			record := pestRecord(lang, diagnosis.IssueKey)
			resp.ResponseType = ResponsePestControl
			resp.ResponseText = fmt.Sprintf(templates.PestIdentified, diagnosis.IssueKey) + "\n\n" +
				fmt.Sprintf("**%s:** %s\n\n", Translate("Identification", lang), record.Identification) +
				fmt.Sprintf("**%s:** %s\n\n", Translate("Treatment", lang), record.Treatment) +
				fmt.Sprintf("**%s:** %s", Translate("Prevention", lang), record.Prevention)
			resp.Actions = []string{
				Translate("Apply pest control measures", lang),
				Translate("Set up monitoring traps", lang),
				Translate("Check plants regularly", lang),
			}
		}
	} else {
		resp.Confidence = generalConfidence
		resp.ResponseType = ResponseGeneralAdvice
		resp.ResponseText = c.composeGeneralAdvice(input, lang, templates)
		resp.Actions = []string{}
	}

	if notice := NoticeFor(resp.Confidence, lang); notice != "" {
		resp.ResponseText += "\n\n" + notice
	}

	c.logger.Info("Advisory response composed", map[string]interface{}{
		"responseType": string(resp.ResponseType),
		"confidence":   resp.Confidence,
		"language":     string(lang),
	})

	return resp
}

// composeGeneralAdvice builds the no-diagnosis branch: template header, then
// crop, location, and image sections when present, then one generic advice
// sentence picked by keyword scan.
func (c *Composer) composeGeneralAdvice(input ComposeInput, lang Language, templates responseTemplates) string {
	var sb strings.Builder
	sb.WriteString(templates.GeneralAdvice)
	sb.WriteString("\n\n")

	if input.CropType != "" {
		if advice := cropAdviceFor(input.CropType, lang); advice != "" {
			sb.WriteString(advice)
			sb.WriteString("\n\n")
		}
	}

	if input.Location != "" {
		sb.WriteString(fmt.Sprintf(locationAdviceTemplates[lang], input.Location))
		sb.WriteString("\n\n")
	}

	if input.Image != nil {
		sb.WriteString(fmt.Sprintf("**%s:** %s\n\n", Translate("Image Analysis", lang), input.Image.Description))
		if input.Image.Recommendations != "" {
			sb.WriteString(fmt.Sprintf("**%s:** %s", Translate("Recommendations", lang), input.Image.Recommendations))
		}
	}

	sb.WriteString(genericAdviceFor(input.QueryText, lang))
	return sb.String()
}

func diseaseRecord(lang Language, key string) DiseaseRecord {
	for _, record := range Diseases(lang) {
		if record.Key == key {
			return record
		}
	}
	return DiseaseRecord{Key: key}
}

func pestRecord(lang Language, key string) PestRecord {
	for _, record := range Pests(lang) {
		if record.Key == key {
			return record
		}
	}
	return PestRecord{Key: key}
}

func cropAdviceFor(cropType string, lang Language) string {
	byCrop, ok := cropAdvice[lang]
	if !ok {
		byCrop = cropAdvice[LangEnglish]
	}
	return byCrop[strings.ToLower(cropType)]
}

// genericAdviceFor scans the query for advice keywords in fixed order and
// returns the first match, or the per-language default sentence.
func genericAdviceFor(queryText string, lang Language) string {
	byKeyword, ok := genericAdvice[lang]
	if !ok {
		byKeyword = genericAdvice[LangEnglish]
	}
	queryLower := strings.ToLower(queryText)
	for _, keyword := range genericAdviceOrder {
		if strings.Contains(queryLower, keyword) {
			return byKeyword[keyword]
		}
	}
	if advice, ok := defaultGenericAdvice[lang]; ok {
		return advice
	}
	return defaultGenericAdvice[LangEnglish]
}

// fallbackResponse is the panic-recovery response. The raw language code is
// used for lookup so an unknown code still degrades to English.
func fallbackResponse(language string) ComposedResponse {
	lang := NormalizeLanguage(language)
	return ComposedResponse{
		ResponseText: fallbackResponses[lang],
		Confidence:   errorConfidence,
		ResponseType: ResponseError,
		Suggestions:  []string{},
		Actions:      []string{},
		Language:     lang,
	}
}
