// internal/translations/catalog.go
package translations

import (
	"fmt"
	"sort"
	"strings"
)

// Categories within each language's catalog.
const (
	CategoryFarmerResponses  = "farmer_responses"
	CategoryOfficerTemplates = "officer_templates"
)

// catalog holds static per-language template tables keyed by category.
// Placeholders like {disease} and {days} are left verbatim for clients
// to substitute.
var catalog = map[string]map[string]map[string]string{
	"en": {
		CategoryFarmerResponses: {
			"greeting":          "Hello! I'm here to help with your farming questions.",
			"disease_detected":  "I've detected a potential {disease} in your crop. Here's what you should do:",
			"healthy_crop":      "Your crop looks healthy! Keep up the good work.",
			"need_more_info":    "I need more information to help you better. Can you provide more details about:",
			"treatment_success": "The treatment should show results within {days} days.",
			"follow_up":         "Please check back in {days} days and let me know how it's going.",
		},
		CategoryOfficerTemplates: {
			"acknowledgment":       "Thank you for submitting your query. I'm reviewing it now.",
			"request_details":      "To provide better assistance, please provide:",
			"treatment_plan":       "Based on your description, here's my recommended treatment plan:",
			"follow_up_required":   "Please follow up in {days} days with photos of progress.",
			"success_confirmation": "Great to hear the treatment is working! Continue with the current approach.",
		},
	},
	"hi": {
		CategoryFarmerResponses: {
			"greeting":          "नमस्ते! मैं आपके खेती के सवालों में मदद के लिए यहां हूं।",
			"disease_detected":  "मैंने आपकी फसल में संभावित {disease} का पता लगाया है। आपको यह करना चाहिए:",
			"healthy_crop":      "आपकी फसल स्वस्थ दिख रही है! अच्छा काम जारी रखें।",
			"need_more_info":    "आपकी बेहतर मदद के लिए मुझे अधिक जानकारी चाहिए। क्या आप इसके बारे में और विवरण दे सकते हैं:",
			"treatment_success": "उपचार {days} दिनों के भीतर परिणाम दिखाना चाहिए।",
			"follow_up":         "कृपया {days} दिनों में वापस जांच करें और मुझे बताएं कि कैसा चल रहा है।",
		},
		CategoryOfficerTemplates: {
			"acknowledgment":       "आपकी समस्या भेजने के लिए धन्यवाद। मैं इसकी समीक्षा कर रहा हूं।",
			"request_details":      "बेहतर सहायता प्रदान करने के लिए, कृपया प्रदान करें:",
			"treatment_plan":       "आपके विवरण के आधार पर, यहां मेरी सुझावित उपचार योजना है:",
			"follow_up_required":   "कृपया {days} दिनों में प्रगति की तस्वीरों के साथ फॉलो अप करें।",
			"success_confirmation": "यह सुनकर खुशी हुई कि उपचार काम कर रहा है! वर्तमान दृष्टिकोण जारी रखें।",
		},
	},
	"te": {
		CategoryFarmerResponses: {
			"greeting":          "నమస్కారం! మీ వ్యవసాయ ప్రశ్నలలో సహాయం చేయడానికి నేను ఇక్కడ ఉన్నాను.",
			"disease_detected":  "మీ పంటలో సంభావ్య {disease} ను గుర్తించాను. మీరు ఇలా చేయాలి:",
			"healthy_crop":      "మీ పంట ఆరోగ్యంగా కనిపిస్తోంది! మంచి పని కొనసాగించండి.",
			"need_more_info":    "మీకు మెరుగైన సహాయం అందించడానికి నాకు మరింత సమాచారం అవసరం. మీరు దీని గురించి మరిన్ని వివరాలను అందించగలరా:",
			"treatment_success": "చికిత్స {days} రోజుల్లో ఫలితాలు చూపాలి.",
			"follow_up":         "దయచేసి {days} రోజుల్లో తిరిగి తనిఖీ చేసి, ఎలా జరుగుతుందో నాకు తెలియజేయండి.",
		},
		CategoryOfficerTemplates: {
			"acknowledgment":       "మీ ప్రశ్న పంపినందుకు ధన్యవాదాలు. నేను దానిని ఇప్పుడు సమీక్షిస్తున్నాను.",
			"request_details":      "మెరుగైన సహాయాన్ని అందించడానికి, దయచేసి అందించండి:",
			"treatment_plan":       "మీ వివరణ ఆధారంగా, ఇదిగో నా సిఫార్సు చేసిన చికిత్స ప్రణాళిక:",
			"follow_up_required":   "దయచేసి {days} రోజుల్లో పురోగతి ఫోటోలతో తిరిగి సంప్రదించండి.",
			"success_confirmation": "చికిత్స పనిచేస్తుందని విని సంతోషం! ప్రస్తుత విధానాన్ని కొనసాగించండి.",
		},
	},
}

// TranslationResult is the outcome of a template-based translation attempt.
type TranslationResult struct {
	Original     string `json:"original"`
	Translated   string `json:"translated"`
	Language     string `json:"language"`
	Category     string `json:"category"`
	TemplateUsed string `json:"template_used,omitempty"`
	Note         string `json:"note,omitempty"`
}

// Languages lists supported language codes in sorted order.
func Languages() []string {
	langs := make([]string, 0, len(catalog))
	for lang := range catalog {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// Supported reports whether a language has a catalog.
func Supported(language string) bool {
	_, ok := catalog[strings.ToLower(language)]
	return ok
}

// ForLanguage returns the full catalog for a language.
func ForLanguage(language string) (map[string]map[string]string, error) {
	tables, ok := catalog[strings.ToLower(language)]
	if !ok {
		return nil, unsupportedError(language)
	}
	return tables, nil
}

// Category returns one category table for a language.
func Category(language, category string) (map[string]string, error) {
	tables, err := ForLanguage(language)
	if err != nil {
		return nil, err
	}
	table, ok := tables[category]
	if !ok {
		return nil, fmt.Errorf("unknown category %q", category)
	}
	return table, nil
}

// Translate attempts a keyword-based template translation: when the text
// mentions a template key in the chosen category, that template is returned.
// Unmatched text passes through unchanged with an explanatory note.
func Translate(language, text, category string) (*TranslationResult, error) {
	tables, err := ForLanguage(language)
	if err != nil {
		return nil, err
	}

	result := &TranslationResult{
		Original:   text,
		Translated: text,
		Language:   strings.ToLower(language),
		Category:   category,
	}

	table, ok := tables[category]
	if !ok {
		result.Note = "No translation template found, using original text"
		return result, nil
	}

	textLower := strings.ToLower(text)
	keys := make([]string, 0, len(table))
	for key := range table {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if strings.Contains(textLower, strings.ToLower(key)) {
			result.Translated = table[key]
			result.TemplateUsed = key
			return result, nil
		}
	}

	result.Note = "No translation template found, using original text"
	return result, nil
}

func unsupportedError(language string) error {
	return fmt.Errorf("language %q not supported, available languages: %s",
		language, strings.Join(Languages(), ", "))
}
