// internal/advisor/suggestions.go
package advisor

// maxSuggestions caps how many follow-up suggestions a response carries.
const maxSuggestions = 3

var suggestionCatalog = map[Language][]string{
	LangEnglish: {
		"Consider taking photos of affected areas for better diagnosis",
		"Monitor the situation for 3-5 days before taking action",
		"Consult with local agricultural extension officers",
		"Check soil moisture levels regularly",
		"Keep detailed records of treatments applied",
	},
	LangHindi: {
		"बेहतर निदान के लिए प्रभावित क्षेत्रों की तस्वीरें लेने पर विचार करें",
		"कार्रवाई करने से पहले 3-5 दिनों तक स्थिति की निगरानी करें",
		"स्थानीय कृषि विस्तार अधिकारियों से सलाह लें",
		"मिट्टी की नमी के स्तर की नियमित जांच करें",
		"लागू किए गए उपचारों का विस्तृत रिकॉर्ड रखें",
	},
	LangTelugu: {
		"మెరుగైన నిర్ధారణ కోసం ప్రభావిత ప్రాంతాల ఫోటోలు తీయడాన్ని పరిగణించండి",
		"చర్య తీసుకునే ముందు 3-5 రోజులు పరిస్థితిని పర్యవేక్షించండి",
		"స్థానిక వ్యవసాయ విస్తరణ అధికారులతో సంప్రదించండి",
		"మట్టి తేమ స్థాయిలను క్రమం తప్పకుండా తనిఖీ చేయండి",
		"వర్తించే చికిత్సల వివరణాత్మక రికార్డులను ఉంచండి",
	},
}

// Suggestions returns the first maxSuggestions follow-up suggestions for a
// language. The list is static per language: the detected issue does not
// change the selection.
func Suggestions(lang Language) []string {
	pool, ok := suggestionCatalog[lang]
	if !ok {
		pool = suggestionCatalog[LangEnglish]
	}
	if len(pool) > maxSuggestions {
		pool = pool[:maxSuggestions]
	}
	out := make([]string, len(pool))
	copy(out, pool)
	return out
}
