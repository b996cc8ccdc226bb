// internal/advisor/templates.go
package advisor

// responseTemplates holds the per-language sentence templates the composer
// stitches responses from. Placeholders use fmt.Sprintf verbs.
type responseTemplates struct {
	Greeting        string
	DiseaseDetected string // %s = disease key
	PestIdentified  string // %s = pest key
	GeneralAdvice   string
	NeedMoreInfo    string
	ConfidenceLow   string
	FollowUp        string // %d = days
}

var templateCatalog = map[Language]responseTemplates{
	LangEnglish: {
		Greeting:        "Hello! I'm your AI farming assistant. I'll help you with your agricultural questions.",
		DiseaseDetected: "Based on your description, this appears to be %s. Here's what I recommend:",
		PestIdentified:  "I've identified this as a %s problem. Here's the treatment plan:",
		GeneralAdvice:   "Here's some general advice for your farming question:",
		NeedMoreInfo:    "To provide better assistance, I need more details about:",
		ConfidenceLow:   "I'm not entirely certain about this diagnosis. I recommend consulting with a local agricultural expert.",
		FollowUp:        "Please monitor the situation and update me in %d days.",
	},
	LangHindi: {
		Greeting:        "नमस्ते! मैं आपका AI कृषि सहायक हूं। मैं आपके कृषि प्रश्नों में मदद करूंगा।",
		DiseaseDetected: "आपके विवरण के आधार पर, यह %s लगता है। यहां मेरी सिफारिश है:",
		PestIdentified:  "मैंने इसे %s समस्या के रूप में पहचाना है। यहां उपचार योजना है:",
		GeneralAdvice:   "आपके कृषि प्रश्न के लिए यहां कुछ सामान्य सलाह है:",
		NeedMoreInfo:    "बेहतर सहायता प्रदान करने के लिए, मुझे इसके बारे में और विवरण चाहिए:",
		ConfidenceLow:   "मुझे इस निदान के बारे में पूरी तरह से यकीन नहीं है। मैं स्थानीय कृषि विशेषज्ञ से सलाह लेने की सलाह देता हूं।",
		FollowUp:        "कृपया स्थिति की निगरानी करें और %d दिनों में मुझे अपडेट करें।",
	},
	LangTelugu: {
		Greeting:        "నమస్కారం! నేను మీ AI వ్యవసాయ సహాయకుడను. మీ వ్యవసాయ ప్రశ్నలలో నేను సహాయం చేస్తాను.",
		DiseaseDetected: "మీ వివరణ ఆధారంగా, ఇది %s గా కనిపిస్తోంది. ఇక్కడ నా సిఫార్సు:",
		PestIdentified:  "నేను దీనిని %s సమస్యగా గుర్తించాను. ఇక్కడ చికిత్స ప్రణాళిక:",
		GeneralAdvice:   "మీ వ్యవసాయ ప్రశ్నకు ఇక్కడ కొంత సాధారణ సలహా:",
		NeedMoreInfo:    "మెరుగైన సహాయాన్ని అందించడానికి, దీని గురించి మరిన్ని వివరాలు అవసరం:",
		ConfidenceLow:   "ఈ నిర్ధారణ గురించి నాకు పూర్తి నిశ్చయత లేదు. స్థానిక వ్యవసాయ నిపుణుడిని సంప్రదించాలని నేను సిఫార్సు చేస్తున్నాను.",
		FollowUp:        "దయచేసి పరిస్థితిని పర్యవేక్షించండి మరియు %d రోజుల్లో నాకు అప్‌డేట్ చేయండి।",
	},
}

// templatesFor returns the template set for a language, falling back to English.
func templatesFor(lang Language) responseTemplates {
	if t, ok := templateCatalog[lang]; ok {
		return t
	}
	return templateCatalog[LangEnglish]
}

// labelTranslations maps fixed English labels and action phrases to hi/te.
// English is the identity; unknown labels pass through unchanged.
var labelTranslations = map[string]map[Language]string{
	"Treatment":       {LangHindi: "उपचार", LangTelugu: "చికిత్స"},
	"Prevention":      {LangHindi: "बचाव", LangTelugu: "నివారణ"},
	"Identification":  {LangHindi: "पहचान", LangTelugu: "గుర్తింపు"},
	"Image Analysis":  {LangHindi: "छवि विश्लेषण", LangTelugu: "చిత్ర విశ్లేషణ"},
	"Recommendations": {LangHindi: "सिफारिशें", LangTelugu: "సిఫార్సులు"},
	"Apply recommended treatment": {
		LangHindi:  "अनुशंसित उपचार लागू करें",
		LangTelugu: "సిఫార్సు చేయబడిన చికిత్సను వర్తింపజేయండి",
	},
	"Monitor progress daily": {
		LangHindi:  "दैनिक प्रगति की निगरानी करें",
		LangTelugu: "రోజువారీ పురోగతిని పర్యవేక్షించండి",
	},
	"Remove affected plant parts": {
		LangHindi:  "प्रभावित पौधे के हिस्सों को हटाएं",
		LangTelugu: "ప్రభావిత మొక్క భాగాలను తొలగించండి",
	},
	"Apply pest control measures": {
		LangHindi:  "कीट नियंत्रण उपाय लागू करें",
		LangTelugu: "కీటకాల నియంత్రణ చర్యలను వర్తింపజేయండి",
	},
	"Set up monitoring traps": {
		LangHindi:  "निगरानी जाल स्थापित करें",
		LangTelugu: "పర్యవేక్షణ ట్రాప్లను ఏర్పాతు చేయండి",
	},
	"Check plants regularly": {
		LangHindi:  "नियमित रूप से पौधों की जांच करें",
		LangTelugu: "మొక్కలను క్రమం తప్పకుండా తనిఖీ చేయండి",
	},
}

// Translate renders a fixed label or action phrase in the given language.
func Translate(text string, lang Language) string {
	if byLang, ok := labelTranslations[text]; ok {
		if translated, ok := byLang[lang]; ok {
			return translated
		}
	}
	return text
}

var cropAdvice = map[Language]map[string]string{
	LangEnglish: {
		"tomato": "For tomatoes, ensure consistent watering and support with stakes. Watch for blight and hornworms.",
		"wheat":  "Wheat requires good drainage and regular fertilization. Monitor for rust and aphids.",
		"rice":   "Rice needs consistent water levels and good soil preparation. Watch for blast disease.",
		"cotton": "Cotton requires warm weather and careful pest management, especially for bollworms.",
	},
	LangHindi: {
		"tomato": "टमाटर के लिए, लगातार पानी देना और दांव के साथ सहारा सुनिश्चित करें। ब्लाइट और हॉर्नवॉर्म पर नजर रखें।",
		"wheat":  "गेहूं को अच्छी जल निकासी और नियमित उर्वरीकरण की आवश्यकता होती है। जंग और एफिड्स के लिए निगरानी करें।",
		"rice":   "चावल को लगातार पानी के स्तर और अच्छी मिट्टी की तैयारी की आवश्यकता होती है। ब्लास्ट रोग पर नजर रखें।",
		"cotton": "कपास को गर्म मौसम और सावधान कीट प्रबंधन की आवश्यकता होती है, विशेष रूप से बॉलवॉर्म के लिए।",
	},
	LangTelugu: {
		"tomato": "టమాటాల కోసం, స్థిరమైన నీరు అందించడం మరియు కొట్లతో మద్దతు అందించడాన్ని నిర్ధారించండి. బ్లైట్ మరియు హార్న్‌వార్మ్‌లను గమనించండి.",
		"wheat":  "గోధుమలకు మంచి డ్రైనేజీ మరియు క్రమం తప్పకుండా ఎరువులు అవసరం. రస్ట్ మరియు అఫిడ్స్ కోసం పర్యవేక్షించండి.",
		"rice":   "బియ్యానికి స్థిరమైన నీటి స్థాయిలు మరియు మంచి నేల తయారీ అవసరం. బ్లాస్ట్ వ్యాధిని గమనించండి.",
		"cotton": "పత్తికి వెచ్చని వాతావరణం మరియు జాగ్రత్తగా పెస్ట్ మేనేజ్‌మెంట్ అవసరం, ముఖ్యంగా బోల్‌వార్మ్‌ల కోసం.",
	},
}

// locationAdviceTemplates interpolate the raw location string with %s.
var locationAdviceTemplates = map[Language]string{
	LangEnglish: "For your location in %s, consider the local climate conditions and seasonal patterns.",
	LangHindi:   "%s में आपके स्थान के लिए, स्थानीय जलवायु परिस्थितियों और मौसमी पैटर्न पर विचार करें।",
	LangTelugu:  "%s లో మీ ప్రాంతానికి, స్థానిక వాతావరణ పరిస్థితులు మరియు కాలానుగుణ నమూనాలను పరిగణించండి.",
}

// genericAdviceOrder fixes the keyword scan order for generic advice.
var genericAdviceOrder = []string{"water", "soil", "fertilizer", "weather"}

var genericAdvice = map[Language]map[string]string{
	LangEnglish: {
		"water":      "Proper watering is crucial - water deeply but less frequently to encourage root growth.",
		"soil":       "Healthy soil is the foundation of good farming. Consider soil testing and organic amendments.",
		"fertilizer": "Use balanced fertilizers based on soil test results. Organic options are often beneficial.",
		"weather":    "Monitor weather conditions and adjust farming practices accordingly.",
	},
	LangHindi: {
		"water":      "उचित पानी देना महत्वपूर्ण है - जड़ों की वृद्धि को प्रोत्साहित करने के लिए गहराई से लेकिन कम बार पानी दें।",
		"soil":       "स्वस्थ मिट्टी अच्छी खेती की नींव है। मिट्टी परीक्षण और जैविक संशोधन पर विचार करें।",
		"fertilizer": "मिट्टी परीक्षण परिणामों के आधार पर संतुलित उर्वरक का उपयोग करें। जैविक विकल्प अक्सर फायदेमंद होते हैं।",
		"weather":    "मौसम की स्थिति की निगरानी करें और तदनुसार कृषि प्रथाओं को समायोजित करें।",
	},
	LangTelugu: {
		"water":      "సరైన నీరు అందించడం కీలకం - వేరుల పెరుగుదలను ప్రోత్సహించడానికి లోతుగా కానీ తక్కువ తరచుగా నీరు ఇవ్వండి.",
		"soil":       "ఆరోగ్యకరమైన మట్టి మంచి వ్యవసాయానికి పునాది. మట్టి పరీక్ష మరియు సేంద్రీయ సవరణలను పరిగణించండి.",
		"fertilizer": "మట్టి పరీక్ష ఫలితాల ఆధారంగా సమతుల్య ఎరువులను ఉపయోగించండి. సేంద్రీయ ఎంపికలు తరచుగా ప్రయోజనకరంగా ఉంటాయి.",
		"weather":    "వాతావరణ పరిస్థితులను పర్యవేక్షించండి మరియు దాని ప్రకారం వ్యవసాయ పద్ధతులను సర్దుబాటు చేయండి.",
	},
}

var defaultGenericAdvice = map[Language]string{
	LangEnglish: "Focus on soil health, proper irrigation, and regular monitoring for the best results.",
	LangHindi:   "सर्वोत्तम परिणामों के लिए मिट्टी के स्वास्थ्य, उचित सिंचाई और नियमित निगरानी पर ध्यान दें।",
	LangTelugu:  "ఉత్తమ ఫలితాల కోసం మట్టి ఆరోగ్యం, సరైన నీటిపారుదల మరియు క్రమం తప్పకుండా పర్యవేక్షణపై దృష్టి పెట్టండి.",
}

var fallbackResponses = map[Language]string{
	LangEnglish: "I'm sorry, I encountered an error processing your query. Please try rephrasing your question or contact support.",
	LangHindi:   "मुझे खेद है, आपकी समस्या को संसाधित करने में मुझे एक त्रुटि का सामना करना पड़ा। कृपया अपने प्रश्न को दोबारा लिखें या सहायता से संपर्क करें।",
	LangTelugu:  "క్షమించండి, మీ ప్రశ్నను ప్రాసెస్ చేయడంలో నాకు లోపం ఎదురైంది. దయచేసి మీ ప్రశ్నను మళ్లీ రాయండి లేదా సహాయాన్ని సంప్రదించండి.",
}
