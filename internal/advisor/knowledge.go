// internal/advisor/knowledge.go
package advisor

// DiseaseRecord is one disease entry in the per-language catalog.
type DiseaseRecord struct {
	Key        string
	Symptoms   []string
	Treatment  string
	Prevention string
}

// PestRecord is one pest entry in the per-language catalog.
type PestRecord struct {
	Key            string
	Identification string
	Treatment      string
	Prevention     string
}

// The catalogs are ordered slices, not maps: detection is first-match-wins,
// so iteration order is part of the contract. Loaded once, never mutated,
// shared across concurrent requests without locking.

var diseaseCatalog = map[Language][]DiseaseRecord{
	LangEnglish: {
		{
			Key:        "leaf_spot",
			Symptoms:   []string{"yellow spots on leaves", "brown patches", "wilting"},
			Treatment:  "Apply fungicide spray every 7 days. Remove affected leaves. Improve air circulation.",
			Prevention: "Avoid overhead watering, ensure proper spacing between plants.",
		},
		{
			Key:        "blight",
			Symptoms:   []string{"dark spots", "yellowing leaves", "plant death"},
			Treatment:  "Use copper-based fungicide. Remove infected plants immediately.",
			Prevention: "Crop rotation, avoid wet conditions, resistant varieties.",
		},
		{
			Key:        "rust",
			Symptoms:   []string{"orange/brown spots", "leaf drop", "stunted growth"},
			Treatment:  "Apply sulfur-based fungicide. Improve drainage.",
			Prevention: "Plant resistant varieties, avoid overhead irrigation.",
		},
	},
	LangHindi: {
		{
			Key:        "leaf_spot",
			Symptoms:   []string{"पत्तियों पर पीले धब्बे", "भूरे पैच", "मुरझाना"},
			Treatment:  "हर 7 दिन में फंगीसाइड स्प्रे करें। प्रभावित पत्तियों को हटा दें। हवा का संचार बेहतर करें।",
			Prevention: "ऊपर से पानी देने से बचें, पौधों के बीच उचित दूरी रखें।",
		},
		{
			Key:        "blight",
			Symptoms:   []string{"काले धब्बे", "पत्तियों का पीला होना", "पौधे की मृत्यु"},
			Treatment:  "कॉपर आधारित फंगीसाइड का उपयोग करें। संक्रमित पौधों को तुरंत हटा दें।",
			Prevention: "फसल चक्र, गीली स्थितियों से बचें, प्रतिरोधी किस्में।",
		},
		{
			Key:        "rust",
			Symptoms:   []string{"नारंगी/भूरे धब्बे", "पत्ती गिरना", "बौनी वृद्धि"},
			Treatment:  "सल्फर आधारित फंगीसाइड लगाएं। जल निकासी में सुधार करें।",
			Prevention: "प्रतिरोधी किस्में लगाएं, ऊपरी सिंचाई से बचें।",
		},
	},
	LangTelugu: {
		{
			Key:        "leaf_spot",
			Symptoms:   []string{"ఆకులపై పసుపు మచ్చలు", "గోధుమ రంగు పాచెస్", "వాడిపోవడం"},
			Treatment:  "ప్రతి 7 రోజులకు ఫంగిసైడ్ స్ప్రే చేయండి. ప్రభావిత ఆకులను తొలగించండి. గాలి సర్క్యులేషన్ మెరుగుపరచండి.",
			Prevention: "పైనుండి నీరు పోయడం మానండి, మొక్కల మధ్య సరైన దూరం ఉంచండి.",
		},
		{
			Key:        "blight",
			Symptoms:   []string{"ముదురు మచ్చలు", "ఆకుల పసుపు రంగు", "మొక్క మరణం"},
			Treatment:  "కాపర్ ఆధారిత ఫంగిసైడ్ వాడండి. వ్యాధిగ్రస్త మొక్కలను వెంటనే తొలగించండి.",
			Prevention: "పంట మార్పిడి, తడి పరిస్థితులను నివారించండి, నిరోధక రకాలు.",
		},
		{
			Key:        "rust",
			Symptoms:   []string{"నారింజ/గోధుమ మచ్చలు", "ఆకు రాలుట", "కుంగిపోయిన పెరుగుదల"},
			Treatment:  "సల్ఫర్ ఆధారిత ఫంగిసైడ్ వేయండి. డ్రైనేజీ మెరుగుపరచండి.",
			Prevention: "నిరోధక రకాలను నాటండి, పైనుండి నీరందించడం మానండి.",
		},
	},
}

var pestCatalog = map[Language][]PestRecord{
	LangEnglish: {
		{
			Key:            "aphids",
			Identification: "Small green/black insects on leaves and stems",
			Treatment:      "Use neem oil spray or insecticidal soap. Release ladybugs.",
			Prevention:     "Companion planting with marigolds, regular inspection.",
		},
		{
			Key:            "whiteflies",
			Identification: "Tiny white flying insects under leaves",
			Treatment:      "Yellow sticky traps, neem oil, remove affected leaves.",
			Prevention:     "Good air circulation, avoid over-fertilizing with nitrogen.",
		},
	},
	LangHindi: {
		{
			Key:            "aphids",
			Identification: "पत्तियों और तनों पर छोटे हरे/काले कीड़े",
			Treatment:      "नीम का तेल स्प्रे या कीटनाशक साबुन का उपयोग करें। लेडीबग्स छोड़ें।",
			Prevention:     "गेंदे के साथ साथी रोपण, नियमित निरीक्षण।",
		},
		{
			Key:            "whiteflies",
			Identification: "पत्तियों के नीचे छोटे सफेद उड़ने वाले कीड़े",
			Treatment:      "पीले चिपचिपे जाल, नीम का तेल, प्रभावित पत्तियों को हटाएं।",
			Prevention:     "अच्छा हवा का संचार, नाइट्रोजन के साथ अधिक उर्वरक से बचें।",
		},
	},
	LangTelugu: {
		{
			Key:            "aphids",
			Identification: "ఆకులు మరియు కాండాలపై చిన్న ఆకుపచ్చ/నలుపు కీటకాలు",
			Treatment:      "వేప నూనె స్ప్రే లేదా కీటక నాశక సబ్బు వాడండి. లేడీబగ్స్ వదిలించండి.",
			Prevention:     "మేరిగోల్డ్స్ తో కంపానియన్ ప్లాంటింగ్, రెగ్యులర్ ఇన్స్పెక్షన్.",
		},
		{
			Key:            "whiteflies",
			Identification: "ఆకుల కింద చిన్న తెల్ల ఎగిరే కీటకాలు",
			Treatment:      "పసుపు అంటుకునే ట్రాప్స్, వేప నూనె, ప్రభావిత ఆకులను తొలగించండి.",
			Prevention:     "మంచి గాలి సర్క్యులేషన్, నైట్రోజన్ తో ఎక్కువ ఎరువు వేయడం మానండి.",
		},
	},
}

// Diseases returns the ordered disease catalog for a language.
func Diseases(lang Language) []DiseaseRecord {
	if recs, ok := diseaseCatalog[lang]; ok {
		return recs
	}
	return diseaseCatalog[LangEnglish]
}

// Pests returns the ordered pest catalog for a language.
func Pests(lang Language) []PestRecord {
	if recs, ok := pestCatalog[lang]; ok {
		return recs
	}
	return pestCatalog[LangEnglish]
}
