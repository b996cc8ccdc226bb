package advisor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoticeForBands(t *testing.T) {
	tests := []struct {
		name       string
		confidence float64
		want       string
	}{
		{"diagnosed gets follow-up", 0.8, "Please monitor the situation and update me in 7 days."},
		{"just above threshold gets follow-up", 0.71, "Please monitor the situation and update me in 7 days."},
		{"boundary 0.7 is neutral", 0.7, ""},
		{"general advice 0.6 is neutral", 0.6, ""},
		{"below 0.6 gets referral", 0.59, "I'm not entirely certain about this diagnosis. I recommend consulting with a local agricultural expert."},
		{"error confidence gets referral", 0.1, "I'm not entirely certain about this diagnosis. I recommend consulting with a local agricultural expert."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NoticeFor(tt.confidence, LangEnglish))
		})
	}
}

func TestNoticeForTranslated(t *testing.T) {
	assert.Contains(t, NoticeFor(0.8, LangHindi), "7 दिनों")
	assert.Contains(t, NoticeFor(0.8, LangTelugu), "7 రోజుల్లో")
	assert.Contains(t, NoticeFor(0.2, LangHindi), "कृषि विशेषज्ञ")
}

func TestSuggestionsLanguageFallback(t *testing.T) {
	en := Suggestions(LangEnglish)
	assert.Len(t, en, 3)
	assert.Equal(t, "Consider taking photos of affected areas for better diagnosis", en[0])

	// unsupported language code falls back to English
	assert.Equal(t, en, Suggestions(Language("fr")))
}

func TestSuggestionsReturnsCopy(t *testing.T) {
	first := Suggestions(LangEnglish)
	first[0] = "mutated"
	assert.NotEqual(t, first[0], Suggestions(LangEnglish)[0])
}

func TestTranslateFallsThrough(t *testing.T) {
	assert.Equal(t, "उपचार", Translate("Treatment", LangHindi))
	assert.Equal(t, "Treatment", Translate("Treatment", LangEnglish))
	assert.Equal(t, "Unknown Label", Translate("Unknown Label", LangTelugu))
}
