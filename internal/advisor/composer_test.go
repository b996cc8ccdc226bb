package advisor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanjaykumar079/farmer-backend/internal/common/logger"
)

func newTestComposer(t *testing.T) *Composer {
	t.Helper()
	return NewComposer(logger.NewTestLogger(t))
}

func TestComposeDiseaseDiagnosis(t *testing.T) {
	c := newTestComposer(t)

	resp := c.Compose(ComposeInput{
		QueryText: "My tomato plants have yellow spots on leaves",
		Language:  "en",
	})

	assert.Equal(t, ResponseDiseaseDiagnosis, resp.ResponseType)
	assert.Equal(t, 0.8, resp.Confidence)
	assert.Equal(t, LangEnglish, resp.Language)
	assert.Contains(t, resp.ResponseText, "leaf_spot")
	assert.Contains(t, resp.ResponseText, "Apply fungicide spray every 7 days")
	assert.Contains(t, resp.ResponseText, "**Treatment:**")
	assert.Contains(t, resp.ResponseText, "**Prevention:**")
	// 0.8 > 0.7 appends the follow-up reminder
	assert.Contains(t, resp.ResponseText, "update me in 7 days")
	assert.Equal(t, []string{
		"Apply recommended treatment",
		"Monitor progress daily",
		"Remove affected plant parts",
	}, resp.Actions)
}

func TestComposePestControl(t *testing.T) {
	c := newTestComposer(t)

	resp := c.Compose(ComposeInput{
		QueryText: "I see aphids on my plant",
		Language:  "en",
	})

	assert.Equal(t, ResponsePestControl, resp.ResponseType)
	assert.Equal(t, 0.8, resp.Confidence)
	assert.Contains(t, resp.ResponseText, "aphids")
	assert.Contains(t, resp.ResponseText, "**Identification:**")
	assert.Contains(t, resp.ResponseText, "neem oil spray")
	assert.Equal(t, []string{
		"Apply pest control measures",
		"Set up monitoring traps",
		"Check plants regularly",
	}, resp.Actions)
}

func TestComposeGeneralAdviceWithContext(t *testing.T) {
	c := newTestComposer(t)

	resp := c.Compose(ComposeInput{
		QueryText: "How should I water my crops",
		Language:  "en",
		CropType:  "rice",
		Location:  "Warangal",
	})

	assert.Equal(t, ResponseGeneralAdvice, resp.ResponseType)
	assert.Equal(t, 0.6, resp.Confidence)
	assert.Contains(t, resp.ResponseText, "Here's some general advice for your farming question:")
	assert.Contains(t, resp.ResponseText, "Rice needs consistent water levels")
	assert.Contains(t, resp.ResponseText, "For your location in Warangal")
	assert.Contains(t, resp.ResponseText, "water deeply but less frequently")
	// Confidence 0.6 sits in the neutral band: no follow-up, no referral
	assert.NotContains(t, resp.ResponseText, "update me in 7 days")
	assert.NotContains(t, resp.ResponseText, "not entirely certain")
	assert.Empty(t, resp.Actions)
}

func TestComposeGeneralAdviceDefaultSentence(t *testing.T) {
	c := newTestComposer(t)

	resp := c.Compose(ComposeInput{
		QueryText: "Tell me about farming",
		Language:  "en",
	})

	assert.Equal(t, ResponseGeneralAdvice, resp.ResponseType)
	assert.Contains(t, resp.ResponseText, "Focus on soil health, proper irrigation")
}

func TestComposeHindiDiagnosis(t *testing.T) {
	c := newTestComposer(t)

	resp := c.Compose(ComposeInput{
		QueryText: "पत्तियों पर पीले धब्बे दिख रहे हैं",
		Language:  "hi",
	})

	assert.Equal(t, ResponseDiseaseDiagnosis, resp.ResponseType)
	assert.Equal(t, LangHindi, resp.Language)
	assert.Contains(t, resp.ResponseText, "**उपचार:**")
	assert.Contains(t, resp.ResponseText, "फंगीसाइड स्प्रे")
	require.Len(t, resp.Suggestions, 3)
	assert.Equal(t, "बेहतर निदान के लिए प्रभावित क्षेत्रों की तस्वीरें लेने पर विचार करें", resp.Suggestions[0])
}

func TestComposeUnknownLanguageFallsBackToEnglish(t *testing.T) {
	c := newTestComposer(t)

	resp := c.Compose(ComposeInput{
		QueryText: "the plant is wilting fast",
		Language:  "fr",
	})

	assert.Equal(t, LangEnglish, resp.Language)
	assert.Equal(t, ResponseDiseaseDiagnosis, resp.ResponseType)
	assert.Contains(t, resp.ResponseText, "leaf_spot")
}

func TestComposeImageContextInGeneralBranch(t *testing.T) {
	c := newTestComposer(t)

	resp := c.Compose(ComposeInput{
		QueryText: "What is wrong with my field",
		Language:  "en",
		Image: &ImageAnalysis{
			Description:     "Image shows healthy green vegetation with some yellowing on lower leaves",
			Recommendations: "Consider soil testing for nutrient levels",
			Confidence:      0.75,
		},
	})

	assert.Equal(t, ResponseGeneralAdvice, resp.ResponseType)
	assert.Contains(t, resp.ResponseText, "**Image Analysis:**")
	assert.Contains(t, resp.ResponseText, "**Recommendations:**")
	assert.Contains(t, resp.ResponseText, "Consider soil testing for nutrient levels")
}

func TestComposeDeterministic(t *testing.T) {
	c := newTestComposer(t)
	input := ComposeInput{
		QueryText: "yellowing leaves and dark spots on my wheat",
		Language:  "en",
		CropType:  "wheat",
	}

	first := c.Compose(input)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, c.Compose(input))
	}
}

func TestComposeSuggestionsAlwaysThree(t *testing.T) {
	c := newTestComposer(t)

	for _, tc := range []struct {
		name  string
		input ComposeInput
	}{
		{"disease", ComposeInput{QueryText: "wilting plants", Language: "en"}},
		{"pest", ComposeInput{QueryText: "whiteflies under leaves", Language: "te"}},
		{"general", ComposeInput{QueryText: "hello", Language: "hi"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			resp := c.Compose(tc.input)
			assert.Len(t, resp.Suggestions, 3)
		})
	}
}

func TestComposeResponseTextNeverEmpty(t *testing.T) {
	c := newTestComposer(t)

	for _, query := range []string{"", "   ", "xyz", "yellow spots"} {
		resp := c.Compose(ComposeInput{QueryText: query, Language: "en"})
		assert.NotEmpty(t, resp.ResponseText, "query %q", query)
	}
}

func TestFallbackResponse(t *testing.T) {
	resp := fallbackResponse("te")

	assert.Equal(t, ResponseError, resp.ResponseType)
	assert.Equal(t, 0.1, resp.Confidence)
	assert.Equal(t, LangTelugu, resp.Language)
	assert.True(t, strings.HasPrefix(resp.ResponseText, "క్షమించండి"))
	assert.Empty(t, resp.Suggestions)
	assert.Empty(t, resp.Actions)
}
