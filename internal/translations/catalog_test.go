package translations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLanguages(t *testing.T) {
	assert.Equal(t, []string{"en", "hi", "te"}, Languages())
}

func TestForLanguage(t *testing.T) {
	tables, err := ForLanguage("hi")
	require.NoError(t, err)
	assert.Contains(t, tables, CategoryFarmerResponses)
	assert.Contains(t, tables, CategoryOfficerTemplates)

	_, err = ForLanguage("fr")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not supported")
}

func TestCategory(t *testing.T) {
	table, err := Category("te", CategoryOfficerTemplates)
	require.NoError(t, err)
	assert.Contains(t, table["acknowledgment"], "ధన్యవాదాలు")

	_, err = Category("en", "nonsense")
	require.Error(t, err)
}

func TestTranslateMatchesTemplateKey(t *testing.T) {
	result, err := Translate("hi", "please send the greeting message", CategoryFarmerResponses)
	require.NoError(t, err)

	assert.Equal(t, "greeting", result.TemplateUsed)
	assert.Equal(t, "नमस्ते! मैं आपके खेती के सवालों में मदद के लिए यहां हूं।", result.Translated)
	assert.Empty(t, result.Note)
}

func TestTranslateFallsBackToOriginal(t *testing.T) {
	result, err := Translate("en", "completely unrelated text", CategoryFarmerResponses)
	require.NoError(t, err)

	assert.Equal(t, "completely unrelated text", result.Translated)
	assert.Empty(t, result.TemplateUsed)
	assert.NotEmpty(t, result.Note)
}

func TestTranslateUnsupportedLanguage(t *testing.T) {
	_, err := Translate("de", "hello", CategoryFarmerResponses)
	require.Error(t, err)
}
