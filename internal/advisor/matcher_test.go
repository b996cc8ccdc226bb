package advisor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectDiseaseFirstMatchWins(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		lang     Language
		wantKind IssueKind
		wantKey  string
	}{
		{
			name:     "leaf spot via symptom token",
			query:    "My tomato plants have yellow spots on leaves",
			lang:     LangEnglish,
			wantKind: IssueDisease,
			wantKey:  "leaf_spot",
		},
		{
			name:     "catalog order breaks overlapping symptoms",
			query:    "spots all over the crop",
			lang:     LangEnglish,
			wantKind: IssueDisease,
			wantKey:  "leaf_spot",
		},
		{
			name:     "leaf spot via leaves token",
			query:    "the leaves are yellowing badly",
			lang:     LangEnglish,
			wantKind: IssueDisease,
			wantKey:  "leaf_spot",
		},
		{
			name:     "rust via stunted token",
			query:    "growth looks stunted this season",
			lang:     LangEnglish,
			wantKind: IssueDisease,
			wantKey:  "rust",
		},
		{
			name:     "hindi symptoms match hindi catalog",
			query:    "पत्तियों पर पीले धब्बे हैं",
			lang:     LangHindi,
			wantKind: IssueDisease,
			wantKey:  "leaf_spot",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Detect(tt.query, tt.lang)
			assert.True(t, got.Detected())
			assert.Equal(t, tt.wantKind, got.Kind)
			assert.Equal(t, tt.wantKey, got.IssueKey)
			assert.Equal(t, 0.8, got.Confidence)
		})
	}
}

func TestDetectPestOnlyWhenNoDisease(t *testing.T) {
	// "aphids on my plant" must not be claimed by a disease through the
	// connective "on" in "yellow spots on leaves"
	got := Detect("I see aphids on my plant", LangEnglish)
	assert.Equal(t, IssuePest, got.Kind)
	assert.Equal(t, "aphids", got.IssueKey)

	// A disease symptom in the same query takes priority over the pest
	got = Detect("aphids and wilting everywhere", LangEnglish)
	assert.Equal(t, IssueDisease, got.Kind)
	assert.Equal(t, "leaf_spot", got.IssueKey)
}

func TestDetectPestKeySubstring(t *testing.T) {
	got := Detect("Whiteflies are swarming under the leaf canopy", LangEnglish)
	assert.Equal(t, IssuePest, got.Kind)
	assert.Equal(t, "whiteflies", got.IssueKey)
}

func TestDetectGenericAnatomyTokensDoNotClaimPests(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		wantKind IssueKind
		wantKey  string
	}{
		{
			// "plant" from blight's "plant death" must not pre-empt the pest scan
			name:     "plant token does not shadow aphids",
			query:    "I see aphids on my plant",
			wantKind: IssuePest,
			wantKey:  "aphids",
		},
		{
			// "leaf" from rust's "leaf drop" must not pre-empt the pest scan
			name:     "leaf token does not shadow whiteflies",
			query:    "Whiteflies are swarming under the leaf canopy",
			wantKind: IssuePest,
			wantKey:  "whiteflies",
		},
		{
			// a real symptom token alongside the pest still wins
			name:     "wilting outranks aphids",
			query:    "aphids and wilting on every plant",
			wantKind: IssueDisease,
			wantKey:  "leaf_spot",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Detect(tt.query, LangEnglish)
			assert.Equal(t, tt.wantKind, got.Kind)
			assert.Equal(t, tt.wantKey, got.IssueKey)
		})
	}
}

func TestDetectNoMatch(t *testing.T) {
	got := Detect("What is the best time to sow", LangEnglish)
	assert.False(t, got.Detected())
	assert.Zero(t, got.Confidence)
}

func TestDetectCaseInsensitive(t *testing.T) {
	got := Detect("YELLOW SPOTS ON LEAVES", LangEnglish)
	assert.Equal(t, "leaf_spot", got.IssueKey)
}

func TestSymptomMatchesSkipsShortTokens(t *testing.T) {
	assert.False(t, symptomMatches("yellow spots on leaves", "nothing here matches on its own"))
	assert.True(t, symptomMatches("yellow spots on leaves", "big yellow patches"))
}

func TestSymptomMatchesSkipsGenericTokens(t *testing.T) {
	assert.False(t, symptomMatches("plant death", "my plant is doing fine"))
	assert.False(t, symptomMatches("leaf drop", "something under the leaf canopy"))
	assert.True(t, symptomMatches("plant death", "sudden plant death overnight"))
}
