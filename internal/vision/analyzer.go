// internal/vision/analyzer.go
package vision

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sanjaykumar079/farmer-backend/internal/advisor"
	"github.com/sanjaykumar079/farmer-backend/internal/common/database"
	"github.com/sanjaykumar079/farmer-backend/internal/common/logger"
	"github.com/sanjaykumar079/farmer-backend/internal/common/metrics"
)

// treatmentConfidenceFloor gates specific treatment advice. Below it the
// recommendation always refers the farmer to an expert.
const treatmentConfidenceFloor = 0.7

const healthyLabel = "Healthy"

var treatments = map[string]string{
	"Healthy":               "Your crop appears healthy! Continue with regular care and monitoring.",
	"Bacterial Blight":      "Apply copper-based bactericide. Remove affected leaves and improve air circulation.",
	"Brown Spot":            "Use fungicide spray and ensure proper field drainage. Avoid overhead irrigation.",
	"Leaf Blast":            "Apply systemic fungicide immediately. Remove infected plant debris.",
	"Tungro":                "This is a viral disease spread by insects. Use insecticides to control vectors and remove infected plants.",
	"Bacterial Leaf Streak": "Apply streptomycin-based bactericide. Improve field sanitation.",
	"Red Stripe":            "Apply appropriate fungicide and ensure balanced nutrition.",
	"Sheath Blight":         "Use fungicide treatment and maintain proper spacing between plants.",
	"Yellow Dwarf":          "Viral disease - remove infected plants immediately and control insect vectors.",
	"Blast":                 "Apply systemic fungicide and improve drainage. Consider resistant varieties.",
}

const (
	lowConfidenceRecommendation = "Prediction confidence is low. Please consult with an agricultural expert for accurate diagnosis."
	unknownLabelRecommendation  = "Consult with agricultural expert for proper treatment."

	fallbackDescription     = "Unable to analyze image at this time"
	fallbackRecommendations = "Please try uploading the image again or describe the issue in text"
)

// Analyzer wraps the external classifier behind the fixed-fallback contract:
// Analyze never returns an error, classifier failures degrade to a fallback
// ImageAnalysis with zero confidence. Results are cached in Redis keyed by
// the image's SHA-256 so re-uploads of the same photo skip the model call.
type Analyzer struct {
	classifier Classifier
	cache      *database.RedisClient
	cacheTTL   time.Duration
	logger     logger.Logger
}

// NewAnalyzer builds an analyzer. cache may be nil, which disables caching.
func NewAnalyzer(classifier Classifier, cache *database.RedisClient, cacheTTL time.Duration, log logger.Logger) *Analyzer {
	return &Analyzer{
		classifier: classifier,
		cache:      cache,
		cacheTTL:   cacheTTL,
		logger:     log,
	}
}

// Analyze classifies an image and maps the verdict into the composer's
// ImageAnalysis shape.
func (a *Analyzer) Analyze(ctx context.Context, imageBytes []byte) advisor.ImageAnalysis {
	cacheKey := a.cacheKey(imageBytes)

	if cached, ok := a.fromCache(ctx, cacheKey); ok {
		metrics.ClassifierCalls.WithLabelValues("cache_hit").Inc()
		return cached
	}

	classification, err := a.classifier.Classify(ctx, imageBytes)
	if err != nil {
		metrics.ClassifierCalls.WithLabelValues("failure").Inc()
		a.logger.WithError(err).Warn("Image classification failed, using fallback analysis", map[string]interface{}{
			"imageBytes": len(imageBytes),
		})
		return FallbackAnalysis()
	}
	metrics.ClassifierCalls.WithLabelValues("success").Inc()

	analysis := analysisFrom(classification)
	a.toCache(ctx, cacheKey, analysis)

	a.logger.Info("Image analysis completed", map[string]interface{}{
		"label":      classification.PredictedLabel,
		"confidence": classification.Confidence,
	})

	return analysis
}

// FallbackAnalysis is the fixed substitute used when classification fails.
func FallbackAnalysis() advisor.ImageAnalysis {
	return advisor.ImageAnalysis{
		Description:     fallbackDescription,
		Recommendations: fallbackRecommendations,
		DetectedIssues:  []string{},
		Confidence:      0.0,
	}
}

func analysisFrom(c *Classification) advisor.ImageAnalysis {
	issues := []string{}
	for _, alt := range c.TopPredictions {
		if alt.Label != healthyLabel {
			issues = append(issues, alt.Label)
		}
	}
	if len(issues) == 0 && c.PredictedLabel != healthyLabel && c.PredictedLabel != "" {
		issues = append(issues, c.PredictedLabel)
	}

	return advisor.ImageAnalysis{
		Description:     fmt.Sprintf("Image analysis identified: %s (%.0f%% confidence)", c.PredictedLabel, c.Confidence*100),
		Recommendations: TreatmentFor(c.PredictedLabel, c.Confidence),
		DetectedIssues:  issues,
		Confidence:      c.Confidence,
	}
}

// TreatmentFor returns the treatment recommendation for a predicted label.
// Low-confidence predictions always defer to an expert regardless of label.
func TreatmentFor(label string, confidence float64) string {
	if confidence < treatmentConfidenceFloor {
		return lowConfidenceRecommendation
	}
	if treatment, ok := treatments[label]; ok {
		return treatment
	}
	return unknownLabelRecommendation
}

func (a *Analyzer) cacheKey(imageBytes []byte) string {
	sum := sha256.Sum256(imageBytes)
	return "vision:analysis:" + hex.EncodeToString(sum[:])
}

func (a *Analyzer) fromCache(ctx context.Context, key string) (advisor.ImageAnalysis, bool) {
	if a.cache == nil || a.cacheTTL <= 0 {
		return advisor.ImageAnalysis{}, false
	}

	raw, err := a.cache.Get(ctx, key)
	if err != nil || raw == "" {
		return advisor.ImageAnalysis{}, false
	}

	var analysis advisor.ImageAnalysis
	if err := json.Unmarshal([]byte(raw), &analysis); err != nil {
		a.logger.WithError(err).Debug("Discarding corrupt cached image analysis", map[string]interface{}{
			"cacheKey": key,
		})
		return advisor.ImageAnalysis{}, false
	}
	return analysis, true
}

func (a *Analyzer) toCache(ctx context.Context, key string, analysis advisor.ImageAnalysis) {
	if a.cache == nil || a.cacheTTL <= 0 {
		return
	}

	raw, err := json.Marshal(analysis)
	if err != nil {
		return
	}
	if err := a.cache.Set(ctx, key, string(raw), a.cacheTTL); err != nil {
		// Caching is best effort, classification already succeeded
		a.logger.WithError(err).Debug("Failed to cache image analysis", map[string]interface{}{
			"cacheKey": key,
		})
	}
}
