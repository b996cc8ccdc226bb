// internal/vision/classifier.go
package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/sanjaykumar079/farmer-backend/internal/common/config"
	"github.com/sanjaykumar079/farmer-backend/internal/common/errors"
	httpclient "github.com/sanjaykumar079/farmer-backend/internal/common/http"
)

// LabelScore is one ranked alternative from the classifier.
type LabelScore struct {
	Label      string  `json:"disease"`
	Confidence float64 `json:"confidence"`
}

// Classification is the external model's verdict for one image.
type Classification struct {
	PredictedLabel string       `json:"prediction"`
	Confidence     float64      `json:"confidence"`
	TopPredictions []LabelScore `json:"top_predictions"`
}

// Classifier is the external image-classification collaborator.
type Classifier interface {
	Classify(ctx context.Context, imageBytes []byte) (*Classification, error)
}

// HTTPClassifier calls the disease-detection model service over HTTP.
type HTTPClassifier struct {
	baseURL string
	apiKey  string
	client  *httpclient.Client
}

func NewHTTPClassifier(cfg config.VisionConfig) *HTTPClassifier {
	return &HTTPClassifier{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  httpclient.NewClient(time.Duration(cfg.Timeout) * time.Millisecond),
	}
}

// Classify posts the image as multipart form data to the model service's
// disease-detect endpoint. The request is bounded by the configured timeout.
func (c *HTTPClassifier) Classify(ctx context.Context, imageBytes []byte) (*Classification, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("image", "upload.jpg")
	if err != nil {
		return nil, errors.NewClassifierUnavailableError(err)
	}
	if _, err := part.Write(imageBytes); err != nil {
		return nil, errors.NewClassifierUnavailableError(err)
	}
	if err := writer.Close(); err != nil {
		return nil, errors.NewClassifierUnavailableError(err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/disease-detect", &body)
	if err != nil {
		return nil, errors.NewClassifierUnavailableError(err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.client.DoWithContext(ctx, req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.NewClassifierTimeoutError()
		}
		return nil, errors.NewClassifierUnavailableError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, errors.NewClassifierUnavailableError(
			fmt.Errorf("classifier returned status %d: %s", resp.StatusCode, string(payload)))
	}

	var classification Classification
	if err := json.NewDecoder(resp.Body).Decode(&classification); err != nil {
		return nil, errors.NewClassifierUnavailableError(fmt.Errorf("invalid classifier response: %w", err))
	}

	return &classification, nil
}
