// internal/server/validation.go
package server

import (
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/sanjaykumar079/farmer-backend/internal/common/errors"
)

const submitQuerySchema = `{
	"type": "object",
	"required": ["farmer_id", "query_text"],
	"properties": {
		"farmer_id": {"type": "string", "minLength": 1},
		"query_text": {"type": "string", "minLength": 1, "maxLength": 2000},
		"language": {"type": "string"},
		"crop_type": {"type": "string", "maxLength": 100},
		"location": {"type": "string", "maxLength": 200},
		"urgency": {"type": "string", "enum": ["low", "medium", "high"]}
	},
	"additionalProperties": false
}`

const submitReplySchema = `{
	"type": "object",
	"required": ["query_id", "officer_id", "response_text"],
	"properties": {
		"query_id": {"type": "integer", "minimum": 1},
		"officer_id": {"type": "string", "minLength": 1},
		"response_text": {"type": "string", "minLength": 1, "maxLength": 5000}
	},
	"additionalProperties": false
}`

var (
	submitQueryValidator = gojsonschema.NewStringLoader(submitQuerySchema)
	submitReplyValidator = gojsonschema.NewStringLoader(submitReplySchema)
)

// validateJSON runs a request body against a schema and folds violations
// into one validation error.
func validateJSON(schema gojsonschema.JSONLoader, body []byte) error {
	result, err := gojsonschema.Validate(schema, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return errors.NewValidationError("invalid JSON payload: " + err.Error())
	}
	if result.Valid() {
		return nil
	}

	violations := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		violations = append(violations, desc.String())
	}
	return errors.NewValidationError(strings.Join(violations, "; "))
}

// Upload limit for the image intake endpoint when the config leaves it unset.
const defaultMaxUploadBytes = 5 << 20

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

func validateImageUpload(contentType string, size, limit int64) error {
	if !allowedImageTypes[contentType] {
		return errors.NewUnsupportedFileTypeError(contentType)
	}
	if size > limit {
		return errors.NewFileTooLargeError(size, limit)
	}
	return nil
}
