// internal/server/handlers_farmers.go
package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sanjaykumar079/farmer-backend/internal/advisor"
	"github.com/sanjaykumar079/farmer-backend/internal/common/errors"
	"github.com/sanjaykumar079/farmer-backend/internal/models"
)

type submitQueryRequest struct {
	FarmerID  string `json:"farmer_id"`
	QueryText string `json:"query_text"`
	Language  string `json:"language"`
	CropType  string `json:"crop_type"`
	Location  string `json:"location"`
	Urgency   string `json:"urgency"`
}

type submitQueryResponse struct {
	OK            bool                   `json:"ok"`
	QueryID       int64                  `json:"query_id"`
	Response      string                 `json:"response"`
	ResponseType  string                 `json:"response_type"`
	Confidence    float64                `json:"confidence"`
	Language      string                 `json:"language"`
	Suggestions   []string               `json:"suggestions"`
	Actions       []string               `json:"actions"`
	ImageURL      string                 `json:"image_url,omitempty"`
	ImageAnalysis *advisor.ImageAnalysis `json:"image_analysis,omitempty"`
	Timestamp     time.Time              `json:"timestamp"`
}

// handleSubmitQuery accepts a text-only farmer query, runs the advisor, and
// stores both the query and its advisory reply.
func (s *Server) handleSubmitQuery(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.uploadLimit()))
	if err != nil {
		s.errs.WriteError(w, r, errors.NewValidationError("failed to read request body"))
		return
	}

	if err := validateJSON(submitQueryValidator, body); err != nil {
		s.errs.WriteError(w, r, err)
		return
	}

	var req submitQueryRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.errs.WriteError(w, r, errors.NewValidationError(err.Error()))
		return
	}

	s.acceptQuery(w, r, req, "", nil)
}

// handleSubmitQueryWithImage accepts a multipart query with an image: the
// image is stored in object storage and classified, and the classification
// feeds the advisor as image context.
func (s *Server) handleSubmitQueryWithImage(w http.ResponseWriter, r *http.Request) {
	limit := s.uploadLimit()
	if err := r.ParseMultipartForm(limit); err != nil {
		s.errs.WriteError(w, r, errors.NewValidationError("invalid multipart form: "+err.Error()))
		return
	}

	req := submitQueryRequest{
		FarmerID:  r.FormValue("farmer_id"),
		QueryText: r.FormValue("query_text"),
		Language:  r.FormValue("language"),
		CropType:  r.FormValue("crop_type"),
		Location:  r.FormValue("location"),
		Urgency:   r.FormValue("urgency"),
	}
	if req.FarmerID == "" || strings.TrimSpace(req.QueryText) == "" {
		s.errs.WriteError(w, r, errors.NewValidationError("farmer_id and query_text are required"))
		return
	}
	if len(req.QueryText) > 2000 {
		s.errs.WriteError(w, r, errors.NewQueryTextInvalidError("query_text exceeds 2000 characters"))
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		s.errs.WriteError(w, r, errors.NewValidationError("image file is required"))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if err := validateImageUpload(contentType, header.Size, limit); err != nil {
		s.errs.WriteError(w, r, err)
		return
	}

	imageBytes, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		s.errs.WriteError(w, r, errors.NewValidationError("failed to read image"))
		return
	}
	if int64(len(imageBytes)) > limit {
		s.errs.WriteError(w, r, errors.NewFileTooLargeError(int64(len(imageBytes)), limit))
		return
	}

	var imageURL string
	if s.uploader != nil {
		imageURL, err = s.uploader.UploadQueryImage(r.Context(), req.FarmerID, header.Filename, contentType, imageBytes)
		if err != nil {
			s.errs.WriteError(w, r, err)
			return
		}
	}

	s.acceptQuery(w, r, req, imageURL, imageBytes)
}

// acceptQuery is the shared intake path: verify the farmer, persist the
// query, compose the advisory, persist it as a reply, index, respond.
func (s *Server) acceptQuery(w http.ResponseWriter, r *http.Request, req submitQueryRequest, imageURL string, imageBytes []byte) {
	ctx := r.Context()

	if _, err := s.store.ProfileByID(ctx, req.FarmerID); err != nil {
		s.errs.WriteError(w, r, err)
		return
	}

	query := &models.Query{
		FarmerID:  req.FarmerID,
		QueryText: strings.TrimSpace(req.QueryText),
		ImageURL:  imageURL,
		Language:  string(advisor.NormalizeLanguage(req.Language)),
		CropType:  req.CropType,
		Location:  req.Location,
		Status:    models.QueryStatusPending,
		Urgency:   defaultUrgency(req.Urgency),
	}
	if err := s.store.InsertQuery(ctx, query); err != nil {
		s.errs.WriteError(w, r, err)
		return
	}

	var imageAnalysis *advisor.ImageAnalysis
	if len(imageBytes) > 0 && s.analyzer != nil {
		analysis := s.analyzer.Analyze(ctx, imageBytes)
		imageAnalysis = &analysis
	}

	composed := s.composer.Compose(advisor.ComposeInput{
		QueryText: query.QueryText,
		Language:  req.Language,
		CropType:  query.CropType,
		Location:  query.Location,
		Image:     imageAnalysis,
	})

	// The advisory reply is best effort: a failed insert leaves the query
	// pending for an officer instead of failing the intake
	reply := &models.Reply{
		QueryID:      query.ID,
		ResponseText: composed.ResponseText,
	}
	if err := s.store.InsertReply(ctx, reply); err != nil {
		s.logger.WithError(err).Warn("Failed to persist advisory reply", map[string]interface{}{
			"queryId": query.ID,
		})
	}

	s.indexQuery(ctx, query)

	writeJSON(w, http.StatusCreated, submitQueryResponse{
		OK:            true,
		QueryID:       query.ID,
		Response:      composed.ResponseText,
		ResponseType:  string(composed.ResponseType),
		Confidence:    composed.Confidence,
		Language:      string(composed.Language),
		Suggestions:   composed.Suggestions,
		Actions:       composed.Actions,
		ImageURL:      imageURL,
		ImageAnalysis: imageAnalysis,
		Timestamp:     time.Now().UTC(),
	})
}

// handleFarmerQueries returns a farmer's query history with replies.
func (s *Server) handleFarmerQueries(w http.ResponseWriter, r *http.Request) {
	farmerID := r.PathValue("id")

	if _, err := s.store.ProfileByID(r.Context(), farmerID); err != nil {
		s.errs.WriteError(w, r, err)
		return
	}

	queries, err := s.store.QueriesByFarmer(r.Context(), farmerID)
	if err != nil {
		s.errs.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ok":   true,
		"data": queries,
	})
}

func (s *Server) indexQuery(ctx context.Context, query *models.Query) {
	if s.indexer == nil || !s.indexer.Enabled() {
		return
	}
	if err := s.indexer.IndexQuery(ctx, query); err != nil {
		s.logger.WithError(err).Warn("Query indexing failed", map[string]interface{}{
			"queryId": query.ID,
		})
	}
}

func defaultUrgency(urgency string) string {
	switch urgency {
	case models.UrgencyLow, models.UrgencyMedium, models.UrgencyHigh:
		return urgency
	default:
		return models.UrgencyMedium
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
