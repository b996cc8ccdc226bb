// internal/server/handlers_officers.go
package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/sanjaykumar079/farmer-backend/internal/common/errors"
	"github.com/sanjaykumar079/farmer-backend/internal/models"
)

type submitReplyRequest struct {
	QueryID      int64  `json:"query_id"`
	OfficerID    string `json:"officer_id"`
	ResponseText string `json:"response_text"`
}

// handleAllQueries returns every query with farmer basics and replies for
// the officer review desk.
func (s *Server) handleAllQueries(w http.ResponseWriter, r *http.Request) {
	queries, err := s.store.AllQueries(r.Context())
	if err != nil {
		s.errs.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ok":   true,
		"data": queries,
	})
}

// handleSearchQueries runs a full-text search over the query index.
func (s *Server) handleSearchQueries(w http.ResponseWriter, r *http.Request) {
	term := strings.TrimSpace(r.URL.Query().Get("q"))
	if term == "" {
		s.errs.WriteError(w, r, errors.NewValidationError("query parameter q is required"))
		return
	}

	if s.indexer == nil || !s.indexer.Enabled() {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"ok":   true,
			"data": []interface{}{},
			"note": "search is not configured",
		})
		return
	}

	hits, err := s.indexer.Search(r.Context(), term, 20)
	if err != nil {
		s.errs.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ok":   true,
		"data": hits,
	})
}

// handleSubmitReply records an officer's reply, marks the query answered,
// and notifies the farmer.
func (s *Server) handleSubmitReply(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		s.errs.WriteError(w, r, errors.NewValidationError("failed to read request body"))
		return
	}

	if err := validateJSON(submitReplyValidator, body); err != nil {
		s.errs.WriteError(w, r, err)
		return
	}

	var req submitReplyRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.errs.WriteError(w, r, errors.NewValidationError(err.Error()))
		return
	}

	ctx := r.Context()

	query, err := s.store.QueryByID(ctx, req.QueryID)
	if err != nil {
		s.errs.WriteError(w, r, err)
		return
	}

	officer, err := s.store.ProfileByID(ctx, req.OfficerID)
	if err != nil {
		s.errs.WriteError(w, r, err)
		return
	}

	reply := &models.Reply{
		QueryID:      req.QueryID,
		OfficerID:    req.OfficerID,
		ResponseText: strings.TrimSpace(req.ResponseText),
	}
	if err := s.store.InsertReply(ctx, reply); err != nil {
		s.errs.WriteError(w, r, err)
		return
	}

	logFields := map[string]interface{}{
		"queryId":   req.QueryID,
		"officerId": req.OfficerID,
	}
	if identity := IdentityFrom(ctx); identity != nil {
		logFields["subject"] = identity.Subject
	}
	s.logger.Info("Officer reply recorded", logFields)

	if err := s.store.UpdateQueryStatus(ctx, req.QueryID, models.QueryStatusAnswered); err != nil {
		s.logger.WithError(err).Warn("Failed to mark query answered", map[string]interface{}{
			"queryId": req.QueryID,
		})
	} else {
		query.Status = models.QueryStatusAnswered
	}
	s.indexQuery(ctx, query)

	s.notifyFarmer(ctx, query, reply)

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"ok":    true,
		"reply": reply,
		"query": query,
		"officer": map[string]string{
			"id":        officer.ID,
			"full_name": officer.FullName,
			"email":     officer.Email,
		},
	})
}

// notifyFarmer fires the reply notification. Failures are logged only, the
// reply has already been stored.
func (s *Server) notifyFarmer(ctx context.Context, query *models.Query, reply *models.Reply) {
	if s.notifier == nil {
		return
	}

	farmer, err := s.store.ProfileByID(ctx, query.FarmerID)
	if err != nil {
		s.logger.WithError(err).Warn("Cannot notify farmer, profile lookup failed", map[string]interface{}{
			"farmerId": query.FarmerID,
		})
		return
	}

	if err := s.notifier.ReplyPosted(ctx, farmer, query, reply); err != nil {
		s.logger.WithError(err).Warn("Farmer reply notification failed", map[string]interface{}{
			"queryId":  query.ID,
			"farmerId": query.FarmerID,
		})
	}
}
