// internal/server/handlers_system.go
package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sanjaykumar079/farmer-backend/internal/common/errors"
	"github.com/sanjaykumar079/farmer-backend/internal/models"
	"github.com/sanjaykumar079/farmer-backend/internal/translations"
)

// testFarmerID is the fixed profile ID the frontend test fixtures expect.
const testFarmerID = "0234234f-1aa4-46b2-8195-a8e99f5d2f1f"

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	name, version := "farmer-backend", "1.0.0"
	if s.cfg != nil {
		if s.cfg.App.Name != "" {
			name = s.cfg.App.Name
		}
		if s.cfg.App.Version != "" {
			version = s.cfg.App.Version
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": name + " API is running",
		"version": version,
		"status":  "healthy",
		"features": []string{
			"Farmer query system",
			"Multilingual advisory responses",
			"Image-based disease detection",
			"Officer review and replies",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
	})
}

// handleCreateTestFarmer upserts the fixed test farmer profile so local
// frontends have a known farmer to submit as.
func (s *Server) handleCreateTestFarmer(w http.ResponseWriter, r *http.Request) {
	profile := &models.Profile{
		ID:       testFarmerID,
		Role:     models.RoleFarmer,
		FullName: "Test Farmer",
		Email:    "farmer@example.com",
		Location: "Test Village",
	}

	if err := s.store.UpsertProfile(r.Context(), profile); err != nil {
		s.errs.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "farmer ready",
		"profile": profile,
	})
}

// handleCreateTestOfficer creates a fresh officer profile with a random ID.
func (s *Server) handleCreateTestOfficer(w http.ResponseWriter, r *http.Request) {
	profile := &models.Profile{
		ID:       uuid.New().String(),
		Role:     models.RoleOfficer,
		FullName: "Test Officer",
		Email:    "officer@example.com",
		Location: "District HQ",
	}

	if err := s.store.UpsertProfile(r.Context(), profile); err != nil {
		s.errs.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":    "officer ready",
		"officer_id": profile.ID,
		"profile":    profile,
	})
}

func (s *Server) handleListLanguages(w http.ResponseWriter, r *http.Request) {
	langs := translations.Languages()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"available_languages": langs,
		"total_languages":     len(langs),
	})
}

func (s *Server) handleGetTranslations(w http.ResponseWriter, r *http.Request) {
	language := r.PathValue("language")
	tables, err := translations.ForLanguage(language)
	if err != nil {
		s.writeLanguageNotFound(w, r, language)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"language":     language,
		"translations": tables,
	})
}

func (s *Server) handleGetFarmerTemplates(w http.ResponseWriter, r *http.Request) {
	s.writeCategory(w, r, translations.CategoryFarmerResponses)
}

func (s *Server) handleGetOfficerTemplates(w http.ResponseWriter, r *http.Request) {
	s.writeCategory(w, r, translations.CategoryOfficerTemplates)
}

func (s *Server) writeCategory(w http.ResponseWriter, r *http.Request, category string) {
	language := r.PathValue("language")
	table, err := translations.Category(language, category)
	if err != nil {
		s.writeLanguageNotFound(w, r, language)
		return
	}
	writeJSON(w, http.StatusOK, table)
}

type translateRequest struct {
	Text     string `json:"text"`
	Category string `json:"category"`
}

func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	language := r.PathValue("language")
	if !translations.Supported(language) {
		s.writeLanguageNotFound(w, r, language)
		return
	}

	var req translateRequest
	if err := decodeJSONBody(r, &req); err != nil {
		s.errs.WriteError(w, r, errors.NewValidationError(err.Error()))
		return
	}
	if req.Text == "" {
		s.errs.WriteError(w, r, errors.NewValidationError("text is required"))
		return
	}
	if req.Category == "" {
		req.Category = translations.CategoryFarmerResponses
	}

	result, err := translations.Translate(language, req.Text, req.Category)
	if err != nil {
		s.writeLanguageNotFound(w, r, language)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// writeLanguageNotFound mirrors the catalog contract: an unknown language on
// a translations endpoint is a 404, not a validation failure.
func (s *Server) writeLanguageNotFound(w http.ResponseWriter, r *http.Request, language string) {
	writeJSON(w, http.StatusNotFound, errors.ErrorResponse{
		Error:   "Request Failed",
		Code:    string(errors.ErrCodeUnsupportedLanguage),
		Message: "Language not supported",
		Details: "language: " + language + ", available: " + strings.Join(translations.Languages(), ", "),
	})
}

func decodeJSONBody(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	return dec.Decode(dst)
}
