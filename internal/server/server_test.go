package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanjaykumar079/farmer-backend/internal/advisor"
	"github.com/sanjaykumar079/farmer-backend/internal/common/auth"
	"github.com/sanjaykumar079/farmer-backend/internal/common/config"
	"github.com/sanjaykumar079/farmer-backend/internal/common/errors"
	"github.com/sanjaykumar079/farmer-backend/internal/common/logger"
	"github.com/sanjaykumar079/farmer-backend/internal/models"
	"github.com/sanjaykumar079/farmer-backend/internal/search"
)

// stubStore is an in-memory QueryStore.
type stubStore struct {
	profiles map[string]*models.Profile
	queries  map[int64]*models.Query
	replies  []models.Reply
	nextID   int64
}

func newStubStore() *stubStore {
	return &stubStore{
		profiles: map[string]*models.Profile{},
		queries:  map[int64]*models.Query{},
		nextID:   1,
	}
}

func (s *stubStore) addProfile(p *models.Profile) { s.profiles[p.ID] = p }

func (s *stubStore) InsertQuery(ctx context.Context, query *models.Query) error {
	query.ID = s.nextID
	s.nextID++
	query.CreatedAt = time.Now()
	s.queries[query.ID] = query
	return nil
}

func (s *stubStore) QueryByID(ctx context.Context, id int64) (*models.Query, error) {
	q, ok := s.queries[id]
	if !ok {
		return nil, errors.NewQueryNotFoundError(id)
	}
	return q, nil
}

func (s *stubStore) QueriesByFarmer(ctx context.Context, farmerID string) ([]models.Query, error) {
	var out []models.Query
	for _, q := range s.queries {
		if q.FarmerID == farmerID {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (s *stubStore) AllQueries(ctx context.Context) ([]models.Query, error) {
	var out []models.Query
	for _, q := range s.queries {
		out = append(out, *q)
	}
	return out, nil
}

func (s *stubStore) InsertReply(ctx context.Context, reply *models.Reply) error {
	reply.ID = int64(len(s.replies) + 1)
	reply.CreatedAt = time.Now()
	s.replies = append(s.replies, *reply)
	return nil
}

func (s *stubStore) UpdateQueryStatus(ctx context.Context, queryID int64, status string) error {
	q, ok := s.queries[queryID]
	if !ok {
		return errors.NewQueryNotFoundError(queryID)
	}
	q.Status = status
	return nil
}

func (s *stubStore) ProfileByID(ctx context.Context, id string) (*models.Profile, error) {
	p, ok := s.profiles[id]
	if !ok {
		return nil, errors.NewProfileNotFoundError(id)
	}
	return p, nil
}

func (s *stubStore) UpsertProfile(ctx context.Context, profile *models.Profile) error {
	profile.CreatedAt = time.Now()
	s.profiles[profile.ID] = profile
	return nil
}

type stubUploader struct {
	url string
	err error
}

func (s *stubUploader) UploadQueryImage(ctx context.Context, farmerID, filename, contentType string, data []byte) (string, error) {
	return s.url, s.err
}

type stubAnalyzer struct {
	analysis advisor.ImageAnalysis
}

func (s *stubAnalyzer) Analyze(ctx context.Context, imageBytes []byte) advisor.ImageAnalysis {
	return s.analysis
}

type stubIndexer struct {
	indexed []int64
	hits    []search.Hit
}

func (s *stubIndexer) Enabled() bool { return true }

func (s *stubIndexer) IndexQuery(ctx context.Context, query *models.Query) error {
	s.indexed = append(s.indexed, query.ID)
	return nil
}

func (s *stubIndexer) Search(ctx context.Context, term string, size int) ([]search.Hit, error) {
	return s.hits, nil
}

type stubNotifier struct {
	notified int
}

func (s *stubNotifier) ReplyPosted(ctx context.Context, farmer *models.Profile, query *models.Query, reply *models.Reply) error {
	s.notified++
	return nil
}

type fixture struct {
	server   *Server
	store    *stubStore
	indexer  *stubIndexer
	notifier *stubNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := logger.NewTestLogger(t)
	store := newStubStore()
	indexer := &stubIndexer{}
	notifier := &stubNotifier{}

	srv := New(Dependencies{
		Config:   &config.Config{},
		Logger:   log,
		Composer: advisor.NewComposer(log),
		Store:    store,
		Uploader: &stubUploader{url: "https://cdn.example.com/queries/f/img.jpg"},
		Analyzer: &stubAnalyzer{analysis: advisor.ImageAnalysis{
			Description: "Image analysis identified: Brown Spot (92% confidence)",
			Confidence:  0.92,
		}},
		Indexer:  indexer,
		Notifier: notifier,
	})

	return &fixture{server: srv, store: store, indexer: indexer, notifier: notifier}
}

func (f *fixture) addFarmer(id string) {
	f.store.addProfile(&models.Profile{ID: id, Role: models.RoleFarmer, FullName: "Ravi", Email: "ravi@example.com"})
}

func (f *fixture) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.server.Router().ServeHTTP(rec, req)
	return rec
}

func postJSON(path string, payload interface{}) *http.Request {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestSubmitQueryReturnsAdvisory(t *testing.T) {
	f := newFixture(t)
	f.addFarmer("farmer-1")

	rec := f.do(postJSON("/farmers/queries", map[string]interface{}{
		"farmer_id":  "farmer-1",
		"query_text": "yellow spots on leaves",
		"language":   "en",
	}))

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp submitQueryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.True(t, resp.OK)
	assert.Equal(t, int64(1), resp.QueryID)
	assert.Equal(t, "disease_diagnosis", resp.ResponseType)
	assert.Equal(t, 0.8, resp.Confidence)
	assert.Contains(t, resp.Response, "Apply fungicide spray every 7 days")
	assert.Len(t, resp.Suggestions, 3)

	// advisory reply persisted for the farmer's history
	require.Len(t, f.store.replies, 1)
	assert.Empty(t, f.store.replies[0].OfficerID)
	assert.Equal(t, []int64{1}, f.indexer.indexed)
}

func TestSubmitQueryValidation(t *testing.T) {
	f := newFixture(t)
	f.addFarmer("farmer-1")

	tests := []struct {
		name    string
		payload map[string]interface{}
	}{
		{"missing query_text", map[string]interface{}{"farmer_id": "farmer-1"}},
		{"empty query_text", map[string]interface{}{"farmer_id": "farmer-1", "query_text": ""}},
		{"oversized query_text", map[string]interface{}{"farmer_id": "farmer-1", "query_text": strings.Repeat("x", 2001)}},
		{"bad urgency", map[string]interface{}{"farmer_id": "farmer-1", "query_text": "hi", "urgency": "panic"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(postJSON("/farmers/queries", tt.payload))
			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		})
	}
}

func TestSubmitQueryUnknownFarmer(t *testing.T) {
	f := newFixture(t)

	rec := f.do(postJSON("/farmers/queries", map[string]interface{}{
		"farmer_id":  "ghost",
		"query_text": "help",
	}))

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body errors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "PROFILE_NOT_FOUND", body.Code)
}

func multipartQuery(t *testing.T, fields map[string]string, filename, contentType string, image []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, filename))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(image)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/farmers/queries/image", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestSubmitQueryWithImage(t *testing.T) {
	f := newFixture(t)
	f.addFarmer("farmer-1")

	req := multipartQuery(t, map[string]string{
		"farmer_id":  "farmer-1",
		"query_text": "what is wrong with my crop",
		"language":   "en",
	}, "leaf.jpg", "image/jpeg", []byte("jpeg-bytes"))

	rec := f.do(req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp submitQueryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "https://cdn.example.com/queries/f/img.jpg", resp.ImageURL)
	require.NotNil(t, resp.ImageAnalysis)
	assert.Contains(t, resp.ImageAnalysis.Description, "Brown Spot")
	// no text diagnosis, so the image context lands in the general branch
	assert.Equal(t, "general_advice", resp.ResponseType)
	assert.Contains(t, resp.Response, "**Image Analysis:**")
}

func TestSubmitQueryWithImageRejectsBadType(t *testing.T) {
	f := newFixture(t)
	f.addFarmer("farmer-1")

	req := multipartQuery(t, map[string]string{
		"farmer_id":  "farmer-1",
		"query_text": "check this",
	}, "notes.pdf", "application/pdf", []byte("%PDF"))

	rec := f.do(req)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body errors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "UNSUPPORTED_FILE_TYPE", body.Code)
}

func TestFarmerQueries(t *testing.T) {
	f := newFixture(t)
	f.addFarmer("farmer-1")
	f.store.InsertQuery(context.Background(), &models.Query{FarmerID: "farmer-1", QueryText: "q1"})

	rec := f.do(httptest.NewRequest(http.MethodGet, "/farmers/farmer-1/queries", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		OK   bool           `json:"ok"`
		Data []models.Query `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.OK)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "q1", body.Data[0].QueryText)
}

func TestFarmerQueriesUnknownFarmer(t *testing.T) {
	f := newFixture(t)
	rec := f.do(httptest.NewRequest(http.MethodGet, "/farmers/ghost/queries", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubmitReply(t *testing.T) {
	f := newFixture(t)
	f.addFarmer("farmer-1")
	f.store.addProfile(&models.Profile{ID: "officer-1", Role: models.RoleOfficer, FullName: "Officer Rao"})
	f.store.InsertQuery(context.Background(), &models.Query{
		FarmerID: "farmer-1", QueryText: "help", Status: models.QueryStatusPending,
	})

	rec := f.do(postJSON("/officers/replies", map[string]interface{}{
		"query_id":      1,
		"officer_id":    "officer-1",
		"response_text": "Apply fungicide twice a week.",
	}))

	require.Equal(t, http.StatusCreated, rec.Code)

	assert.Equal(t, models.QueryStatusAnswered, f.store.queries[1].Status)
	assert.Equal(t, 1, f.notifier.notified)

	var body struct {
		OK      bool              `json:"ok"`
		Reply   models.Reply      `json:"reply"`
		Officer map[string]string `json:"officer"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.OK)
	assert.Equal(t, "Apply fungicide twice a week.", body.Reply.ResponseText)
	assert.Equal(t, "Officer Rao", body.Officer["full_name"])
}

func TestSubmitReplyUnknownQuery(t *testing.T) {
	f := newFixture(t)
	f.store.addProfile(&models.Profile{ID: "officer-1", Role: models.RoleOfficer})

	rec := f.do(postJSON("/officers/replies", map[string]interface{}{
		"query_id":      42,
		"officer_id":    "officer-1",
		"response_text": "hello",
	}))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Zero(t, f.notifier.notified)
}

func TestSearchQueries(t *testing.T) {
	f := newFixture(t)
	f.indexer.hits = []search.Hit{{QueryID: 3, QueryText: "aphids on cotton", Score: 1.2}}

	rec := f.do(httptest.NewRequest(http.MethodGet, "/officers/queries/search?q=aphids", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		OK   bool         `json:"ok"`
		Data []search.Hit `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, int64(3), body.Data[0].QueryID)
}

func TestSearchQueriesMissingTerm(t *testing.T) {
	f := newFixture(t)
	rec := f.do(httptest.NewRequest(http.MethodGet, "/officers/queries/search", nil))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestTranslationsEndpoints(t *testing.T) {
	f := newFixture(t)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/translations", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"available_languages":["en","hi","te"]`)

	rec = f.do(httptest.NewRequest(http.MethodGet, "/translations/te/officer", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "acknowledgment")

	rec = f.do(httptest.NewRequest(http.MethodGet, "/translations/fr", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTranslateEndpoint(t *testing.T) {
	f := newFixture(t)

	rec := f.do(postJSON("/translations/hi/translate", map[string]interface{}{
		"text":     "send greeting",
		"category": "farmer_responses",
	}))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"template_used":"greeting"`)
}

func TestRootAndHealth(t *testing.T) {
	f := newFixture(t)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "API is running")

	rec = f.do(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestCreateTestProfiles(t *testing.T) {
	f := newFixture(t)

	rec := f.do(httptest.NewRequest(http.MethodPost, "/auth/test-farmer", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, f.store.profiles, testFarmerID)

	rec = f.do(httptest.NewRequest(http.MethodPost, "/auth/test-officer", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, f.store.profiles, 2)
}

type stubVerifier struct {
	identity *auth.Identity
	err      error
}

func (s *stubVerifier) VerifyToken(ctx context.Context, token string) (*auth.Identity, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.identity, nil
}

func TestAuthMiddleware(t *testing.T) {
	log := logger.NewTestLogger(t)
	store := newStubStore()
	store.addProfile(&models.Profile{ID: "farmer-1", Role: models.RoleFarmer})

	cfg := &config.Config{}
	cfg.Auth.Enabled = true

	srv := New(Dependencies{
		Config:   cfg,
		Logger:   log,
		Composer: advisor.NewComposer(log),
		Store:    store,
		Verifier: &stubVerifier{identity: &auth.Identity{Subject: "farmer-1"}},
	})

	// missing token
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, postJSON("/farmers/queries", map[string]interface{}{
		"farmer_id": "farmer-1", "query_text": "hello",
	}))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// valid token
	req := postJSON("/farmers/queries", map[string]interface{}{
		"farmer_id": "farmer-1", "query_text": "hello",
	})
	req.Header.Set("Authorization", "Bearer good-token")
	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code)

	// system routes stay open
	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
