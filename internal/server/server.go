// internal/server/server.go
package server

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sanjaykumar079/farmer-backend/internal/advisor"
	"github.com/sanjaykumar079/farmer-backend/internal/common/auth"
	"github.com/sanjaykumar079/farmer-backend/internal/common/config"
	"github.com/sanjaykumar079/farmer-backend/internal/common/errors"
	"github.com/sanjaykumar079/farmer-backend/internal/common/logger"
	"github.com/sanjaykumar079/farmer-backend/internal/common/observability"
	"github.com/sanjaykumar079/farmer-backend/internal/models"
	"github.com/sanjaykumar079/farmer-backend/internal/search"
)

// QueryStore is the persistence contract the handlers depend on.
type QueryStore interface {
	InsertQuery(ctx context.Context, query *models.Query) error
	QueryByID(ctx context.Context, id int64) (*models.Query, error)
	QueriesByFarmer(ctx context.Context, farmerID string) ([]models.Query, error)
	AllQueries(ctx context.Context) ([]models.Query, error)
	InsertReply(ctx context.Context, reply *models.Reply) error
	UpdateQueryStatus(ctx context.Context, queryID int64, status string) error
	ProfileByID(ctx context.Context, id string) (*models.Profile, error)
	UpsertProfile(ctx context.Context, profile *models.Profile) error
}

// ImageUploader stores uploaded query images.
type ImageUploader interface {
	UploadQueryImage(ctx context.Context, farmerID, filename, contentType string, data []byte) (string, error)
}

// ImageAnalyzer classifies uploaded images, degrading to a fixed fallback.
type ImageAnalyzer interface {
	Analyze(ctx context.Context, imageBytes []byte) advisor.ImageAnalysis
}

// QueryIndexer mirrors accepted queries into the search index.
type QueryIndexer interface {
	Enabled() bool
	IndexQuery(ctx context.Context, query *models.Query) error
	Search(ctx context.Context, term string, size int) ([]search.Hit, error)
}

// ReplyNotifier tells farmers about officer replies.
type ReplyNotifier interface {
	ReplyPosted(ctx context.Context, farmer *models.Profile, query *models.Query, reply *models.Reply) error
}

// Server wires the HTTP surface to the advisor core and its collaborators.
type Server struct {
	cfg      *config.Config
	logger   logger.Logger
	errs     *errors.ErrorHandler
	obs      *observability.Observability
	composer *advisor.Composer
	store    QueryStore
	uploader ImageUploader
	analyzer ImageAnalyzer
	indexer  QueryIndexer
	notifier ReplyNotifier
	verifier auth.Verifier
}

// Dependencies carries everything the server needs. Optional collaborators
// (uploader, analyzer, indexer, notifier, verifier) may be nil; the affected
// features degrade instead of panicking.
type Dependencies struct {
	Config   *config.Config
	Logger   logger.Logger
	Obs      *observability.Observability
	Composer *advisor.Composer
	Store    QueryStore
	Uploader ImageUploader
	Analyzer ImageAnalyzer
	Indexer  QueryIndexer
	Notifier ReplyNotifier
	Verifier auth.Verifier
}

func New(deps Dependencies) *Server {
	return &Server{
		cfg:      deps.Config,
		logger:   deps.Logger,
		errs:     errors.NewErrorHandler(deps.Logger),
		obs:      deps.Obs,
		composer: deps.Composer,
		store:    deps.Store,
		uploader: deps.Uploader,
		analyzer: deps.Analyzer,
		indexer:  deps.Indexer,
		notifier: deps.Notifier,
		verifier: deps.Verifier,
	}
}

// uploadLimit returns the configured request-body cap for intake endpoints.
func (s *Server) uploadLimit() int64 {
	if s.cfg != nil && s.cfg.Server.MaxUploadBytes > 0 {
		return s.cfg.Server.MaxUploadBytes
	}
	return defaultMaxUploadBytes
}

// Router builds the full route table. Farmer and officer routes sit behind
// the auth middleware when auth is enabled; system routes are always open.
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.Handle("POST /farmers/queries", s.authenticated(http.HandlerFunc(s.handleSubmitQuery)))
	mux.Handle("POST /farmers/queries/image", s.authenticated(http.HandlerFunc(s.handleSubmitQueryWithImage)))
	mux.Handle("GET /farmers/{id}/queries", s.authenticated(http.HandlerFunc(s.handleFarmerQueries)))

	mux.Handle("GET /officers/queries", s.authenticated(http.HandlerFunc(s.handleAllQueries)))
	mux.Handle("GET /officers/queries/search", s.authenticated(http.HandlerFunc(s.handleSearchQueries)))
	mux.Handle("POST /officers/replies", s.authenticated(http.HandlerFunc(s.handleSubmitReply)))

	mux.HandleFunc("POST /auth/test-farmer", s.handleCreateTestFarmer)
	mux.HandleFunc("POST /auth/test-officer", s.handleCreateTestOfficer)

	mux.HandleFunc("GET /translations", s.handleListLanguages)
	mux.HandleFunc("GET /translations/{language}", s.handleGetTranslations)
	mux.HandleFunc("GET /translations/{language}/farmer", s.handleGetFarmerTemplates)
	mux.HandleFunc("GET /translations/{language}/officer", s.handleGetOfficerTemplates)
	mux.HandleFunc("POST /translations/{language}/translate", s.handleTranslate)

	return s.requestLogging(mux)
}
