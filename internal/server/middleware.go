// internal/server/middleware.go
package server

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sanjaykumar079/farmer-backend/internal/common/auth"
	"github.com/sanjaykumar079/farmer-backend/internal/common/errors"
)

type contextKey string

const identityKey contextKey = "identity"

// IdentityFrom returns the authenticated identity attached by the auth
// middleware, or nil when auth is disabled.
func IdentityFrom(ctx context.Context) *auth.Identity {
	identity, _ := ctx.Value(identityKey).(*auth.Identity)
	return identity
}

// statusRecorder captures the written status for the request log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// requestLogging logs every request with its duration and feeds the
// request metrics.
func (s *Server) requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(recorder, r)

		duration := time.Since(start)
		s.logger.Info("Request handled", map[string]interface{}{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   recorder.status,
			"duration": duration.String(),
		})

		if s.obs != nil {
			s.obs.RecordRequest(r.Context(), r.URL.Path, strconv.Itoa(recorder.status))
			s.obs.RecordRequestDuration(r.Context(), duration, r.URL.Path)
		}
	})
}

// authenticated verifies the bearer token against the identity provider and
// attaches the resulting identity. A no-op when auth is disabled.
func (s *Server) authenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.cfg == nil || !s.cfg.Auth.Enabled || s.verifier == nil {
			next.ServeHTTP(w, r)
			return
		}

		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			s.errs.WriteError(w, r, errors.NewAuthenticationError("missing bearer token"))
			return
		}

		identity, err := s.verifier.VerifyToken(r.Context(), token)
		if err != nil {
			s.errs.WriteError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
