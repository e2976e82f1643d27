package server

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/mdvault/mdvaultd/internal/logging"
)

// statusRecorder captures the response status for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withRequestLog logs every request with method, path, status, and
// duration. A logger pre-seeded with the request fields is attached to
// the context; handlers resolve it with logging.FromContext.
func (s *Server) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		reqLogger := s.logger.With(
			logging.FieldMethod, r.Method,
			logging.FieldPath, r.URL.Path,
			logging.FieldRemote, r.RemoteAddr,
		)
		ctx := logging.WithLogger(r.Context(), reqLogger)
		next.ServeHTTP(recorder, r.WithContext(ctx))

		reqLogger.Info("request",
			logging.FieldStatus, recorder.status,
			logging.FieldDuration, time.Since(start),
		)
	})
}

// withCORS applies a permissive CORS policy and answers preflights.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, PUT, POST, PATCH, DELETE, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "*")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withAuth enforces the bearer token on everything except the status
// and health endpoints. The "Bearer " prefix is optional.
func (s *Server) withAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet && (r.URL.Path == "/" || r.URL.Path == "/health") {
			next.ServeHTTP(w, r)
			return
		}

		if !s.authenticated(r) {
			writeError(w, codeUnauthorized, "missing or invalid API key")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withBodyLimit caps request bodies at the configured maximum file size.
func (s *Server) withBodyLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Performance.MaxFileSize)
		}
		next.ServeHTTP(w, r)
	})
}

// authenticated reports whether the request carries the configured key.
func (s *Server) authenticated(r *http.Request) bool {
	key := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if key == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(key), []byte(s.cfg.Security.APIKey)) == 1
}
