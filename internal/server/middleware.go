package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/claude/volumeopt/internal/storage"
)

type contextKey int

const userKey contextKey = iota

// UserFromContext returns the authenticated user injected by Authenticate.
func UserFromContext(ctx context.Context) (storage.User, bool) {
	u, ok := ctx.Value(userKey).(storage.User)
	return u, ok
}

// Authenticate resolves the caller from an X-API-Key header or an
// Authorization bearer token and injects the user into the request
// context. Inactive accounts and unknown credentials get 401.
func (s *Server) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := s.resolveUser(r)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, user)))
	})
}

func (s *Server) resolveUser(r *http.Request) (storage.User, error) {
	if key := r.Header.Get("X-API-Key"); key != "" {
		user, err := s.db.GetUserByAPIKey(r.Context(), key)
		if errors.Is(err, storage.ErrNotFound) {
			return storage.User{}, errors.New("invalid or inactive API key")
		}
		if err != nil {
			s.log.Error("api key lookup failed", "error", err)
			return storage.User{}, errors.New("authentication failed")
		}
		return user, nil
	}

	if header := r.Header.Get("Authorization"); header != "" {
		tokenStr, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			return storage.User{}, errors.New("malformed Authorization header")
		}
		claims, err := s.tokens.Validate(tokenStr)
		if err != nil {
			return storage.User{}, errors.New("invalid or expired token")
		}
		user, err := s.db.GetUserByID(r.Context(), claims.UserID)
		if err != nil {
			return storage.User{}, errors.New("unknown user")
		}
		if !user.IsActive {
			return storage.User{}, errors.New("account is inactive")
		}
		return user, nil
	}

	return storage.User{}, errors.New("credentials required: X-API-Key header or bearer token")
}

// RequestLogging returns middleware that logs each request.
func RequestLogging(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)
			log.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.status,
				"duration", time.Since(start).String(),
			)
		})
	}
}

// CORS adds permissive CORS headers.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-API-Key, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusWriter wraps ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
