package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/claude/volumeopt/internal/auth"
	"github.com/claude/volumeopt/internal/config"
	"github.com/claude/volumeopt/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Store is the persistence surface the handlers need. *storage.DB
// implements it; tests substitute a fake.
type Store interface {
	CreateUser(ctx context.Context, email, hashedPassword string) (storage.User, error)
	GetUserByEmail(ctx context.Context, email string) (storage.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (storage.User, error)
	UpdateUserTier(ctx context.Context, id uuid.UUID, tier storage.Tier) error

	CreateAPIKey(ctx context.Context, userID uuid.UUID, name, key string) (storage.APIKey, error)
	ListAPIKeys(ctx context.Context, userID uuid.UUID) ([]storage.APIKey, error)
	DeleteAPIKey(ctx context.Context, userID, keyID uuid.UUID) error
	GetUserByAPIKey(ctx context.Context, key string) (storage.User, error)

	InsertHistory(ctx context.Context, e storage.HistoryEntry) (uuid.UUID, error)
	QueryHistory(ctx context.Context, userID uuid.UUID, muscleGroup string, limit int) ([]storage.HistoryEntry, error)
	UserAnalytics(ctx context.Context, userID uuid.UUID) (storage.Analytics, error)

	CountUsageToday(ctx context.Context, userID uuid.UUID) (int, error)
	LogUsage(ctx context.Context, userID uuid.UUID, endpoint string) error

	SystemStats(ctx context.Context) (storage.AdminStats, error)
}

var _ Store = (*storage.DB)(nil)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db       Store
	tokens   *auth.TokenService
	tiers    config.TiersConfig
	limiter  config.RateLimitConfig
	log      *slog.Logger
	validate *validator.Validate
	router   chi.Router
}

// New creates a new Server with all routes configured.
func New(db Store, tokens *auth.TokenService, tiers config.TiersConfig, limiter config.RateLimitConfig, log *slog.Logger) *Server {
	s := &Server{
		db:       db,
		tokens:   tokens,
		tiers:    tiers,
		limiter:  limiter,
		log:      log,
		validate: validator.New(),
		router:   chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)
	// Burst limiter keyed by credential when present, client IP otherwise.
	// The per-tier daily quotas are enforced separately in the handlers.
	s.router.Use(httprate.Limit(
		s.limiter.Requests,
		s.limiter.Window(),
		httprate.WithKeyFuncs(limiterKey),
	))

	// Public endpoints
	s.router.Get("/", s.handleIndex)
	s.router.Get("/healthz", s.handleHealth)
	s.router.Get("/api/v1/muscle-groups", s.handleMuscleGroups)

	s.router.Post("/auth/register", s.handleRegister)
	s.router.Post("/auth/login", s.handleLogin)

	// Authenticated endpoints (API key or bearer token)
	s.router.Group(func(r chi.Router) {
		r.Use(s.Authenticate)

		r.Get("/auth/me", s.handleMe)
		r.Post("/auth/api-keys", s.handleCreateAPIKey)
		r.Get("/auth/api-keys", s.handleListAPIKeys)
		r.Delete("/auth/api-keys/{id}", s.handleDeleteAPIKey)

		r.Post("/api/v1/volume/recommend", s.handleRecommend)
		r.Get("/api/v1/history", s.handleHistory)
		r.Get("/api/v1/analytics", s.handleAnalytics)

		r.Get("/subscription/info", s.handleSubscriptionInfo)
		r.Post("/subscription/upgrade", s.handleSubscriptionUpgrade)

		r.Get("/admin/stats", s.handleAdminStats)
	})
}

func limiterKey(r *http.Request) (string, error) {
	if key := r.Header.Get("X-API-Key"); key != "" {
		return key, nil
	}
	if tok := r.Header.Get("Authorization"); tok != "" {
		return tok, nil
	}
	return httprate.KeyByIP(r)
}
