package chi

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/livio/internal/domain/export"
	"github.com/kailas-cloud/livio/internal/domain/match/request"
	"github.com/kailas-cloud/livio/internal/domain/match/result"
	"github.com/kailas-cloud/livio/internal/i18n"
	"github.com/kailas-cloud/livio/internal/logger"
	"github.com/kailas-cloud/livio/internal/metrics"
	"github.com/kailas-cloud/livio/internal/usecase/catalog"
	healthuc "github.com/kailas-cloud/livio/internal/usecase/health"
	matchuc "github.com/kailas-cloud/livio/internal/usecase/match"
	profileuc "github.com/kailas-cloud/livio/internal/usecase/profile"
	"github.com/kailas-cloud/livio/internal/version"
)

const maxBodyBytes = 64 << 10

// Refresher reloads the catalog on demand.
type Refresher interface {
	Refresh(ctx context.Context, force bool) (*catalog.Snapshot, error)
}

// Server serves the matching HTTP API.
type Server struct {
	matches       *matchuc.Service
	profiles      *profileuc.Service
	refresher     Refresher
	health        *healthuc.Service
	logger        *zap.Logger
	adminKeys     []string
	corsOrigins   []string
	rateLimit     int
	rateWindow    time.Duration
	defaultTopN   int
	maxTopN       int
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	matches *matchuc.Service,
	profiles *profileuc.Service,
	refresher Refresher,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	return &Server{
		matches:       matches,
		profiles:      profiles,
		refresher:     refresher,
		health:        health,
		logger:        logger,
		defaultTopN:   request.DefaultTopN,
		maxTopN:       request.MaxTopN,
		errorHandlers: defaultErrorHandlers(),
	}
}

// WithRanking sets the top_n used when a request omits it and the upper
// bound requests are clamped to.
func (s *Server) WithRanking(defaultTopN, maxTopN int) *Server {
	if defaultTopN > 0 {
		s.defaultTopN = defaultTopN
	}
	if maxTopN > 0 {
		s.maxTopN = maxTopN
	}
	return s
}

// WithAdminKeys protects the admin routes with Bearer tokens.
func (s *Server) WithAdminKeys(keys []string) *Server {
	s.adminKeys = keys
	return s
}

// WithCORS allows browser clients from the given origins. No origins, no CORS headers.
func (s *Server) WithCORS(origins []string) *Server {
	s.corsOrigins = origins
	return s
}

// WithRateLimit caps API requests per client IP per window. requests <= 0 disables it.
func (s *Server) WithRateLimit(requests int, window time.Duration) *Server {
	s.rateLimit = requests
	s.rateWindow = window
	return s
}

// Handler builds the router with the full middleware stack.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(JSONRecoverer(s.logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(WideEventMiddleware(s.logger))
	r.Use(metrics.Middleware())
	if len(s.corsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.corsOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Accept-Language", "Authorization", "Content-Type"},
			ExposedHeaders: []string{"Content-Disposition", "X-Request-Id"},
			MaxAge:         300,
		}))
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, CodeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, CodeBadRequest, "method not allowed")
	})

	r.Get("/health", s.HealthCheck)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		if s.rateLimit > 0 {
			r.Use(httprate.Limit(s.rateLimit, s.rateWindow,
				httprate.WithKeyFuncs(httprate.KeyByIP),
				httprate.WithLimitHandler(func(w http.ResponseWriter, _ *http.Request) {
					writeError(w, http.StatusTooManyRequests, CodeRateLimited, "rate limit exceeded")
				}),
			))
		}
		r.Post("/matches", s.Match)
		r.Post("/matches/export", s.ExportMatches)
		r.Get("/profiles", s.ListProfiles)
		r.Get("/profiles/{id}", s.GetProfile)

		r.Group(func(r chi.Router) {
			r.Use(BearerAuthMiddleware(s.adminKeys))
			r.Post("/admin/refresh", s.Refresh)
		})
	})
	return r
}

// Match handles POST /api/v1/matches.
func (s *Server) Match(w http.ResponseWriter, r *http.Request) {
	locale := localeOf(r)
	rec, ok := s.recommend(w, r, locale)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, matchToResponse(rec, locale))
}

// ExportMatches handles POST /api/v1/matches/export.
func (s *Server) ExportMatches(w http.ResponseWriter, r *http.Request) {
	locale := localeOf(r)
	rec, ok := s.recommend(w, r, locale)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, rec.Comparison(), locale); err != nil {
		s.handleDomainError(w, r, fmt.Errorf("export csv: %w", err), locale)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) recommend(w http.ResponseWriter, r *http.Request, locale i18n.Locale) (result.Recommendation, bool) {
	var body MatchRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return result.Recommendation{}, false
	}
	if err := body.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, err.Error())
		return result.Recommendation{}, false
	}

	topN := s.defaultTopN
	if body.TopN != nil {
		topN = *body.TopN
	}
	if topN > s.maxTopN {
		topN = s.maxTopN
	}

	filters, err := body.Filters.toDomain()
	if err != nil {
		s.handleDomainError(w, r, err, locale)
		return result.Recommendation{}, false
	}
	req, err := request.New(body.SeedIDs, topN, filters)
	if err != nil {
		s.handleDomainError(w, r, err, locale)
		return result.Recommendation{}, false
	}

	ctx := logger.With(r.Context(), zap.String("locale", string(locale)))
	rec, err := s.matches.Recommend(ctx, &req)
	if err != nil {
		s.handleDomainError(w, r, err, locale)
		return result.Recommendation{}, false
	}
	return rec, true
}

// ListProfiles handles GET /api/v1/profiles.
func (s *Server) ListProfiles(w http.ResponseWriter, r *http.Request) {
	locale := localeOf(r)
	sum, err := s.profiles.Summary(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err, locale)
		return
	}
	writeJSON(w, http.StatusOK, summaryToResponse(sum, locale))
}

// GetProfile handles GET /api/v1/profiles/{id}.
func (s *Server) GetProfile(w http.ResponseWriter, r *http.Request) {
	locale := localeOf(r)
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "profile id must be an integer")
		return
	}

	t, err := s.profiles.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, r, err, locale)
		return
	}
	writeJSON(w, http.StatusOK, profileToResponse(id, t, locale))
}

// Refresh handles POST /api/v1/admin/refresh.
func (s *Server) Refresh(w http.ResponseWriter, r *http.Request) {
	force := false
	if v := r.URL.Query().Get("force"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, CodeBadRequest, "force must be a boolean")
			return
		}
		force = b
	}

	snap, err := s.refresher.Refresh(r.Context(), force)
	if err != nil {
		s.handleDomainError(w, r, err, localeOf(r))
		return
	}
	logger.FromContext(r.Context()).Info("Catalog refreshed via API",
		zap.Bool("force", force),
		zap.Uint64("version", snap.Version),
	)
	writeJSON(w, http.StatusOK, snapshotToResponse(snap))
}

// HealthCheck handles GET /health. A degraded service still answers 200
// since matching works without the cache.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status:  string(report.Status),
		Checks:  checks,
		Version: version.Info(),
	})
}

func localeOf(r *http.Request) i18n.Locale {
	return i18n.Negotiate(r.URL.Query().Get("lang"), r.Header.Get("Accept-Language"))
}
