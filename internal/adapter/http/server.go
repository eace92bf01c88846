package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/psws-spot-service/internal/domain"
	"github.com/couchcryptid/psws-spot-service/internal/feed"
)

// defaultInterval is the lookback in minutes when lastInterval is absent.
const defaultInterval = "15"

// SpotFeeds serves the enriched projections. *feed.AppContext implements it.
type SpotFeeds interface {
	sharedobs.ReadinessChecker
	FetchDetailSpots(ctx context.Context, req feed.FeedRequest) ([]domain.DetailSpot, error)
	FetchSummarySpots(ctx context.Context, req feed.FeedRequest) ([]domain.SummarySpot, error)
}

// Server exposes the spot feeds plus health, readiness, and metrics endpoints.
type Server struct {
	httpServer  *http.Server
	feeds       SpotFeeds
	legacyLimit int
	logger      *slog.Logger
}

// NewServer creates an HTTP server with the feed routes and /healthz, /readyz,
// and /metrics. legacyLimit is the numSpots default of /legacy/spots.
func NewServer(addr string, feeds SpotFeeds, legacyLimit int, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		feeds:       feeds,
		legacyLimit: legacyLimit,
		logger:      logger,
	}

	mux.HandleFunc("GET /spots", s.handleDetail)
	mux.HandleFunc("GET /tbspots", s.handleSummary)
	mux.HandleFunc("GET /legacy/spots", s.handleLegacy)
	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(feeds))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	req := feed.FeedRequest{WindowRequest: domain.WindowRequest{LastInterval: lastInterval(r)}}
	spots, err := s.feeds.FetchDetailSpots(r.Context(), req)
	if err != nil {
		s.fetchFailed(w, r, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, spots)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	req := feed.FeedRequest{WindowRequest: domain.WindowRequest{LastInterval: lastInterval(r)}}
	spots, err := s.feeds.FetchSummarySpots(r.Context(), req)
	if err != nil {
		s.fetchFailed(w, r, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, spots)
}

// handleLegacy serves the older map client: most recent numSpots, optionally
// narrowed to an exact date and hour. The client sends "null" for unset fields.
func (s *Server) handleLegacy(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := s.legacyLimit
	if n, err := strconv.Atoi(q.Get("numSpots")); err == nil && n > 0 {
		limit = n
	}

	req := feed.FeedRequest{
		WindowRequest: domain.WindowRequest{Date: q.Get("date"), Time: q.Get("time")},
		Limit:         limit,
	}
	spots, err := s.feeds.FetchDetailSpots(r.Context(), req)
	if err != nil {
		s.fetchFailed(w, r, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, spots)
}

func (s *Server) fetchFailed(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("spot fetch failed", "path", r.URL.Path, "error", err)
	sharedobs.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to fetch spots"})
}

// lastInterval defaults only when the parameter is missing; an empty value
// means no time filter.
func lastInterval(r *http.Request) string {
	q := r.URL.Query()
	if !q.Has("lastInterval") {
		return defaultInterval
	}
	return q.Get("lastInterval")
}
