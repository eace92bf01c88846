// Package feed serves the two spot projections. An AppContext owns every
// collaborator a request needs, so handlers hold no package-level state.
package feed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/psws-spot-service/internal/domain"
	"github.com/couchcryptid/psws-spot-service/internal/observability"
)

// FeedRequest is one feed query. Limit <= 0 returns every matching spot.
type FeedRequest struct {
	domain.WindowRequest
	Limit int
}

// AppContext wires the store to the enricher.
type AppContext struct {
	store    domain.SpotStore
	enricher *domain.Enricher
	metrics  *observability.Metrics
	logger   *slog.Logger
	timeout  time.Duration
}

// New builds an AppContext. timeout bounds each store call; zero means the
// request context alone.
func New(store domain.SpotStore, enricher *domain.Enricher, metrics *observability.Metrics, logger *slog.Logger, timeout time.Duration) *AppContext {
	return &AppContext{
		store:    store,
		enricher: enricher,
		metrics:  metrics,
		logger:   logger,
		timeout:  timeout,
	}
}

// FetchDetailSpots returns the map feed, oldest first.
func (a *AppContext) FetchDetailSpots(ctx context.Context, req FeedRequest) ([]domain.DetailSpot, error) {
	raw, err := a.fetch(ctx, req, domain.ProjectionDetail)
	if err != nil {
		return nil, err
	}
	out := make([]domain.DetailSpot, len(raw))
	for i, r := range raw {
		out[i] = a.enricher.Detail(r)
	}
	a.metrics.SpotsServed.WithLabelValues(string(domain.ProjectionDetail)).Add(float64(len(out)))
	return out, nil
}

// FetchSummarySpots returns the table feed, oldest first.
func (a *AppContext) FetchSummarySpots(ctx context.Context, req FeedRequest) ([]domain.SummarySpot, error) {
	raw, err := a.fetch(ctx, req, domain.ProjectionSummary)
	if err != nil {
		return nil, err
	}
	out := make([]domain.SummarySpot, len(raw))
	for i, r := range raw {
		out[i] = a.enricher.Summary(r)
	}
	a.metrics.SpotsServed.WithLabelValues(string(domain.ProjectionSummary)).Add(float64(len(out)))
	return out, nil
}

// CheckReadiness reports whether the store answers.
func (a *AppContext) CheckReadiness(ctx context.Context) error {
	if err := a.store.Ping(ctx); err != nil {
		return fmt.Errorf("spot store: %w", err)
	}
	return nil
}

func (a *AppContext) fetch(ctx context.Context, req FeedRequest, p domain.Projection) ([]domain.RawSpot, error) {
	a.metrics.FeedRequests.WithLabelValues(string(p)).Inc()

	window, err := domain.BuildWindow(req.WindowRequest)
	if err != nil {
		// Unusable input widens the query instead of failing it.
		a.logger.Warn("ignoring unparseable time filter",
			"projection", p,
			"error", err,
			"window", window.String(),
		)
		a.metrics.RecordDegraded(domain.DegradedParse)
	}

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	start := time.Now()
	spots, err := a.store.FindSpots(ctx, domain.SpotQuery{Window: window, Limit: req.Limit})
	a.metrics.QueryDuration.WithLabelValues(string(p)).Observe(time.Since(start).Seconds())
	if err != nil {
		a.metrics.StoreErrors.Inc()
		return nil, fmt.Errorf("find spots: %w", err)
	}

	return domain.SelectRecent(spots, req.Limit), nil
}
