package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"

	httpadapter "github.com/couchcryptid/psws-spot-service/internal/adapter/http"
	"github.com/couchcryptid/psws-spot-service/internal/adapter/postgres"
	"github.com/couchcryptid/psws-spot-service/internal/adapter/sqlite"
	"github.com/couchcryptid/psws-spot-service/internal/config"
	"github.com/couchcryptid/psws-spot-service/internal/domain"
	"github.com/couchcryptid/psws-spot-service/internal/feed"
	"github.com/couchcryptid/psws-spot-service/internal/observability"
	"github.com/couchcryptid/psws-spot-service/internal/zone"
)

// spotStore is a domain.SpotStore that holds connections.
type spotStore interface {
	domain.SpotStore
	Close() error
}

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	zones, err := loadZones(ctx, cfg, metrics, logger)
	if err != nil {
		logger.Error("failed to load zone datasets", "error", err)
		os.Exit(1)
	}

	enricher, err := domain.NewEnricher(cfg.ReceiverGrid, zones, metrics, logger)
	if err != nil {
		logger.Error("invalid receiver", "error", err)
		os.Exit(1)
	}
	rx := enricher.Receiver()
	logger.Info("receiver located", "grid", cfg.ReceiverGrid, "lat", rx.Lat, "lon", rx.Lon)

	store, err := openStore(ctx, cfg)
	if err != nil {
		logger.Error("failed to open spot store", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}
	logger.Info("spot store ready", "driver", cfg.StoreDriver, "table", cfg.SpotsTable)

	app := feed.New(store, enricher, metrics, logger, cfg.StoreTimeout)
	srv := httpadapter.NewServer(cfg.HTTPAddr, app, cfg.LegacySpotLimit, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := store.Close(); err != nil {
		logger.Error("spot store close error", "error", err)
	}

	logger.Info("shutdown complete")
}

// loadZones builds every configured zone index and wraps each in a cache.
// The CQ dataset is required; the others are optional.
func loadZones(ctx context.Context, cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) (domain.Zones, error) {
	var zones domain.Zones

	sets := []struct {
		name     string
		source   string
		property string
		target   *domain.ZoneResolver
	}{
		{"cq", cfg.CQZonesPath, cfg.CQZoneProperty, &zones.CQ},
		{"itu", cfg.ITUZonesPath, cfg.ITUZoneProperty, &zones.ITU},
		{"country", cfg.CountriesPath, cfg.CountryProperty, &zones.Country},
		{"continent", cfg.ContinentsPath, cfg.ContinentProperty, &zones.Continent},
	}
	for _, set := range sets {
		if set.source == "" {
			logger.Info("zone dataset disabled", "set", set.name)
			continue
		}
		ix, err := zone.Open(ctx, set.source, set.property, cfg.ZoneLoadTimeout)
		if err != nil {
			return domain.Zones{}, fmt.Errorf("%s zones: %w", set.name, err)
		}
		metrics.ZoneLoaded.WithLabelValues(set.name).Set(float64(ix.Len()))
		logger.Info("zone dataset loaded",
			"set", set.name,
			"source", set.source,
			"zones", ix.Len(),
			"vertices", humanize.Comma(int64(ix.Vertices())),
		)
		*set.target = zone.NewCachedResolver(ix, cfg.ZoneCacheSize, metrics.ZoneCacheObserver(set.name))
	}
	return zones, nil
}

func openStore(ctx context.Context, cfg *config.Config) (spotStore, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.StoreTimeout)
	defer cancel()

	switch cfg.StoreDriver {
	case config.DriverPostgres:
		return postgres.Connect(ctx, cfg.PostgresURL, cfg.SpotsTable)
	default:
		return sqlite.Open(ctx, cfg.SQLitePath, cfg.SpotsTable)
	}
}
