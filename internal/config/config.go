package config

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Store drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Enrichment.
	ReceiverGrid string

	// Boundary datasets. A path may be a file or an http(s) URL; empty ITU,
	// country and continent paths disable those lookups.
	CQZonesPath       string
	CQZoneProperty    string
	ITUZonesPath      string
	ITUZoneProperty   string
	CountriesPath     string
	CountryProperty   string
	ContinentsPath    string
	ContinentProperty string
	ZoneCacheSize     int
	ZoneLoadTimeout   time.Duration

	// Spot store.
	StoreDriver     string
	SQLitePath      string
	PostgresURL     string
	SpotsTable      string
	StoreTimeout    time.Duration
	LegacySpotLimit int
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	storeTimeout, err := parseDuration("STORE_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}
	zoneLoadTimeout, err := parseDuration("ZONE_LOAD_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}
	cacheSize, err := parsePositiveInt("ZONE_CACHE_SIZE", 4096)
	if err != nil {
		return nil, err
	}
	legacyLimit, err := parsePositiveInt("LEGACY_SPOT_LIMIT", 50)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		ReceiverGrid: sharedcfg.EnvOrDefault("RECEIVER_GRID", "FN21ni"),

		CQZonesPath:       sharedcfg.EnvOrDefault("CQ_ZONES_PATH", "data/cqzones.geojson"),
		CQZoneProperty:    sharedcfg.EnvOrDefault("CQ_ZONE_PROPERTY", "cq_zone_number"),
		ITUZonesPath:      sharedcfg.EnvOrDefault("ITU_ZONES_PATH", ""),
		ITUZoneProperty:   sharedcfg.EnvOrDefault("ITU_ZONE_PROPERTY", "itu_zone_number"),
		CountriesPath:     sharedcfg.EnvOrDefault("COUNTRIES_PATH", ""),
		CountryProperty:   sharedcfg.EnvOrDefault("COUNTRY_PROPERTY", "name"),
		ContinentsPath:    sharedcfg.EnvOrDefault("CONTINENTS_PATH", ""),
		ContinentProperty: sharedcfg.EnvOrDefault("CONTINENT_PROPERTY", "continent"),
		ZoneCacheSize:     cacheSize,
		ZoneLoadTimeout:   zoneLoadTimeout,

		StoreDriver:     strings.ToLower(sharedcfg.EnvOrDefault("STORE_DRIVER", DriverSQLite)),
		SQLitePath:      sharedcfg.EnvOrDefault("SQLITE_PATH", "data/spots.db"),
		PostgresURL:     sharedcfg.EnvOrDefault("POSTGRES_URL", ""),
		SpotsTable:      sharedcfg.EnvOrDefault("SPOTS_TABLE", "spots"),
		StoreTimeout:    storeTimeout,
		LegacySpotLimit: legacyLimit,
	}

	if cfg.ReceiverGrid == "" {
		return nil, errors.New("RECEIVER_GRID is required")
	}
	if cfg.CQZonesPath == "" {
		return nil, errors.New("CQ_ZONES_PATH is required")
	}
	if !tableNamePattern.MatchString(cfg.SpotsTable) {
		return nil, fmt.Errorf("invalid SPOTS_TABLE %q: must be a plain SQL identifier", cfg.SpotsTable)
	}
	switch cfg.StoreDriver {
	case DriverSQLite:
		if cfg.SQLitePath == "" {
			return nil, errors.New("SQLITE_PATH is required when STORE_DRIVER is sqlite")
		}
	case DriverPostgres:
		if cfg.PostgresURL == "" {
			return nil, errors.New("POSTGRES_URL is required when STORE_DRIVER is postgres")
		}
	default:
		return nil, fmt.Errorf("invalid STORE_DRIVER %q: want sqlite or postgres", cfg.StoreDriver)
	}

	return cfg, nil
}

func parseDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parsePositiveInt(key string, def int) (int, error) {
	s := sharedcfg.EnvOrDefault(key, strconv.Itoa(def))
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return n, nil
}
