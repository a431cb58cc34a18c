// Package config resolves tool configuration from the environment,
// optionally seeded from a .env file. CLI flags override whatever is
// loaded here.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/davaotransit/routekit/internal/lib/geo"
)

// Config holds the settings shared by the route tooling.
type Config struct {
	// OSRMURL is the base URL of the map-matching server.
	OSRMURL string
	// RoutesDir is the directory holding R*.json route documents.
	RoutesDir string
	// SpacingM is the target distance between waypoints in meters.
	SpacingM float64
	// Bounds is the serviceable region used for coordinate warnings.
	Bounds geo.Bounds
}

// Load reads configuration from the environment. A missing .env file is
// not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		OSRMURL:   getenvDefault("OSRM_URL", "http://localhost:5000"),
		RoutesDir: getenvDefault("ROUTES_DIR", "data/routes"),
		SpacingM:  20,
		Bounds:    geo.DavaoBounds,
	}

	if v := os.Getenv("WAYPOINT_SPACING_M"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			return nil, fmt.Errorf("invalid WAYPOINT_SPACING_M: %q", v)
		}
		cfg.SpacingM = f
	}

	var err error
	if cfg.Bounds.MinLat, err = floatEnv("BOUNDS_MIN_LAT", cfg.Bounds.MinLat); err != nil {
		return nil, err
	}
	if cfg.Bounds.MaxLat, err = floatEnv("BOUNDS_MAX_LAT", cfg.Bounds.MaxLat); err != nil {
		return nil, err
	}
	if cfg.Bounds.MinLon, err = floatEnv("BOUNDS_MIN_LON", cfg.Bounds.MinLon); err != nil {
		return nil, err
	}
	if cfg.Bounds.MaxLon, err = floatEnv("BOUNDS_MAX_LON", cfg.Bounds.MaxLon); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func floatEnv(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return f, nil
}
