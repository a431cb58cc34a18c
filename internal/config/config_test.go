package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davaotransit/routekit/internal/lib/geo"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5000", cfg.OSRMURL)
	assert.Equal(t, "data/routes", cfg.RoutesDir)
	assert.Equal(t, 20.0, cfg.SpacingM)
	assert.Equal(t, geo.DavaoBounds, cfg.Bounds)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("OSRM_URL", "http://osrm.internal:5001")
	t.Setenv("WAYPOINT_SPACING_M", "15")
	t.Setenv("BOUNDS_MAX_LAT", "7.5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://osrm.internal:5001", cfg.OSRMURL)
	assert.Equal(t, 15.0, cfg.SpacingM)
	assert.Equal(t, 7.5, cfg.Bounds.MaxLat)
	assert.Equal(t, geo.DavaoBounds.MinLat, cfg.Bounds.MinLat)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("WAYPOINT_SPACING_M", "-5")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("WAYPOINT_SPACING_M", "20")
	t.Setenv("BOUNDS_MIN_LAT", "not-a-number")
	_, err = Load()
	assert.Error(t, err)
}
