package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"travelglobe/geo"
	"travelglobe/gfx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "globe.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaultsAreValid(t *testing.T) {
	cfg := New()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, geo.FilterAll, cfg.FilterValue())

	ds, err := cfg.DestinationList()
	require.NoError(t, err)
	assert.Len(t, ds, 10)
}

func TestLoadWithoutFile(t *testing.T) {
	t.Setenv(EnvFile, "")
	cfg, err := Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, New(), cfg)
}

func TestLoadFileAndEnv(t *testing.T) {
	path := writeFile(t, `
log_level: debug
width: 320
height: 240
filter: visited
seed: 42
destinations:
  - name: Tokyo
    lat: 35.68
    lng: 139.65
    visited: true
    color: "#00ff88"
  - name: Bali
    lat: -8.34
    lng: 115.09
`)
	t.Setenv(EnvFile, path)
	t.Setenv("GLOBE_WIDTH", "640")
	t.Setenv("GLOBE_TEXTURE_WIDTH", "512")

	cfg, err := Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 640, cfg.Width, "env beats file")
	assert.Equal(t, 240, cfg.Height)
	assert.Equal(t, 512, cfg.TextureWidth)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, geo.FilterVisited, cfg.FilterValue())

	ds, err := cfg.DestinationList()
	require.NoError(t, err)
	require.Len(t, ds, 2)
	assert.Equal(t, "Tokyo", ds[0].Name)
	assert.Equal(t, gfx.RGB(0x00, 0xff, 0x88), ds[0].Color)
	assert.True(t, ds[0].Visited)
	assert.False(t, ds[1].Visited)
	assert.NotEqual(t, gfx.Color{}, ds[1].Color, "palette fills missing colors")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadFile(context.Background(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, ErrLoadConfig)
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"filter":    "filter: favorites\n",
		"size":      "width: 10\n",
		"latitude":  "destinations:\n  - name: X\n    lat: 95\n    lng: 0\n",
		"duplicate": "destinations:\n  - name: X\n  - name: X\n",
		"color":     "destinations:\n  - name: X\n    color: green\n",
		"addr":      "metrics_addr: nowhere\n",
		"log level": "log_level: loud\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFile(context.Background(), writeFile(t, body))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestMetricsAddr(t *testing.T) {
	cfg := New()
	cfg.MetricsAddr = "localhost:9090"
	assert.NoError(t, cfg.Validate())
	cfg.MetricsAddr = ":9090"
	assert.NoError(t, cfg.Validate())
}
