package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/plus3/kingfisher/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kingfisher.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 640, cfg.Window.Width)
	assert.Equal(t, 480, cfg.Window.Height)
	assert.Equal(t, 0.3, cfg.Audio.Volume)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Debug.Overlay)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, defaults(), cfg)
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
[window]
title = "Windy"

[wind]
amplitude = 5.5
frequency = 2.0

[audio]
volume = 0.8

[logging]
format = "json"

[debug]
overlay = true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Windy", cfg.Window.Title)
	assert.Equal(t, 640, cfg.Window.Width, "unset keys keep their defaults")
	assert.Equal(t, 5.5, cfg.Wind.Amplitude)
	assert.Equal(t, 2.0, cfg.Wind.Frequency)
	assert.Equal(t, 0.8, cfg.Audio.Volume)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.True(t, cfg.Debug.Overlay)
}

func TestShippedConfigMatchesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "kingfisher.toml"))
	require.NoError(t, err)
	assert.Equal(t, defaults(), cfg)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := map[string]string{
		"syntax":      "[window\n",
		"width":       "[window]\nwidth = 0\n",
		"scale":       "[window]\nscale = -1\n",
		"volume":      "[audio]\nvolume = 1.5\n",
		"sample rate": "[audio]\nsample_rate = 0\n",
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestWorldOptions(t *testing.T) {
	cfg := defaults()
	opts := cfg.WorldOptions()

	assert.Equal(t, game.DefaultOptions(), opts)

	cfg.Player.StartY = 100
	cfg.Player.FlapSpeed = 250
	opts = cfg.WorldOptions()
	assert.Equal(t, game.StaticPosition{X: 0, Y: 100}, opts.BranchAnchor)
	assert.Equal(t, 250.0, opts.Tuning.FlapSpeed)
}
