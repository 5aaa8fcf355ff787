// Package config loads the kingfisher TOML configuration file.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/plus3/kingfisher/game"
)

type Config struct {
	Window  WindowConfig  `toml:"window"`
	Player  PlayerConfig  `toml:"player"`
	Wind    WindConfig    `toml:"wind"`
	Camera  CameraConfig  `toml:"camera"`
	Assets  AssetsConfig  `toml:"assets"`
	Audio   AudioConfig   `toml:"audio"`
	Logging LoggingConfig `toml:"logging"`
	Debug   DebugConfig   `toml:"debug"`
}

type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`  // logical viewport, world units
	Height int    `toml:"height"` // logical viewport, world units
	Scale  int    `toml:"scale"`  // initial window size multiplier
}

type PlayerConfig struct {
	StartX      float64 `toml:"start_x"`
	StartY      float64 `toml:"start_y"`
	FlapSpeed   float64 `toml:"flap_speed"`
	StrafeSpeed float64 `toml:"strafe_speed"`
}

type WindConfig struct {
	Amplitude float64 `toml:"amplitude"` // world units per second
	Frequency float64 `toml:"frequency"` // Hz
	Phase     float64 `toml:"phase"`     // radians
}

type CameraConfig struct {
	Lerp    float64 `toml:"lerp"`
	OffsetX float64 `toml:"offset_x"`
}

type AssetsConfig struct {
	Dir        string `toml:"dir"`
	Background string `toml:"background"`
	Branch     string `toml:"branch"`
	Music      string `toml:"music"`
}

type AudioConfig struct {
	Volume     float64 `toml:"volume"` // default music volume, 0.0-1.0
	SampleRate int     `toml:"sample_rate"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type DebugConfig struct {
	Overlay bool `toml:"overlay"`
}

// Load reads the config at path over the defaults. An empty path or a path
// that does not exist yields the defaults.
func Load(path string) (*Config, error) {
	cfg := defaults()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Window.Scale <= 0 {
		return fmt.Errorf("window scale must be positive, got %d", c.Window.Scale)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("audio volume must be within [0, 1], got %v", c.Audio.Volume)
	}
	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("audio sample rate must be positive, got %d", c.Audio.SampleRate)
	}
	return nil
}

// WorldOptions converts the simulation-related sections into game options.
func (c *Config) WorldOptions() game.Options {
	opts := game.DefaultOptions()
	opts.PlayerStart = game.Position{X: c.Player.StartX, Y: c.Player.StartY}
	opts.BranchAnchor = game.StaticPosition{X: 0, Y: c.Player.StartY}
	opts.Wind = game.Wind{
		Amplitude: c.Wind.Amplitude,
		Frequency: c.Wind.Frequency,
		Phase:     c.Wind.Phase,
	}
	opts.Tuning = game.Tuning{
		FlapSpeed:   c.Player.FlapSpeed,
		StrafeSpeed: c.Player.StrafeSpeed,
	}
	opts.CameraLerp = c.Camera.Lerp
	opts.CameraOffset = c.Camera.OffsetX
	opts.Viewport = game.Viewport{
		Width:  float64(c.Window.Width),
		Height: float64(c.Window.Height),
	}
	return opts
}

func defaults() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "Kingfisher",
			Width:  640,
			Height: 480,
			Scale:  1,
		},
		Player: PlayerConfig{
			StartX:      220,
			StartY:      340,
			FlapSpeed:   100,
			StrafeSpeed: 100,
		},
		Wind: WindConfig{
			Amplitude: 20,
			Frequency: 0.25,
		},
		Camera: CameraConfig{
			Lerp:    0.6,
			OffsetX: 50,
		},
		Assets: AssetsConfig{
			Dir:        "assets",
			Background: "bg2.png",
			Branch:     "branchalt.png",
			Music:      "dumdidum.wav",
		},
		Audio: AudioConfig{
			Volume:     0.3,
			SampleRate: 44100,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
