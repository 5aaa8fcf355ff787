// Package settings persists per-user preferences between runs.
package settings

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	settingsObject   = "settings"
	settingsProperty = "player"
)

// Settings are the values that survive a restart.
type Settings struct {
	MusicVolume  float64 `yaml:"musicVolume"`
	Muted        bool    `yaml:"muted"`
	BestDistance float64 `yaml:"bestDistance"`
}

// Defaults returns settings for a first run with the given music volume.
func Defaults(volume float64) Settings {
	return Settings{MusicVolume: clampVolume(volume)}
}

// EffectiveVolume is the volume the music player should use.
func (s Settings) EffectiveVolume() float64 {
	if s.Muted {
		return 0
	}
	return s.MusicVolume
}

// Manager loads and saves Settings through gdata. A nil gdata manager runs in
// memory only: Load keeps defaults and Save is a no-op.
type Manager struct {
	store    *gdata.Manager
	log      *zap.Logger
	defaults Settings
	settings Settings
}

// NewManager creates a manager and loads any saved settings. A load failure
// is logged and leaves the defaults in place.
func NewManager(store *gdata.Manager, defaults Settings, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	m := &Manager{
		store:    store,
		log:      log,
		defaults: defaults,
		settings: defaults,
	}
	if store == nil {
		log.Warn("settings storage unavailable, preferences will not persist")
	}
	if err := m.Load(); err != nil {
		log.Warn("load settings, using defaults", zap.Error(err))
	}
	return m
}

// Load replaces the in-memory settings with the saved copy. Missing or
// unreadable data resets them to the defaults.
func (m *Manager) Load() error {
	m.settings = m.defaults
	if m.store == nil || !m.store.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}

	data, err := m.store.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	var loaded Settings
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("unmarshal settings: %w", err)
	}
	loaded.MusicVolume = clampVolume(loaded.MusicVolume)
	m.settings = loaded

	m.log.Debug("settings loaded",
		zap.Float64("volume", loaded.MusicVolume),
		zap.Bool("muted", loaded.Muted),
		zap.Float64("best_distance", loaded.BestDistance))
	return nil
}

// Save writes the in-memory settings.
func (m *Manager) Save() error {
	if m.store == nil {
		return nil
	}

	data, err := yaml.Marshal(m.settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := m.store.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	m.log.Debug("settings saved")
	return nil
}

// Settings returns a copy of the current settings.
func (m *Manager) Settings() Settings {
	return m.settings
}

func (m *Manager) SetMusicVolume(volume float64) {
	m.settings.MusicVolume = clampVolume(volume)
}

func (m *Manager) SetMuted(muted bool) {
	m.settings.Muted = muted
}

// ToggleMute flips the mute flag and returns the new value.
func (m *Manager) ToggleMute() bool {
	m.settings.Muted = !m.settings.Muted
	return m.settings.Muted
}

// RecordDistance keeps the best distance seen so far. It reports whether d
// is a new best.
func (m *Manager) RecordDistance(d float64) bool {
	if d <= m.settings.BestDistance {
		return false
	}
	m.settings.BestDistance = d
	return true
}

func clampVolume(volume float64) float64 {
	return min(max(volume, 0), 1)
}
