// Package settings persists viewer preferences between runs.
//
// Preferences are stored as a YAML blob through gdata. A Manager without a
// gdata store keeps everything in memory and never fails to save.
package settings

import (
	"errors"
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// Display selects the field a viewer colours the grid by.
type Display string

const (
	DisplaySmoke      Display = "smoke"
	DisplaySpeed      Display = "speed"
	DisplayDivergence Display = "divergence"
	DisplayVorticity  Display = "vorticity"
)

var displayCycle = []Display{DisplaySmoke, DisplaySpeed, DisplayDivergence, DisplayVorticity}

// ErrUnknownDisplay is returned for display names outside the cycle.
var ErrUnknownDisplay = errors.New("settings: unknown display")

// ParseDisplay accepts the names used in flags and the store.
func ParseDisplay(s string) (Display, error) {
	for _, d := range displayCycle {
		if string(d) == s {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDisplay, s)
}

// Next returns the display after d, wrapping around. Unknown values restart
// the cycle.
func (d Display) Next() Display {
	for k, c := range displayCycle {
		if c == d {
			return displayCycle[(k+1)%len(displayCycle)]
		}
	}
	return displayCycle[0]
}

type Settings struct {
	Display     Display `yaml:"display"`
	Paused      bool    `yaml:"paused"`
	Scale       int     `yaml:"scale"`
	AdvectSmoke bool    `yaml:"advectSmoke"`
}

// Scale bounds, in screen pixels per cell.
const (
	MinScale     = 1
	MaxScale     = 32
	DefaultScale = 10
)

func DefaultSettings() *Settings {
	return &Settings{
		Display: DisplaySmoke,
		Scale:   DefaultScale,
	}
}

const (
	settingsObject   = "viewer"
	settingsProperty = "settings"
)

type Manager struct {
	store    *gdata.Manager
	settings *Settings
}

// NewManager loads saved settings from store. A nil store or a failed load
// leaves the defaults in place.
func NewManager(store *gdata.Manager) *Manager {
	m := &Manager{
		store:    store,
		settings: DefaultSettings(),
	}
	if err := m.Load(); err != nil {
		log.Printf("[settings] failed to load settings: %v (using defaults)", err)
	}
	return m
}

// Open creates a gdata store for appName and loads from it.
func Open(appName string) (*Manager, error) {
	store, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("failed to open settings store: %w", err)
	}
	return NewManager(store), nil
}

func (m *Manager) Load() error {
	if m.store == nil || !m.store.ObjectPropExists(settingsObject, settingsProperty) {
		m.settings = DefaultSettings()
		return nil
	}

	data, err := m.store.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		m.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		m.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	if _, err := ParseDisplay(string(loaded.Display)); err != nil {
		loaded.Display = DisplaySmoke
	}
	loaded.Scale = clampScale(loaded.Scale)

	m.settings = loaded
	return nil
}

// Save is a no-op without a store.
func (m *Manager) Save() error {
	if m.store == nil {
		return nil
	}

	data, err := yaml.Marshal(m.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := m.store.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	log.Printf("[settings] saved %+v", *m.settings)
	return nil
}

// Get returns a copy of the current settings.
func (m *Manager) Get() Settings {
	return *m.settings
}

// Setters change memory only; call Save to persist.

func (m *Manager) SetDisplay(d Display) error {
	if _, err := ParseDisplay(string(d)); err != nil {
		return err
	}
	m.settings.Display = d
	return nil
}

func (m *Manager) CycleDisplay() Display {
	m.settings.Display = m.settings.Display.Next()
	return m.settings.Display
}

func (m *Manager) TogglePaused() bool {
	m.settings.Paused = !m.settings.Paused
	return m.settings.Paused
}

func (m *Manager) ToggleSmokeAdvection() bool {
	m.settings.AdvectSmoke = !m.settings.AdvectSmoke
	return m.settings.AdvectSmoke
}

func (m *Manager) SetAdvectSmoke(on bool) {
	m.settings.AdvectSmoke = on
}

// SetScale clamps scale to [MinScale, MaxScale].
func (m *Manager) SetScale(scale int) {
	m.settings.Scale = clampScale(scale)
}

func clampScale(scale int) int {
	return min(max(scale, MinScale), MaxScale)
}
