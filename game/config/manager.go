package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ludokit/ludo-server/game/engine"
	"github.com/ludokit/ludo-server/game/service"
)

var (
	ErrPresetNotFound = errors.New("preset not found")
	ErrInvalidPreset  = errors.New("invalid preset")
)

// Manager handles match preset loading and caching. Built-in presets are
// always available; a preset directory adds file-backed ones on top.
type Manager struct {
	presetDir string
	builtins  map[string]*engine.MatchConfig
	cache     map[string]*engine.MatchConfig
	mu        sync.RWMutex
}

// NewManager creates a new preset manager. An empty presetDir serves only
// the built-in presets.
func NewManager(presetDir string) (*Manager, error) {
	if presetDir != "" {
		if _, err := os.Stat(presetDir); os.IsNotExist(err) {
			return nil, fmt.Errorf("preset directory does not exist: %s", presetDir)
		}
	}

	return &Manager{
		presetDir: presetDir,
		builtins:  builtinPresets(),
		cache:     make(map[string]*engine.MatchConfig),
	}, nil
}

// LoadPreset loads a preset by name. Built-ins shadow file-backed presets
// of the same name.
func (m *Manager) LoadPreset(name string) (*engine.MatchConfig, error) {
	m.mu.RLock()
	if config, exists := m.builtins[name]; exists {
		m.mu.RUnlock()
		return config, nil
	}
	if config, exists := m.cache[name]; exists {
		m.mu.RUnlock()
		return config, nil
	}
	m.mu.RUnlock()

	if m.presetDir == "" {
		return nil, fmt.Errorf("%w: %s", ErrPresetNotFound, name)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if config, exists := m.cache[name]; exists {
		return config, nil
	}

	filename := name
	if !strings.HasSuffix(filename, ".json") {
		filename = name + ".json"
	}

	data, err := os.ReadFile(filepath.Join(m.presetDir, filename))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrPresetNotFound, name)
		}
		return nil, fmt.Errorf("failed to read preset file: %w", err)
	}

	var config engine.MatchConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPreset, err)
	}

	if err := engine.ValidateMatchConfig(&config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPreset, err)
	}

	m.cache[name] = &config
	return &config, nil
}

// ListPresets returns information about all available presets
func (m *Manager) ListPresets() ([]*service.PresetInfo, error) {
	var presets []*service.PresetInfo

	m.mu.RLock()
	for id, config := range m.builtins {
		presets = append(presets, &service.PresetInfo{
			PresetID:    id,
			Name:        config.Name,
			Description: config.Description,
			NumPlayers:  config.NumPlayers,
			Builtin:     true,
		})
	}
	m.mu.RUnlock()

	if m.presetDir != "" {
		entries, err := os.ReadDir(m.presetDir)
		if err != nil {
			return nil, fmt.Errorf("failed to read preset directory: %w", err)
		}

		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
				continue
			}

			name := strings.TrimSuffix(entry.Name(), ".json")
			if _, shadowed := m.builtins[name]; shadowed {
				continue
			}

			config, err := m.LoadPreset(name)
			if err != nil {
				// Skip invalid presets
				continue
			}

			presets = append(presets, &service.PresetInfo{
				PresetID:    name,
				Name:        config.Name,
				Description: config.Description,
				NumPlayers:  config.NumPlayers,
			})
		}
	}

	return presets, nil
}

// GetDefault returns the default preset
func (m *Manager) GetDefault() *engine.MatchConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.builtins["classic"]
}

// SavePreset writes a preset to the preset directory and caches it. Built-in
// preset IDs are reserved; saving requires a preset directory.
func (m *Manager) SavePreset(name string, config *engine.MatchConfig) error {
	if err := engine.ValidateMatchConfig(config); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPreset, err)
	}

	if m.presetDir == "" {
		return fmt.Errorf("no preset directory configured")
	}

	id := strings.ToLower(strings.TrimSuffix(name, ".json"))
	if id == "" {
		return fmt.Errorf("%w: preset name is required", ErrInvalidPreset)
	}
	if _, reserved := m.builtins[id]; reserved {
		return fmt.Errorf("%w: preset ID '%s' is reserved by a built-in preset", ErrInvalidPreset, id)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal preset: %w", err)
	}

	presetPath := filepath.Join(m.presetDir, id+".json")
	if err := os.WriteFile(presetPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write preset file: %w", err)
	}

	m.mu.Lock()
	m.cache[id] = config
	m.mu.Unlock()

	return nil
}

// RefreshCache drops all file-backed presets so the next load rereads disk
func (m *Manager) RefreshCache() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cache = make(map[string]*engine.MatchConfig)
}

// builtinPresets returns the presets that ship with the server
func builtinPresets() map[string]*engine.MatchConfig {
	classic := engine.DefaultMatchConfig()

	duel := engine.DefaultMatchConfig()
	duel.Name = "duel"
	duel.Description = "Head-to-head match for two players"
	duel.NumPlayers = 2

	return map[string]*engine.MatchConfig{
		"classic": classic,
		"duel":    duel,
	}
}
