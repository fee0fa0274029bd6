package repository

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"fuelreq/models"
)

// SettingsStore reads and writes the singleton settings JSON document.
// Load never fails: a missing or unreadable file degrades to defaults.
type SettingsStore struct {
	Path string

	mu sync.Mutex
}

func NewSettingsStore(path string) *SettingsStore {
	return &SettingsStore{Path: path}
}

func (s *SettingsStore) Load() *models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.Path)
	if err != nil {
		return models.DefaultSettings()
	}
	settings := models.DefaultSettings()
	if err := json.Unmarshal(raw, settings); err != nil {
		return models.DefaultSettings()
	}
	return settings
}

// Save rewrites the document wholesale. No versioning.
func (s *SettingsStore) Save(settings *models.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.Path, raw, 0644)
}

// ResolveLogoPath resolves a relative logo path against the directory of the
// settings file, the way the settings screen stores it.
func (s *SettingsStore) ResolveLogoPath(logoPath string) string {
	if logoPath == "" || filepath.IsAbs(logoPath) {
		return logoPath
	}
	return filepath.Join(filepath.Dir(s.Path), logoPath)
}
