package config

import (
	"errors"
	"os"
	"path/filepath"

	"ledgerdesk/internal/security"
)

// QuickLoadSlots is the number of pinned ledger paths in the open dialog.
const QuickLoadSlots = 3

// Settings is the per-installation state kept encrypted on disk: pinned
// ledger files and the profile shown on generated reports.
type Settings struct {
	QuickLoadFiles [QuickLoadSlots]string `json:"quick_load_files"`
	AdminName      string                 `json:"admin_name"`
	AdminRole      string                 `json:"admin_role"`
	CompanyName    string                 `json:"company_name"`
	CompanyContact string                 `json:"company_contact"`
}

// SettingsStore loads and saves Settings through the security manager.
type SettingsStore struct {
	manager *security.Manager
	path    string
}

// NewSettingsStore binds the store to dataDir/settings.json.
func NewSettingsStore(manager *security.Manager, dataDir string) *SettingsStore {
	return &SettingsStore{
		manager: manager,
		path:    filepath.Join(dataDir, "settings.json"),
	}
}

// Load reads the settings, returning zero-valued defaults when the file
// does not exist yet.
func (s *SettingsStore) Load() (Settings, error) {
	var settings Settings
	err := s.manager.LoadJSON(s.path, &settings)
	if err != nil && errors.Is(err, os.ErrNotExist) {
		return Settings{}, nil
	}
	return settings, err
}

// Save persists the settings encrypted.
func (s *SettingsStore) Save(settings Settings) error {
	return s.manager.SaveJSON(s.path, settings)
}

// Pin records path in the quick-load list, moving it to the front and
// dropping the oldest entry when all slots are taken.
func (s *Settings) Pin(path string) {
	if path == "" {
		return
	}
	out := [QuickLoadSlots]string{path}
	n := 1
	for _, existing := range s.QuickLoadFiles {
		if existing == "" || existing == path || n >= QuickLoadSlots {
			continue
		}
		out[n] = existing
		n++
	}
	s.QuickLoadFiles = out
}
