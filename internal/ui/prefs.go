package ui

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"foodies/internal/model"
)

// PrefsFileName is the preferences file kept in the config directory.
const PrefsFileName = "ui_prefs.json"

// TablePrefs is what a table remembers between runs.
type TablePrefs struct {
	SortKey       string   `json:"sort_key"`
	SortDesc      bool     `json:"sort_desc"`
	HiddenColumns []string `json:"hidden_columns"`
	ActiveColumn  string   `json:"active_column"`
}

// UIPreferences is the whole preferences file. ShowImage is a pointer so an
// absent value means "on".
type UIPreferences struct {
	Places    TablePrefs `json:"places"`
	Shops     TablePrefs `json:"shops"`
	Foods     TablePrefs `json:"foods"`
	Trips     TablePrefs `json:"trips"`
	LastTab   string     `json:"last_tab,omitempty"`
	ShowImage *bool      `json:"show_image,omitempty"`
}

// PrefsPath returns the preferences file inside configDir.
func PrefsPath(configDir string) string {
	return filepath.Join(configDir, PrefsFileName)
}

// Tab returns the remembered tab, or the dashboard.
func (p UIPreferences) Tab() model.Screen {
	for _, s := range model.Tabs {
		if s.String() == p.LastTab {
			return s
		}
	}
	return model.ScreenDashboard
}

func (p UIPreferences) ImagesShown() bool {
	return p.ShowImage == nil || *p.ShowImage
}

func (p *UIPreferences) SetImagesShown(show bool) {
	p.ShowImage = &show
}

// loadUIPreferences never fails: a missing or unreadable file gives the
// zero preferences.
func loadUIPreferences(path string) UIPreferences {
	var prefs UIPreferences
	if path == "" {
		return prefs
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return prefs
	}
	if err := json.Unmarshal(data, &prefs); err != nil {
		return UIPreferences{}
	}
	return prefs
}

// saveUIPreferences writes through a temporary file so a crash never leaves
// a half-written file behind.
func saveUIPreferences(path string, prefs UIPreferences) error {
	if path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create prefs dir: %w", err)
	}

	data, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal prefs: %w", err)
	}

	tmp, err := os.CreateTemp(dir, PrefsFileName+".*")
	if err != nil {
		return fmt.Errorf("failed to write prefs: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write prefs: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write prefs: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to write prefs: %w", err)
	}
	return nil
}
