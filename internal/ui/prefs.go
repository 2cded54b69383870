package ui

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"mealmate/internal/model"
)

// TablePrefs stores per-table UI preferences.
type TablePrefs struct {
	SortKey       string   `json:"sort_key"`
	SortDesc      bool     `json:"sort_desc"`
	HiddenColumns []string `json:"hidden_columns"`
	ActiveColumn  string   `json:"active_column"`
}

// UIPreferences stores persisted app preferences, one table per listing screen.
type UIPreferences struct {
	Search   TablePrefs `json:"search"`
	Category TablePrefs `json:"category"`
	Area     TablePrefs `json:"area"`
}

func (p *UIPreferences) forScreen(screen model.Screen) *TablePrefs {
	switch screen {
	case model.ScreenSearch:
		return &p.Search
	case model.ScreenCategory:
		return &p.Category
	case model.ScreenArea:
		return &p.Area
	}
	return nil
}

// prefsStore reads and writes UIPreferences at a fixed path. An empty path
// disables persistence.
type prefsStore struct {
	path string
}

func (s prefsStore) load() UIPreferences {
	if s.path == "" {
		return UIPreferences{}
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return UIPreferences{}
	}

	var prefs UIPreferences
	if err := json.Unmarshal(data, &prefs); err != nil {
		return UIPreferences{}
	}
	return prefs
}

func (s prefsStore) save(prefs UIPreferences) error {
	if s.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create prefs dir: %w", err)
	}

	data, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal prefs: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write prefs: %w", err)
	}
	return nil
}
