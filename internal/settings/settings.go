// Package settings persists display preferences next to the entity document.
package settings

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"foodies/internal/db"
	"foodies/internal/log"
	"foodies/internal/model"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

// ErrInvalidSettings wraps every validation failure from Save.
var ErrInvalidSettings = errors.New("invalid settings")

const (
	maxFractionDigits = 4
	maxPageSize       = 100
)

// Store reads and writes settings under model.SettingsKey.
type Store struct {
	db     *sql.DB
	logger *log.Logger
}

// New creates a settings store. A nil logger discards output.
func New(database *sql.DB, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Discard()
	}
	return &Store{db: database, logger: logger.WithComponent(log.ComponentSettings)}
}

// Get returns the stored settings merged over the defaults. Missing or
// unreadable data yields the defaults.
func (s *Store) Get() model.Settings {
	out := model.DefaultSettings()
	raw, found, err := db.GetDocument(s.db, model.SettingsKey)
	if err != nil {
		s.logger.Warn("failed to read settings, using defaults", log.FieldError, err.Error())
		return out
	}
	if !found {
		return out
	}
	// Decoding over the defaults keeps any key the stored object lacks.
	merged := out
	if err := json.Unmarshal([]byte(raw), &merged); err != nil {
		s.logger.Warn("stored settings are unreadable, using defaults", log.FieldError, err.Error())
		return out
	}
	return merged
}

// Save merges patch over the current settings, validates and persists the
// result. Nothing is written when validation fails.
func (s *Store) Save(patch model.SettingsPatch) (model.Settings, error) {
	next := patch.Apply(s.Get())
	next.Currency = strings.ToUpper(strings.TrimSpace(next.Currency))
	next.Locale = strings.TrimSpace(next.Locale)
	if err := Validate(next); err != nil {
		return model.Settings{}, err
	}

	data, err := json.Marshal(next)
	if err != nil {
		return model.Settings{}, fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := db.PutDocument(s.db, model.SettingsKey, string(data)); err != nil {
		return model.Settings{}, fmt.Errorf("failed to save settings: %w", err)
	}
	s.logger.Info("settings saved",
		"currency", next.Currency,
		"locale", next.Locale,
	)
	return next, nil
}

// Reset removes the stored settings and returns the defaults.
func (s *Store) Reset() (model.Settings, error) {
	if err := db.DeleteDocument(s.db, model.SettingsKey); err != nil {
		return model.Settings{}, fmt.Errorf("failed to reset settings: %w", err)
	}
	s.logger.Info("settings reset")
	return model.DefaultSettings(), nil
}

// Validate reports every problem with st in a single error.
func Validate(st model.Settings) error {
	var problems []string
	if _, err := currency.ParseISO(st.Currency); err != nil {
		problems = append(problems, fmt.Sprintf("currency %q is not an ISO 4217 code", st.Currency))
	}
	if _, err := language.Parse(st.Locale); err != nil || st.Locale == "" {
		problems = append(problems, fmt.Sprintf("locale %q is not a valid language tag", st.Locale))
	}
	if st.PriceFractionDigits < 0 || st.PriceFractionDigits > maxFractionDigits {
		problems = append(problems, fmt.Sprintf("price fraction digits must be between 0 and %d", maxFractionDigits))
	}
	if st.DefaultPageSize < 1 || st.DefaultPageSize > maxPageSize {
		problems = append(problems, fmt.Sprintf("page size must be between 1 and %d", maxPageSize))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidSettings, strings.Join(problems, "; "))
	}
	return nil
}
