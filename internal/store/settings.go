package store

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/hatkhataapp/hatkhata-server/internal/domain"
	apperrors "github.com/hatkhataapp/hatkhata-server/internal/errors"
	"github.com/hatkhataapp/hatkhata-server/internal/sse"
)

// Localizer receives language and font changes so presentation-layer
// collaborators can switch locale resources. Notifications are best-effort:
// a failure is logged, never propagated, and never blocks the setting from
// being applied.
type Localizer interface {
	SetLanguage(lang domain.Language) error
	SetFontFamily(font domain.FontFamily) error
}

// SettingsStore holds display and behavior preferences.
type SettingsStore struct {
	mu        sync.RWMutex
	settings  domain.Settings
	durable   Durable
	events    EventEmitter
	localizer Localizer
	logger    *slog.Logger
}

// NewSettingsStore rehydrates settings from the backend, falling back to
// defaults on first launch. The localizer may be nil. After rehydration the
// stored language and font are pushed to the localizer once, so locale
// state survives restarts.
func NewSettingsStore(durable Durable, events EventEmitter, localizer Localizer, logger *slog.Logger) (*SettingsStore, error) {
	s := &SettingsStore{
		durable:   durable,
		events:    events,
		localizer: localizer,
		logger:    logger,
	}

	var settings domain.Settings
	err := durable.Load(RecordSettings, &settings)
	switch {
	case err == nil:
		s.settings = settings
	case apperrors.Is(err, ErrRecordNotFound):
		s.settings = domain.DefaultSettings()
		s.save()
	default:
		return nil, fmt.Errorf("failed to load settings record: %w", err)
	}

	s.notifyLanguage(s.settings.Language)
	s.notifyFont(s.settings.FontFamily)

	return s, nil
}

// Settings returns the current preferences.
func (s *SettingsStore) Settings() domain.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// SetThemeMode sets the color scheme.
func (s *SettingsStore) SetThemeMode(mode domain.ThemeMode) domain.Settings {
	return s.update(func(st *domain.Settings) {
		st.ThemeMode = mode
	})
}

// SetLanguage sets the display language and notifies the localizer.
func (s *SettingsStore) SetLanguage(lang domain.Language) domain.Settings {
	updated := s.update(func(st *domain.Settings) {
		st.Language = lang
	})
	s.notifyLanguage(lang)
	return updated
}

// SetFontFamily sets the display font and notifies the localizer.
func (s *SettingsStore) SetFontFamily(font domain.FontFamily) domain.Settings {
	updated := s.update(func(st *domain.Settings) {
		st.FontFamily = font
	})
	s.notifyFont(font)
	return updated
}

// SetCurrency sets the currency code and display symbol together.
func (s *SettingsStore) SetCurrency(code, symbol string) domain.Settings {
	return s.update(func(st *domain.Settings) {
		st.Currency = code
		st.CurrencySymbol = symbol
	})
}

// ToggleShowTotalPrice flips the list-total visibility preference.
func (s *SettingsStore) ToggleShowTotalPrice() domain.Settings {
	return s.update(func(st *domain.Settings) {
		st.ShowTotalPrice = !st.ShowTotalPrice
	})
}

// ToggleMoveCompletedToBottom flips the checked-items-sink preference.
func (s *SettingsStore) ToggleMoveCompletedToBottom() domain.Settings {
	return s.update(func(st *domain.Settings) {
		st.MoveCompletedToBottom = !st.MoveCompletedToBottom
	})
}

// ToggleHapticFeedback flips the haptic feedback preference.
func (s *SettingsStore) ToggleHapticFeedback() domain.Settings {
	return s.update(func(st *domain.Settings) {
		st.HapticFeedback = !st.HapticFeedback
	})
}

// update applies a mutation under lock, persists, and emits the change.
func (s *SettingsStore) update(fn func(*domain.Settings)) domain.Settings {
	s.mu.Lock()
	fn(&s.settings)
	updated := s.settings
	s.save()
	s.mu.Unlock()

	s.events.Emit(sse.NewSettingsUpdatedEvent(updated))
	return updated
}

// save snapshots the settings record. Callers must hold the mutex (or,
// during construction, exclusive ownership).
func (s *SettingsStore) save() {
	s.durable.Save(RecordSettings, s.settings)
}

func (s *SettingsStore) notifyLanguage(lang domain.Language) {
	if s.localizer == nil {
		return
	}
	if err := s.localizer.SetLanguage(lang); err != nil && s.logger != nil {
		s.logger.Warn("localizer rejected language change",
			slog.String("language", string(lang)),
			slog.String("error", err.Error()))
	}
}

func (s *SettingsStore) notifyFont(font domain.FontFamily) {
	if s.localizer == nil {
		return
	}
	if err := s.localizer.SetFontFamily(font); err != nil && s.logger != nil {
		s.logger.Warn("localizer rejected font change",
			slog.String("font", string(font)),
			slog.String("error", err.Error()))
	}
}
