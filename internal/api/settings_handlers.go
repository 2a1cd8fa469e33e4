package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/hatkhataapp/hatkhata-server/internal/domain"
)

func (s *Server) registerSettingsRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getSettings",
		Method:      http.MethodGet,
		Path:        "/api/v1/settings",
		Summary:     "Get settings",
		Description: "Returns the current settings",
		Tags:        []string{"Settings"},
	}, s.handleGetSettings)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateSettings",
		Method:      http.MethodPatch,
		Path:        "/api/v1/settings",
		Summary:     "Update settings",
		Description: "Applies any provided settings fields; language and font changes notify the localizer",
		Tags:        []string{"Settings"},
	}, s.handleUpdateSettings)

	huma.Register(s.api, huma.Operation{
		OperationID: "toggleSetting",
		Method:      http.MethodPost,
		Path:        "/api/v1/settings/toggles",
		Summary:     "Toggle a boolean setting",
		Description: "Flips one of the boolean settings by name",
		Tags:        []string{"Settings"},
	}, s.handleToggleSetting)
}

// === DTOs ===

type SettingsOutput struct {
	Body domain.Settings
}

type CurrencyRequest struct {
	Code   string `json:"code" validate:"required,min=3,max=3" doc:"ISO currency code"`
	Symbol string `json:"symbol" validate:"required,min=1,max=5" doc:"Display symbol"`
}

type UpdateSettingsRequest struct {
	ThemeMode  *string          `json:"theme_mode,omitempty" validate:"omitempty,oneof=light dark system" doc:"Theme mode"`
	Language   *string          `json:"language,omitempty" validate:"omitempty,oneof=bn en" doc:"UI language"`
	FontFamily *string          `json:"font_family,omitempty" validate:"omitempty,oneof=HindSiliguri AnekBangla NotoSerifBengali July" doc:"Bengali font family"`
	Currency   *CurrencyRequest `json:"currency,omitempty" doc:"Currency code and symbol"`
}

type UpdateSettingsInput struct {
	Body UpdateSettingsRequest
}

type ToggleSettingRequest struct {
	Name string `json:"name" validate:"required,oneof=show_total_price move_completed_to_bottom haptic_feedback" doc:"Toggle name"`
}

type ToggleSettingInput struct {
	Body ToggleSettingRequest
}

// === Handlers ===

func (s *Server) handleGetSettings(_ context.Context, _ *struct{}) (*SettingsOutput, error) {
	return &SettingsOutput{Body: s.store.Settings.Settings()}, nil
}

func (s *Server) handleUpdateSettings(_ context.Context, input *UpdateSettingsInput) (*SettingsOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	settings := s.store.Settings.Settings()
	if input.Body.ThemeMode != nil {
		settings = s.store.Settings.SetThemeMode(domain.ThemeMode(*input.Body.ThemeMode))
	}
	if input.Body.Language != nil {
		settings = s.store.Settings.SetLanguage(domain.Language(*input.Body.Language))
	}
	if input.Body.FontFamily != nil {
		settings = s.store.Settings.SetFontFamily(domain.FontFamily(*input.Body.FontFamily))
	}
	if input.Body.Currency != nil {
		settings = s.store.Settings.SetCurrency(input.Body.Currency.Code, input.Body.Currency.Symbol)
	}

	return &SettingsOutput{Body: settings}, nil
}

func (s *Server) handleToggleSetting(_ context.Context, input *ToggleSettingInput) (*SettingsOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	var settings domain.Settings
	switch input.Body.Name {
	case "show_total_price":
		settings = s.store.Settings.ToggleShowTotalPrice()
	case "move_completed_to_bottom":
		settings = s.store.Settings.ToggleMoveCompletedToBottom()
	case "haptic_feedback":
		settings = s.store.Settings.ToggleHapticFeedback()
	}

	return &SettingsOutput{Body: settings}, nil
}
