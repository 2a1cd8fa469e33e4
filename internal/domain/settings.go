package domain

// ThemeMode selects the color scheme.
type ThemeMode string

// Theme modes.
const (
	ThemeLight  ThemeMode = "light"
	ThemeDark   ThemeMode = "dark"
	ThemeSystem ThemeMode = "system"
)

// Language is the display language code.
type Language string

// Supported display languages.
const (
	LanguageBangla  Language = "bn"
	LanguageEnglish Language = "en"
)

// FontFamily names a bundled display font.
type FontFamily string

// Bundled fonts.
const (
	FontHindSiliguri     FontFamily = "HindSiliguri"
	FontAnekBangla       FontFamily = "AnekBangla"
	FontNotoSerifBengali FontFamily = "NotoSerifBengali"
	FontJuly             FontFamily = "July"
)

// Settings holds display, locale, currency and behavior preferences.
// Persisted independently from the user profile; CurrencySymbol is
// display-only state consumed by the calc package.
type Settings struct {
	ThemeMode             ThemeMode  `json:"theme_mode"`
	Language              Language   `json:"language"`
	FontFamily            FontFamily `json:"font_family"`
	Currency              string     `json:"currency"`
	CurrencySymbol        string     `json:"currency_symbol"`
	ShowTotalPrice        bool       `json:"show_total_price"`
	MoveCompletedToBottom bool       `json:"move_completed_to_bottom"`
	HapticFeedback        bool       `json:"haptic_feedback"`
}

// DefaultSettings returns the first-run preferences: light theme, Bangla,
// Hind Siliguri, Bangladeshi Taka.
func DefaultSettings() Settings {
	return Settings{
		ThemeMode:             ThemeLight,
		Language:              LanguageBangla,
		FontFamily:            FontHindSiliguri,
		Currency:              "BDT",
		CurrencySymbol:        "৳",
		ShowTotalPrice:        true,
		MoveCompletedToBottom: true,
		HapticFeedback:        false,
	}
}
