// Package calc provides the pure price-total and display-formatting
// functions consumed by the list screens. It holds no state: currency
// symbol and language come from the settings store at call time.
package calc

import (
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/hatkhataapp/hatkhata-server/internal/domain"
)

// roundEpsilon nudges half-cent values upward before rounding. Prices like
// 10.005 sit just below the half in binary floating point, which would
// otherwise round down.
const roundEpsilon = 1e-9

// ItemTotal rounds a price to two decimal places. Rounding happens per item,
// before summation, so totals never accumulate sub-cent drift.
func ItemTotal(price float64) float64 {
	return math.Round(price*100+roundEpsilon) / 100
}

// ListTotal sums the per-item rounded prices of all items, checked or not.
func ListTotal(items []domain.BazaarItem) float64 {
	var sum float64
	for _, item := range items {
		sum += ItemTotal(item.Price)
	}
	return sum
}

// UncheckedTotal sums the per-item rounded prices of unchecked items only.
// This is the remaining-to-buy figure shown while shopping.
func UncheckedTotal(items []domain.BazaarItem) float64 {
	var sum float64
	for _, item := range items {
		if !item.IsChecked {
			sum += ItemTotal(item.Price)
		}
	}
	return sum
}

// groupedPrinter renders grouped decimal numbers ("1,234.56").
var groupedPrinter = message.NewPrinter(language.English)

// FormatCurrency renders "<symbol> <grouped-number>". In Bangla display mode
// every ASCII digit in the final string is transliterated to its Bengali
// numeral; grouping separators and the symbol are left untouched.
func FormatCurrency(amount float64, symbol string, lang domain.Language) string {
	formatted := symbol + " " + groupedPrinter.Sprintf("%v",
		number.Decimal(amount, number.MaxFractionDigits(2)))
	if lang == domain.LanguageBangla {
		return ToBengaliDigits(formatted)
	}
	return formatted
}

// bengaliDigits maps ASCII digit offsets to Bengali numeral glyphs.
var bengaliDigits = [10]rune{'০', '১', '২', '৩', '৪', '৫', '৬', '৭', '৮', '৯'}

// ToBengaliDigits replaces every ASCII digit 0-9 with its Bengali numeral.
// All other characters pass through unchanged.
func ToBengaliDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return bengaliDigits[r-'0']
		}
		return r
	}, s)
}

// ToLocalizedDigits renders the string in the display digits of the given
// language: Bengali numerals for bn, unchanged otherwise.
func ToLocalizedDigits(s string, lang domain.Language) string {
	if lang == domain.LanguageBangla {
		return ToBengaliDigits(s)
	}
	return s
}
