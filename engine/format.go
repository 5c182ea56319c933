package engine

import (
	"math"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Placeholder is shown for missing or non-finite values.
const Placeholder = "-"

var printer = message.NewPrinter(language.English)

func finite(value *float64) bool {
	return value != nil && !math.IsNaN(*value) && !math.IsInf(*value, 0)
}

// FormatNumber renders value with thousands separators and a fixed number of
// decimals, rounding the shortest decimal form of value half away from zero.
func FormatNumber(value *float64, decimals int) string {
	if !finite(value) {
		return Placeholder
	}
	if decimals < 0 {
		decimals = 0
	}
	rounded := decimal.NewFromFloat(*value).Round(int32(decimals))
	return printer.Sprintf("%v", number.Decimal(rounded.InexactFloat64(), number.Scale(decimals)))
}

// FormatPercent renders a ratio as a percentage, e.g. 0.123 -> "12.3%".
func FormatPercent(value *float64, decimals int) string {
	if !finite(value) {
		return Placeholder
	}
	if decimals < 0 {
		decimals = 0
	}
	return decimal.NewFromFloat(*value).Mul(decimal.NewFromInt(100)).StringFixed(int32(decimals)) + "%"
}

// FormatNumberDefault formats with two decimals.
func FormatNumberDefault(value *float64) string {
	return FormatNumber(value, 2)
}

// FormatPercentDefault formats with one decimal.
func FormatPercentDefault(value *float64) string {
	return FormatPercent(value, 1)
}

// Float is a convenience for formatting non-nullable values.
func Float(v float64) *float64 {
	return &v
}
