package pricing

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Non-breaking space keeps the amount and the currency marker on one line,
// matching the storefront's rendering.
const nbsp = "\u00a0"

var (
	viPrinter = message.NewPrinter(language.Vietnamese)
	enPrinter = message.NewPrinter(language.AmericanEnglish)
)

// FormatVND renders a đồng amount with vi-VN grouping and the "₫" suffix.
// Đồng has no subunit, so the amount is rounded to a whole number.
func FormatVND(amount decimal.Decimal) string {
	return viPrinter.Sprintf("%d", amount.Round(0).IntPart()) + nbsp + "₫"
}

// FormatUSD renders a dollar amount with en-US grouping and two fixed decimals.
func FormatUSD(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	units := rounded.IntPart()
	cents := rounded.Sub(decimal.NewFromInt(units)).Abs().Mul(decimal.NewFromInt(100)).IntPart()

	return enPrinter.Sprintf("$%d.%02d", units, cents)
}
