package models

import (
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// FormatMoney renders an amount as dollars with thousands separators, e.g. $142,500.95
func FormatMoney(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + humanize.CommafWithDigits(d.Neg().Round(2).InexactFloat64(), 2)
	}
	return "$" + humanize.CommafWithDigits(d.Round(2).InexactFloat64(), 2)
}
