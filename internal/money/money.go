// Package money formats amounts for display.
package money

import (
	"math"

	"github.com/dustin/go-humanize"
)

// Formatter renders an amount in the store's currency.
type Formatter func(amount float64) string

// copPattern groups thousands with dots and drops decimals.
const copPattern = "#.###,"

// COP renders Colombian pesos: "$30.000", "$1.250.500", "-$2.000".
func COP(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}
	if amount < 0 {
		return "-$" + humanize.FormatFloat(copPattern, -amount)
	}
	return "$" + humanize.FormatFloat(copPattern, amount)
}
