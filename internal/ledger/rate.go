package ledger

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// DefaultRate is the left-currency units per right-currency unit used for a
// fresh state and whenever rate text fails to parse.
const DefaultRate = 5.35

// ParseRate parses rate text, falling back to DefaultRate rather than keeping
// the previous rate. Zero and negative values are accepted as typed.
func ParseRate(text string) float64 {
	v, ok := ParseAmount(text)
	if !ok {
		return DefaultRate
	}
	return v
}

// FormatRate renders a rate in its shortest exact decimal form, e.g. "5.35".
func FormatRate(rate float64) string {
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return strconv.FormatFloat(rate, 'f', -1, 64)
	}
	return decimal.NewFromFloat(rate).String()
}
