package ledger

import (
	"errors"
	"strconv"
	"strings"
)

// ParseAmount parses entry text as a float64. It accepts decimal literals
// with optional sign and exponent as well as inf, infinity and nan. Hex
// floats, digit separators and surrounding whitespace are rejected. Values
// beyond the float64 range parse to ±Inf.
func ParseAmount(text string) (float64, bool) {
	if text == "" || strings.ContainsAny(text, "_xX") {
		return 0, false
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return v, true
		}
		return 0, false
	}
	return v, true
}

// FormatAmount renders v with two decimals. Rounding is correct on the exact
// binary value, with exact ties going to even: 0.125 renders as "0.12" and
// 2.675 (stored as 2.67499...) as "2.67". NaN and infinities render as
// "NaN", "+Inf" and "-Inf".
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
