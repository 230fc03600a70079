package extract

import (
	"math/big"
	"strings"
	"unicode"
)

var scales = map[string]int64{
	"":         1,
	"thousand": 1_000,
	"million":  1_000_000,
	"billion":  1_000_000_000,
}

// Normalize converts a captured numeral and an optional scale word into a whole
// speaker count. Commas and whitespace are thousands separators. Periods are
// thousands separators only when more than one appears; a single period is a
// decimal point. The scaled value is floored.
//
// It reports false when the numeral does not parse, the scale word is unknown,
// or the result does not fit in an int64.
func Normalize(number, scale string) (int64, bool) {
	mult, ok := scales[strings.ToLower(strings.TrimSpace(scale))]
	if !ok {
		return 0, false
	}

	cleaned := strings.Map(func(r rune) rune {
		if r == ',' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, number)
	if strings.Count(cleaned, ".") > 1 {
		cleaned = strings.ReplaceAll(cleaned, ".", "")
	}
	if !isDecimal(cleaned) {
		return 0, false
	}

	// big.Rat keeps "1.2" exact so 1.2 billion is exactly 1200000000.
	v, ok := new(big.Rat).SetString(cleaned)
	if !ok {
		return 0, false
	}
	v.Mul(v, new(big.Rat).SetInt64(mult))

	n := new(big.Int).Quo(v.Num(), v.Denom())
	if !n.IsInt64() {
		return 0, false
	}
	return n.Int64(), true
}

// isDecimal accepts digits with at most one decimal point and at least one digit.
func isDecimal(s string) bool {
	digits, points := 0, 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.':
			points++
		default:
			return false
		}
	}
	return digits > 0 && points <= 1
}
