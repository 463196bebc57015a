// Package core provides the finance data model and money helpers.
//
// Amounts are carried as float64 at full precision through every sum and
// rounded once, at the presentation boundary, through shopspring/decimal.
package core

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a raw amount string to a non-negative float.
//
// Both dot (12.34) and comma (12,34) decimal separators are accepted.
// Anything unparsable yields 0 so a malformed record never poisons a sum.
// Negative input is reduced to its magnitude because the sign of an amount
// is carried by the transaction type.
//
// Examples:
//
//	ParseAmount("12.34") -> 12.34
//	ParseAmount("12,5")  -> 12.5
//	ParseAmount("abc")   -> 0
func ParseAmount(s string) float64 {
	return math.Abs(ParseBalance(s))
}

// ParseBalance is ParseAmount without the magnitude step. Account balances
// may legitimately be negative.
func ParseBalance(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	return SanitizeAmount(d.InexactFloat64())
}

// SanitizeAmount maps NaN and infinities to 0.
func SanitizeAmount(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// Round2 rounds to two decimal places, half away from zero.
func Round2(f float64) float64 {
	return roundPlaces(f, 2)
}

// Round1 rounds to one decimal place, used for percentages.
func Round1(f float64) float64 {
	return roundPlaces(f, 1)
}

func roundPlaces(f float64, places int32) float64 {
	f = SanitizeAmount(f)
	return decimal.NewFromFloat(f).Round(places).InexactFloat64()
}

// FormatSigned renders f with two decimals and an explicit sign:
// "+20.00", "-20.00", or "0.00" when it rounds to zero.
func FormatSigned(f float64) string {
	d := decimal.NewFromFloat(SanitizeAmount(f)).Round(2)
	switch d.Sign() {
	case 0:
		return "0.00"
	case 1:
		return "+" + d.StringFixed(2)
	default:
		return d.StringFixed(2)
	}
}
