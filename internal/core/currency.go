package core

import (
	"math"
	"strings"
)

const (
	UAH Currency = "UAH"
	USD Currency = "USD"
	EUR Currency = "EUR"

	// CurrencyUnknown marks an absent or malformed code.
	CurrencyUnknown Currency = ""
)

// ReportingCurrency is the currency every aggregate is expressed in.
const ReportingCurrency = UAH

// Currency is an upper-cased three letter code.
type Currency string

// Rates maps a currency to its units per 1 UAH. Converting to UAH divides
// by the rate.
type Rates map[Currency]float64

// ParseCurrency normalizes s to an upper-cased code. Anything that is not
// three ASCII letters yields CurrencyUnknown.
func ParseCurrency(s string) Currency {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) != 3 {
		return CurrencyUnknown
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return CurrencyUnknown
		}
	}
	return Currency(s)
}

func (c Currency) IsKnown() bool {
	return c != CurrencyUnknown
}

func (c Currency) String() string {
	return string(c)
}

// ParseRates builds a rate table from raw codes. Keys that are not valid
// codes are dropped; values are kept as given so Lookup can reject them.
func ParseRates(raw map[string]float64) Rates {
	if raw == nil {
		return nil
	}
	rates := make(Rates, len(raw))
	for code, rate := range raw {
		c := ParseCurrency(code)
		if !c.IsKnown() {
			continue
		}
		rates[c] = rate
	}
	return rates
}

// Lookup returns a usable rate for c. UAH is always 1. Missing, zero,
// negative or non-finite entries report false.
func (r Rates) Lookup(c Currency) (float64, bool) {
	if c == UAH {
		return 1, true
	}
	rate, ok := r[c]
	if !ok || rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return 0, false
	}
	return rate, true
}
