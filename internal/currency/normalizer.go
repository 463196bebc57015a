// Package currency resolves the effective currency of a transaction and
// converts amounts into the reporting currency.
//
// Rates are expressed as units of a currency per 1 UAH, so converting to
// UAH divides by the rate and converting out of UAH multiplies by it. Every
// conversion fails open: a missing table or a missing/zero rate leaves the
// amount as it is.
package currency

import (
	"familyfinance/internal/core"
)

// MissingRateHook is notified whenever an amount passes through unconverted
// because no usable rate exists for its currency. It may be called from
// several goroutines at once.
type MissingRateHook func(c core.Currency)

// ResolveCurrency returns the effective currency of tx: the owning account's
// currency, then the transaction's own currency, then UAH.
func ResolveCurrency(tx core.Transaction, accounts []core.Account) core.Currency {
	for _, a := range accounts {
		if a.ID != tx.AccountID {
			continue
		}
		if c := core.ParseCurrency(string(a.Currency)); c.IsKnown() {
			return c
		}
		break
	}
	if c := core.ParseCurrency(string(tx.Currency)); c.IsKnown() {
		return c
	}
	return core.UAH
}

// ConvertToReporting converts amount from the given currency into UAH.
func ConvertToReporting(amount float64, from core.Currency, rates core.Rates) float64 {
	converted, _ := toReporting(amount, from, rates)
	return converted
}

// Convert converts between two arbitrary currencies, always routing through
// UAH. When the target rate is unusable the UAH equivalent is returned.
func Convert(amount float64, from, to core.Currency, rates core.Rates) float64 {
	uah := ConvertToReporting(amount, from, rates)
	to = core.ParseCurrency(string(to))
	if to == core.UAH || !to.IsKnown() {
		return uah
	}
	rate, ok := rates.Lookup(to)
	if !ok {
		return uah
	}
	return uah * rate
}

// TotalInReporting sums per-currency balances into one UAH figure, rounded
// to two decimals.
func TotalInReporting(balances map[core.Currency]float64, rates core.Rates) float64 {
	var total float64
	for c, amount := range balances {
		total += ConvertToReporting(amount, c, rates)
	}
	return core.Round2(total)
}

// toReporting reports false when a non-UAH amount could not be converted.
func toReporting(amount float64, from core.Currency, rates core.Rates) (float64, bool) {
	amount = core.SanitizeAmount(amount)
	from = core.ParseCurrency(string(from))
	if from == core.UAH || !from.IsKnown() {
		return amount, true
	}
	if rates == nil {
		return amount, false
	}
	rate, ok := rates.Lookup(from)
	if !ok {
		return amount, false
	}
	return amount / rate, true
}
