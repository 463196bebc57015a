package currency

import (
	"familyfinance/internal/core"
)

// Normalizer converts transactions of one snapshot into UAH. It indexes the
// accounts once and never mutates its inputs, so a single Normalizer can be
// shared by concurrent aggregations.
type Normalizer struct {
	accounts map[int64]core.Account
	rates    core.Rates
	onMiss   MissingRateHook
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithMissingRateHook registers h to be told about unconverted amounts.
func WithMissingRateHook(h MissingRateHook) Option {
	return func(n *Normalizer) {
		n.onMiss = h
	}
}

func NewNormalizer(accounts []core.Account, rates core.Rates, opts ...Option) *Normalizer {
	n := &Normalizer{
		accounts: make(map[int64]core.Account, len(accounts)),
		rates:    rates,
	}
	for _, a := range accounts {
		// First record wins, matching a linear lookup.
		if _, dup := n.accounts[a.ID]; dup {
			continue
		}
		n.accounts[a.ID] = a
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Resolve applies the account, transaction, UAH fallback chain.
func (n *Normalizer) Resolve(tx core.Transaction) core.Currency {
	if a, ok := n.accounts[tx.AccountID]; ok {
		if c := core.ParseCurrency(string(a.Currency)); c.IsKnown() {
			return c
		}
	}
	if c := core.ParseCurrency(string(tx.Currency)); c.IsKnown() {
		return c
	}
	return core.UAH
}

// ToReporting converts amount into UAH, notifying the hook on a miss.
func (n *Normalizer) ToReporting(amount float64, from core.Currency) float64 {
	converted, ok := toReporting(amount, from, n.rates)
	if !ok && n.onMiss != nil {
		n.onMiss(core.ParseCurrency(string(from)))
	}
	return converted
}

// Amount returns the UAH value of tx.
func (n *Normalizer) Amount(tx core.Transaction) float64 {
	return n.ToReporting(tx.Amount, n.Resolve(tx))
}
