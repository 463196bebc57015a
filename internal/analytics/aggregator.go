// Package analytics derives UAH-normalized metrics from a snapshot of
// transactions, accounts, categories and exchange rates.
//
// Every function is pure: inputs are never mutated, results are freshly
// allocated, and malformed records degrade to zero or sentinel labels
// instead of failing the pass. Sums run at full precision; only returned
// figures are rounded.
//
// Reference times are read by their wall clock in the zone record dates use
// (core.RecordDay), so a period follows the calendar date on each record
// whatever zone the caller's clock runs in.
package analytics

import (
	"strings"

	"familyfinance/internal/core"
	"familyfinance/internal/currency"
)

// OtherCategory labels transactions without a known category.
const OtherCategory = "Other"

// SavingsCategory is the category name that counts as a savings inflow.
const SavingsCategory = "Savings"

// Aggregator evaluates metrics over one snapshot. It is safe for concurrent
// use.
type Aggregator struct {
	snap       core.Snapshot
	norm       *currency.Normalizer
	categories map[int64]core.Category
	savings    map[int64]struct{}
}

// New indexes a snapshot. Options are passed through to the currency
// normalizer.
func New(s core.Snapshot, opts ...currency.Option) *Aggregator {
	a := &Aggregator{
		snap:       s,
		norm:       currency.NewNormalizer(s.Accounts, s.Rates, opts...),
		categories: make(map[int64]core.Category, len(s.Categories)),
		savings:    savingsAccountIDs(s.Accounts),
	}
	for _, c := range s.Categories {
		if _, dup := a.categories[c.ID]; dup {
			continue
		}
		a.categories[c.ID] = c
	}
	return a
}

// categoryName resolves a category id, falling back to OtherCategory.
func (a *Aggregator) categoryName(id int64) string {
	c, ok := a.categories[id]
	if !ok {
		return OtherCategory
	}
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return OtherCategory
	}
	return name
}

func (a *Aggregator) isSavingsAccount(id int64) bool {
	if id == 0 {
		return false
	}
	_, ok := a.savings[id]
	return ok
}

func savingsAccountIDs(accounts []core.Account) map[int64]struct{} {
	ids := make(map[int64]struct{})
	for _, acc := range accounts {
		if acc.Type == core.Savings {
			ids[acc.ID] = struct{}{}
		}
	}
	return ids
}
