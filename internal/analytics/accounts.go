package analytics

import (
	"strings"

	"familyfinance/internal/core"
)

const (
	Personal Scope = "personal"
	Family   Scope = "family"
)

type (
	// Scope selects accounts by ownership.
	Scope string

	TypeStats struct {
		Count   int
		Balance float64
	}

	// AccountStats summarizes the accounts of one scope. Balances stay in
	// their own currency; TotalBalanceByCurrency is never summed across
	// currencies.
	AccountStats struct {
		Scope                  Scope
		TotalCount             int
		TotalBalanceByCurrency map[core.Currency]float64
		Accounts               []core.Account
		ByType                 map[core.AccountType]TypeStats
	}
)

// ParseScope parses a scope name. Unknown names yield Personal and false.
func ParseScope(s string) (Scope, bool) {
	switch sc := Scope(strings.ToLower(strings.TrimSpace(s))); sc {
	case Personal, Family:
		return sc, true
	default:
		return Personal, false
	}
}

func (s Scope) includes(a core.Account) bool {
	switch s {
	case Personal:
		return !a.IsFamily()
	case Family:
		return a.IsFamily()
	default:
		return true
	}
}

// AggregateAccountStats groups the accounts of a scope by type and currency.
// Every known account type and the UAH, EUR and USD totals are always
// present, zero when empty, and no other type ever appears: an account of an
// unknown type is left out entirely. An unrecognized scope selects every
// account.
func AggregateAccountStats(accounts []core.Account, scope Scope) AccountStats {
	stats := AccountStats{
		Scope: scope,
		TotalBalanceByCurrency: map[core.Currency]float64{
			core.UAH: 0,
			core.EUR: 0,
			core.USD: 0,
		},
		Accounts: make([]core.Account, 0),
		ByType:   make(map[core.AccountType]TypeStats, len(core.AllAccountTypes())),
	}
	for _, t := range core.AllAccountTypes() {
		stats.ByType[t] = TypeStats{}
	}

	for _, a := range accounts {
		if !scope.includes(a) || !a.Type.IsValid() {
			continue
		}
		balance := core.SanitizeAmount(a.Balance)
		c := accountCurrency(a)

		stats.TotalCount++
		stats.Accounts = append(stats.Accounts, a)
		stats.TotalBalanceByCurrency[c] += balance

		ts := stats.ByType[a.Type]
		ts.Count++
		ts.Balance += balance
		stats.ByType[a.Type] = ts
	}

	for c, v := range stats.TotalBalanceByCurrency {
		stats.TotalBalanceByCurrency[c] = core.Round2(v)
	}
	for t, ts := range stats.ByType {
		ts.Balance = core.Round2(ts.Balance)
		stats.ByType[t] = ts
	}
	return stats
}

// accountCurrency counts an account without a usable currency as UAH.
func accountCurrency(a core.Account) core.Currency {
	if c := core.ParseCurrency(string(a.Currency)); c.IsKnown() {
		return c
	}
	return core.UAH
}
