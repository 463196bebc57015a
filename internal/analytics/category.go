package analytics

import (
	"sort"
	"time"

	"familyfinance/internal/core"
	"familyfinance/internal/period"
)

// DefaultTopCategories is the size of the top-N widget.
const DefaultTopCategories = 5

type (
	// CategoryAmount is the UAH total of one category.
	CategoryAmount struct {
		Name   string
		Amount float64
	}

	// CategoryShare is a category's percentage of the type total, one
	// decimal of precision.
	CategoryShare struct {
		Name string
		Rate float64
	}
)

// ByCategory groups transactions of the given type by category name and
// returns UAH totals sorted from largest to smallest.
func (a *Aggregator) ByCategory(typ core.TransactionType) []CategoryAmount {
	sums := a.sumByCategory(typ, nil)
	for i := range sums {
		sums[i].Amount = core.Round2(sums[i].Amount)
	}
	return sums
}

// CategoryShares is ByCategory expressed as percentages of the total. An
// empty selection returns an empty slice.
func (a *Aggregator) CategoryShares(typ core.TransactionType) []CategoryShare {
	sums := a.sumByCategory(typ, nil)
	shares := make([]CategoryShare, 0, len(sums))
	if len(sums) == 0 {
		return shares
	}
	var total float64
	for _, s := range sums {
		total += s.Amount
	}
	for _, s := range sums {
		var rate float64
		if total > 0 {
			rate = core.Round1(s.Amount / total * 100)
		}
		shares = append(shares, CategoryShare{Name: s.Name, Rate: rate})
	}
	return shares
}

// TopCategories returns at most limit categories of the month containing
// ref, by unrounded UAH amount. A non-positive limit means
// DefaultTopCategories.
func (a *Aggregator) TopCategories(typ core.TransactionType, ref time.Time, limit int) []CategoryAmount {
	if limit <= 0 {
		limit = DefaultTopCategories
	}
	month := period.Current(period.Month, core.RecordDay(ref))
	sums := a.sumByCategory(typ, func(tx core.Transaction) bool {
		return month.Contains(tx.Date)
	})
	if len(sums) > limit {
		sums = sums[:limit]
	}
	return sums
}

// sumByCategory returns unrounded sums sorted descending, ties by name.
func (a *Aggregator) sumByCategory(typ core.TransactionType, keep func(core.Transaction) bool) []CategoryAmount {
	totals := make(map[string]float64)
	for _, tx := range a.snap.Transactions {
		if tx.Type != typ {
			continue
		}
		if keep != nil && !keep(tx) {
			continue
		}
		totals[a.categoryName(tx.CategoryID)] += a.norm.Amount(tx)
	}

	out := make([]CategoryAmount, 0, len(totals))
	for name, amount := range totals {
		out = append(out, CategoryAmount{Name: name, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// AggregateByCategory groups transactions of the given type by category.
func AggregateByCategory(txs []core.Transaction, categories []core.Category, accounts []core.Account, rates core.Rates, typ core.TransactionType) []CategoryAmount {
	return New(core.Snapshot{Transactions: txs, Accounts: accounts, Categories: categories, Rates: rates}).ByCategory(typ)
}

// AggregateCategoryShares is AggregateByCategory as percentages.
func AggregateCategoryShares(txs []core.Transaction, categories []core.Category, accounts []core.Account, rates core.Rates, typ core.TransactionType) []CategoryShare {
	return New(core.Snapshot{Transactions: txs, Accounts: accounts, Categories: categories, Rates: rates}).CategoryShares(typ)
}
