package analytics

import (
	"math"
	"strings"
	"time"

	"familyfinance/internal/core"
	"familyfinance/internal/period"
)

const (
	Positive Direction = "positive"
	Negative Direction = "negative"
	Neutral  Direction = "neutral"
)

const (
	// HigherIsBetter marks metrics where growth is good news (income).
	HigherIsBetter Polarity = iota
	// LowerIsBetter marks metrics where a decrease is good news (expenses).
	LowerIsBetter
)

type (
	// Direction classifies a change for display.
	Direction string

	// Polarity maps the sign of a delta to a Direction.
	Polarity int

	// PeriodStats holds the UAH totals of one period, rounded to two
	// decimals. SavingsRate is a percentage of income.
	PeriodStats struct {
		Label             string
		Start             time.Time
		End               time.Time
		Income            float64
		Expenses          float64
		NetAmount         float64
		Savings           float64
		SavingsRate       float64
		TransactionsCount int
	}

	// Change is the difference between two values of one metric.
	Change struct {
		Value        float64
		Percent      float64
		Type         Direction
		DisplayValue string
	}

	// Comparison pairs a period with the one before it.
	Comparison struct {
		Current  PeriodStats
		Previous PeriodStats
		Income   Change
		Expenses Change
		Savings  Change
		Net      Change
	}

	periodTotals struct {
		income   float64
		expenses float64
		inflow   float64
		outflow  float64
		count    int
	}
)

func (p periodTotals) savings() float64 {
	return p.inflow - p.outflow
}

func (p periodTotals) net() float64 {
	return p.income - p.expenses
}

// PeriodStats computes the totals of the transactions dated within r.
// Transfers never count as income or expenses.
func (a *Aggregator) PeriodStats(r period.Range) PeriodStats {
	return a.totals(r).stats(r)
}

// Compare evaluates the period of kind k containing ref against the period
// right before it.
func (a *Aggregator) Compare(k period.Kind, ref time.Time) Comparison {
	cur := period.Current(k, core.RecordDay(ref))
	prev := period.Previous(cur)
	ct, pt := a.totals(cur), a.totals(prev)
	return Comparison{
		Current:  ct.stats(cur),
		Previous: pt.stats(prev),
		Income:   ComputeChange(ct.income, pt.income, HigherIsBetter),
		Expenses: ComputeChange(ct.expenses, pt.expenses, LowerIsBetter),
		Savings:  ComputeChange(ct.savings(), pt.savings(), HigherIsBetter),
		Net:      ComputeChange(ct.net(), pt.net(), HigherIsBetter),
	}
}

func (a *Aggregator) totals(r period.Range) periodTotals {
	var t periodTotals
	for _, tx := range a.snap.Transactions {
		if !r.Contains(tx.Date) {
			continue
		}
		t.count++
		amount := a.norm.Amount(tx)

		switch tx.Type {
		case core.Income:
			t.income += amount
		case core.Expense:
			t.expenses += amount
		}

		if (tx.Type == core.Transfer && a.isSavingsAccount(tx.AccountRecipientID)) ||
			strings.EqualFold(a.categoryName(tx.CategoryID), SavingsCategory) {
			t.inflow += amount
		}
		if (tx.Type == core.Expense || tx.Type == core.Transfer) && a.isSavingsAccount(tx.AccountID) {
			t.outflow += amount
		}
	}
	return t
}

func (p periodTotals) stats(r period.Range) PeriodStats {
	var rate float64
	if p.income > 0 {
		rate = core.Round2(p.savings() / p.income * 100)
	}
	return PeriodStats{
		Label:             r.Label,
		Start:             r.Start,
		End:               r.End,
		Income:            core.Round2(p.income),
		Expenses:          core.Round2(p.expenses),
		NetAmount:         core.Round2(p.net()),
		Savings:           core.Round2(p.savings()),
		SavingsRate:       rate,
		TransactionsCount: p.count,
	}
}

// ComputeChange returns current minus previous classified by polarity: for
// HigherIsBetter an increase is Positive, for LowerIsBetter a decrease is.
// Percent is relative to |previous| and 0 when previous is 0.
func ComputeChange(current, previous float64, p Polarity) Change {
	current, previous = core.SanitizeAmount(current), core.SanitizeAmount(previous)
	delta := core.Round2(current - previous)

	c := Change{Value: delta, Type: Neutral, DisplayValue: core.FormatSigned(delta)}
	if delta == 0 {
		c.Value = 0
		return c
	}
	if previous != 0 {
		c.Percent = core.Round1((current - previous) / math.Abs(previous) * 100)
	}
	if (delta > 0) == (p == HigherIsBetter) {
		c.Type = Positive
	} else {
		c.Type = Negative
	}
	return c
}

// ComputePeriodStats computes the totals of one period.
func ComputePeriodStats(txs []core.Transaction, accounts []core.Account, categories []core.Category, r period.Range, rates core.Rates) PeriodStats {
	return New(core.Snapshot{Transactions: txs, Accounts: accounts, Categories: categories, Rates: rates}).PeriodStats(r)
}

// ComparePeriods compares the current period of kind k with the previous
// one.
func ComparePeriods(txs []core.Transaction, accounts []core.Account, categories []core.Category, k period.Kind, ref time.Time, rates core.Rates) Comparison {
	return New(core.Snapshot{Transactions: txs, Accounts: accounts, Categories: categories, Rates: rates}).Compare(k, ref)
}
