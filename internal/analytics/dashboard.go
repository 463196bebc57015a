package analytics

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"familyfinance/internal/core"
	"familyfinance/internal/currency"
	"familyfinance/internal/period"
)

// DefaultSavingsPeriods is the savings series length used when none is given.
const DefaultSavingsPeriods = 6

// DashboardOptions selects what BuildDashboard computes.
type DashboardOptions struct {
	Period             period.Kind
	Reference          time.Time
	SavingsPeriodsBack int
	TopCategoriesLimit int
}

// Dashboard holds every widget computed from one snapshot.
type Dashboard struct {
	Period    period.Kind
	Reference time.Time

	Comparison       Comparison
	IncomeByCategory []CategoryAmount
	ExpenseShares    []CategoryShare
	TopExpenses      []CategoryAmount
	Savings          []SeriesPoint

	Personal AccountStats
	Family   AccountStats

	// TotalBalance is the balance of every account in UAH.
	TotalBalance float64
}

// BuildDashboard evaluates the widgets of s concurrently. The snapshot is
// only read. The context is checked before each widget starts.
func BuildDashboard(ctx context.Context, s core.Snapshot, opts DashboardOptions, norm ...currency.Option) (Dashboard, error) {
	if !opts.Period.IsValid() {
		opts.Period = period.Month
	}
	if opts.Reference.IsZero() {
		opts.Reference = time.Now()
	}
	opts.Reference = core.RecordDay(opts.Reference)
	if opts.SavingsPeriodsBack <= 0 {
		opts.SavingsPeriodsBack = DefaultSavingsPeriods
	}

	agg := New(s, norm...)
	d := Dashboard{Period: opts.Period, Reference: opts.Reference}

	g, gctx := errgroup.WithContext(ctx)
	widget := func(fn func()) {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fn()
			return nil
		})
	}

	// Each widget writes only its own field.
	widget(func() { d.Comparison = agg.Compare(opts.Period, opts.Reference) })
	widget(func() { d.IncomeByCategory = agg.ByCategory(core.Income) })
	widget(func() { d.ExpenseShares = agg.CategoryShares(core.Expense) })
	widget(func() { d.TopExpenses = agg.TopCategories(core.Expense, opts.Reference, opts.TopCategoriesLimit) })
	widget(func() { d.Savings = agg.SavingsSeries(opts.Period, opts.SavingsPeriodsBack, opts.Reference) })
	widget(func() { d.Personal = AggregateAccountStats(s.Accounts, Personal) })
	widget(func() { d.Family = AggregateAccountStats(s.Accounts, Family) })
	widget(func() { d.TotalBalance = agg.TotalBalance() })

	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}
	return d, nil
}

// TotalBalance converts the balance of every account into UAH. Currencies
// without a rate are added as they are. Native sums are converted in
// currency order and rounded once.
func (a *Aggregator) TotalBalance() float64 {
	native := make(map[core.Currency]float64)
	for _, acc := range a.snap.Accounts {
		if !acc.Type.IsValid() {
			continue
		}
		native[accountCurrency(acc)] += core.SanitizeAmount(acc.Balance)
	}

	currencies := make([]core.Currency, 0, len(native))
	for c := range native {
		currencies = append(currencies, c)
	}
	sort.Slice(currencies, func(i, j int) bool { return currencies[i] < currencies[j] })

	var total float64
	for _, c := range currencies {
		if native[c] == 0 {
			continue
		}
		total += a.norm.ToReporting(native[c], c)
	}
	return core.Round2(total)
}
