package analytics

import (
	"context"
	"errors"
	"sync"
	"testing"

	"familyfinance/internal/core"
	"familyfinance/internal/currency"
	"familyfinance/internal/period"
)

func dashboardSnapshot() core.Snapshot {
	return core.Snapshot{
		Transactions: comparisonFixture(),
		Accounts:     fixtureAccounts(),
		Categories:   fixtureCategories(),
		Rates:        fixtureRates(),
	}
}

func TestBuildDashboard(t *testing.T) {
	d, err := BuildDashboard(context.Background(), dashboardSnapshot(), DashboardOptions{
		Period:             period.Month,
		Reference:          ref,
		SavingsPeriodsBack: 3,
		TopCategoriesLimit: 2,
	})
	if err != nil {
		t.Fatalf("BuildDashboard: %v", err)
	}

	if d.Comparison.Current.Income != 9000 || d.Comparison.Previous.Income != 8000 {
		t.Errorf("unexpected comparison: %+v", d.Comparison)
	}
	if len(d.Savings) != 3 || d.Savings[2].Label != "October 2026" {
		t.Errorf("unexpected savings series: %+v", d.Savings)
	}
	if len(d.TopExpenses) != 2 {
		t.Errorf("expected 2 top expenses, got %+v", d.TopExpenses)
	}
	if len(d.IncomeByCategory) != 1 || d.IncomeByCategory[0].Name != "Salary" {
		t.Errorf("unexpected income categories: %+v", d.IncomeByCategory)
	}
	if len(d.ExpenseShares) == 0 {
		t.Errorf("expected expense shares")
	}
	if d.Personal.TotalCount != 2 || d.Family.TotalCount != 1 {
		t.Errorf("personal=%d family=%d, want 2 and 1", d.Personal.TotalCount, d.Family.TotalCount)
	}
	if d.TotalBalance != 10000 {
		t.Errorf("TotalBalance = %v, want 10000", d.TotalBalance)
	}
}

func TestBuildDashboardDefaults(t *testing.T) {
	d, err := BuildDashboard(context.Background(), core.Snapshot{}, DashboardOptions{Period: "decade", Reference: ref})
	if err != nil {
		t.Fatalf("BuildDashboard: %v", err)
	}
	if d.Period != period.Month {
		t.Errorf("Period = %q, want month", d.Period)
	}
	if len(d.Savings) != DefaultSavingsPeriods {
		t.Errorf("expected %d savings points, got %d", DefaultSavingsPeriods, len(d.Savings))
	}
	if d.TotalBalance != 0 {
		t.Errorf("TotalBalance = %v, want 0", d.TotalBalance)
	}
}

func TestBuildDashboardReportsMissingRates(t *testing.T) {
	snap := dashboardSnapshot()
	snap.Accounts = append(snap.Accounts, core.Account{ID: 9, Type: core.Cash, Currency: "GBP", Balance: 10})

	var (
		mu     sync.Mutex
		missed = map[core.Currency]int{}
	)
	hook := currency.WithMissingRateHook(func(c core.Currency) {
		mu.Lock()
		defer mu.Unlock()
		missed[c]++
	})

	d, err := BuildDashboard(context.Background(), snap, DashboardOptions{Reference: ref}, hook)
	if err != nil {
		t.Fatalf("BuildDashboard: %v", err)
	}
	if d.TotalBalance != 10010 {
		t.Errorf("TotalBalance = %v, want 10010", d.TotalBalance)
	}
	if missed["GBP"] == 0 {
		t.Errorf("expected a missing rate notification for GBP, got %v", missed)
	}
}

func TestBuildDashboardCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := BuildDashboard(ctx, dashboardSnapshot(), DashboardOptions{Reference: ref})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestTotalBalanceRoundsOnce(t *testing.T) {
	snap := core.Snapshot{
		Accounts: []core.Account{
			{ID: 1, Type: core.Cash, Currency: core.USD, Balance: 0.004},
			{ID: 2, Type: core.Bank, Currency: core.USD, Balance: 0.004},
			{ID: 3, Type: "WALLET", Currency: core.UAH, Balance: 1000},
		},
		Rates: fixtureRates(),
	}
	// 0.008 USD is 0.32 UAH; rounding the USD total first would give 0.40.
	if got := New(snap).TotalBalance(); got != 0.32 {
		t.Fatalf("TotalBalance() = %v, want 0.32", got)
	}
}
