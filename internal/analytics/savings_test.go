package analytics

import (
	"testing"
	"time"

	"familyfinance/internal/core"
	"familyfinance/internal/period"
)

func TestSavingsTimeSeries_NetFlow(t *testing.T) {
	txs := []core.Transaction{
		{ID: 1, AccountID: 1, AccountRecipientID: 5, Type: core.Transfer, Amount: 200, Date: day(2026, time.October, 3)},
		{ID: 2, AccountID: 5, Type: core.Expense, Amount: 50, Date: day(2026, time.October, 4)},
	}
	got := SavingsTimeSeries(txs, fixtureAccounts(), period.Month, 1, ref, nil)
	if len(got) != 1 {
		t.Fatalf("expected one point, got %v", got)
	}
	if got[0].Amount != 150 || got[0].Label != "October 2026" {
		t.Fatalf("expected October 2026 net 150, got %+v", got[0])
	}
}

func TestSavingsTimeSeries_PerPeriod(t *testing.T) {
	accounts := append(fixtureAccounts(), core.Account{ID: 6, Type: core.Savings, Currency: core.USD})
	txs := []core.Transaction{
		// August: 100 in
		{ID: 1, AccountID: 1, AccountRecipientID: 5, Type: core.Transfer, Amount: 100, Date: day(2026, time.August, 10)},
		// September: 10 USD into a USD savings account = 400 UAH, 30 out
		{ID: 2, AccountID: 2, AccountRecipientID: 6, Type: core.Transfer, Amount: 10, Date: day(2026, time.September, 1)},
		{ID: 3, AccountID: 5, AccountRecipientID: 1, Type: core.Transfer, Amount: 30, Date: day(2026, time.September, 2)},
		// October: savings to savings is neutral; income landing in savings counts
		{ID: 4, AccountID: 5, AccountRecipientID: 6, Type: core.Transfer, Amount: 70, Date: day(2026, time.October, 1)},
		{ID: 5, AccountID: 1, AccountRecipientID: 5, Type: core.Income, Amount: 12.5, Date: day(2026, time.October, 2)},
		// Not touching savings
		{ID: 6, AccountID: 1, AccountRecipientID: 2, Type: core.Transfer, Amount: 999, Date: day(2026, time.October, 3)},
		// Too old for the window
		{ID: 7, AccountID: 1, AccountRecipientID: 5, Type: core.Transfer, Amount: 5000, Date: day(2026, time.July, 31)},
	}

	got := SavingsTimeSeries(txs, accounts, period.Month, 3, ref, fixtureRates())
	want := []struct {
		label  string
		amount float64
	}{
		{"August 2026", 100},
		{"September 2026", 370},
		{"October 2026", 12.5},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d points, got %v", len(want), got)
	}
	for i, w := range want {
		if got[i].Label != w.label || got[i].Amount != w.amount {
			t.Errorf("point %d = %+v, want %s %v", i, got[i], w.label, w.amount)
		}
	}
}

func TestSavingsTimeSeries_NoSavingsAccounts(t *testing.T) {
	txs := []core.Transaction{
		{ID: 1, AccountID: 1, AccountRecipientID: 2, Type: core.Transfer, Amount: 100, Date: day(2026, time.October, 1)},
	}
	accounts := []core.Account{{ID: 1, Type: core.Cash}, {ID: 2, Type: core.Bank}}
	got := SavingsTimeSeries(txs, accounts, period.Week, 4, ref, nil)
	if len(got) != 4 {
		t.Fatalf("expected 4 weekly points, got %d", len(got))
	}
	for _, p := range got {
		if p.Amount != 0 {
			t.Fatalf("expected zero flow, got %+v", p)
		}
	}
	if len(SavingsTimeSeries(txs, accounts, period.Week, 0, ref, nil)) != 0 {
		t.Fatalf("expected empty series for zero periods")
	}
}
