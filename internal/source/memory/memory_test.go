package memory

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"familyfinance/internal/core"
	"familyfinance/internal/log"
)

func TestNewFromFilesMissingFiles(t *testing.T) {
	s, err := NewFromFiles(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("missing files should not fail, got %v", err)
	}
	snap, err := s.LoadSnapshot(context.Background())
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(snap.Transactions) != 0 || len(snap.Accounts) != 0 || snap.Rates != nil {
		t.Fatalf("expected empty snapshot, got %+v", snap)
	}
}

func TestNewFromFilesParsesAndSkips(t *testing.T) {
	dir := t.TempDir()
	mustWrite := func(name, content string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	mustWrite(AccountsFile, `[
		{"id": 1, "name": "Card", "type": "debit", "currency": "usd", "balance": "1 000"},
		{"id": 2, "name": "Jar", "type": "SAVINGS", "currency": "UAH", "balance": 250.5, "groupId": 4},
		{"id": 3, "name": "Broken", "type": "WALLET", "currency": "UAH", "balance": 1}
	]`)
	mustWrite(CategoriesFile, `[{"id": 10, "name": " Food ", "type": "expense", "icon": "cart"}]`)
	mustWrite(TransactionsFile, `[
		{"id": 1, "accountId": 1, "categoryId": 10, "type": "EXPENSE", "amount": "12,50", "date": "2026-10-01"},
		{"id": 2, "accountId": 1, "accountRecipientId": 2, "type": "TRANSFER", "amount": 100, "date": "2026-10-02T08:30:00Z"},
		{"id": 3, "accountId": 1, "type": "INCOME", "amount": "abc", "currency": "eur", "date": "2026-10-03"},
		{"id": 4, "accountId": 1, "type": "EXPENSE", "amount": 5, "date": "yesterday"},
		{"id": 5, "accountId": 1, "type": "TRANSFER", "amount": 5, "date": "2026-10-03"}
	]`)
	mustWrite(RatesFile, `{"usd": 0.025, "EUR": 0.02, "bad-code": 1}`)

	s, err := NewFromFiles(dir, nil)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	snap, _ := s.LoadSnapshot(context.Background())

	if len(snap.Accounts) != 2 {
		t.Fatalf("expected 2 valid accounts, got %+v", snap.Accounts)
	}
	if snap.Accounts[0].Type != core.Debit || snap.Accounts[0].Currency != core.USD || snap.Accounts[0].Balance != 0 {
		t.Errorf("unexpected first account %+v", snap.Accounts[0])
	}
	if !snap.Accounts[1].IsFamily() || snap.Accounts[1].Balance != 250.5 {
		t.Errorf("unexpected second account %+v", snap.Accounts[1])
	}
	if len(snap.Categories) != 1 || snap.Categories[0].Name != "Food" || snap.Categories[0].Type != core.Expense {
		t.Errorf("unexpected categories %+v", snap.Categories)
	}

	if len(snap.Transactions) != 3 {
		t.Fatalf("expected 3 valid transactions, got %+v", snap.Transactions)
	}
	if snap.Transactions[0].Amount != 12.5 {
		t.Errorf("comma decimal should parse, got %v", snap.Transactions[0].Amount)
	}
	if !snap.Transactions[1].Date.Equal(time.Date(2026, time.October, 2, 8, 30, 0, 0, time.UTC)) {
		t.Errorf("unexpected timestamp %v", snap.Transactions[1].Date)
	}
	if snap.Transactions[2].Amount != 0 || snap.Transactions[2].Currency != core.EUR {
		t.Errorf("malformed amount should coerce to 0, got %+v", snap.Transactions[2])
	}
	if len(snap.Rates) != 2 || snap.Rates[core.USD] != 0.025 {
		t.Errorf("unexpected rates %v", snap.Rates)
	}
}

func TestNewFromFilesSkipsMistypedRecord(t *testing.T) {
	dir := t.TempDir()
	content := `[
		{"id": 1, "accountId": 1, "type": "EXPENSE", "amount": 40, "date": "2026-10-01"},
		{"id": 2, "accountId": "abc", "type": "EXPENSE", "amount": 10, "date": "2026-10-02"},
		"not an object"
	]`
	if err := os.WriteFile(filepath.Join(dir, TransactionsFile), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	logger := log.New(log.Config{Output: &buf, Level: slog.LevelWarn})
	s, err := NewFromFiles(dir, logger)
	if err != nil {
		t.Fatalf("a mistyped record must not fail the load: %v", err)
	}
	snap, _ := s.LoadSnapshot(context.Background())
	if len(snap.Transactions) != 1 || snap.Transactions[0].ID != 1 {
		t.Fatalf("expected only transaction 1, got %+v", snap.Transactions)
	}
	out := buf.String()
	if strings.Count(out, "Skipping invalid record") != 2 {
		t.Errorf("expected two skip warnings, got %q", out)
	}
	if !strings.Contains(out, "record_id=2") {
		t.Errorf("expected the skipped id in the warning, got %q", out)
	}
}

func TestNewFromFilesMalformedJSON(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, AccountsFile), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFromFiles(dir, nil); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestLoadSnapshotReturnsCopies(t *testing.T) {
	s := New(core.Snapshot{
		Accounts: []core.Account{{ID: 1, Type: core.Cash}},
		Rates:    core.Rates{core.USD: 0.025},
	})
	first, _ := s.LoadSnapshot(context.Background())
	first.Accounts[0].ID = 99
	first.Rates[core.USD] = 1

	second, _ := s.LoadSnapshot(context.Background())
	if second.Accounts[0].ID != 1 || second.Rates[core.USD] != 0.025 {
		t.Fatalf("store must not be mutated through returned snapshot")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.LoadSnapshot(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
