package core

import (
	"errors"
	"math"
	"time"
)

const (
	Income   TransactionType = "INCOME"
	Expense  TransactionType = "EXPENSE"
	Transfer TransactionType = "TRANSFER"
)

const (
	Debit      AccountType = "DEBIT"
	Credit     AccountType = "CREDIT"
	Cash       AccountType = "CASH"
	Bank       AccountType = "BANK"
	Investment AccountType = "INVESTMENT"
	Deposit    AccountType = "DEPOSIT"
	Digital    AccountType = "DIGITAL"
	Savings    AccountType = "SAVINGS"
)

type (
	TransactionType string

	AccountType string

	// Transaction is a read-only record produced by the backend. Amount is a
	// non-negative magnitude; its sign is implied by Type.
	Transaction struct {
		ID                 int64
		AccountID          int64
		AccountRecipientID int64 // Destination account, transfers only; zero when absent
		CategoryID         int64 // Zero when uncategorized
		Type               TransactionType
		Amount             float64
		Currency           Currency // May be unknown; see currency.ResolveCurrency
		Date               time.Time
		CreatedAt          time.Time
	}

	Account struct {
		ID       int64
		Name     string
		Type     AccountType
		Currency Currency
		Balance  float64
		GroupID  int64 // Non-zero for family (shared) accounts
	}

	Category struct {
		ID    int64
		Name  string
		Type  TransactionType
		Icon  string
		Color string
	}

	// Snapshot bundles every input of one aggregation pass.
	Snapshot struct {
		Transactions []Transaction
		Accounts     []Account
		Categories   []Category
		Rates        Rates
	}
)

var (
	ErrInvalidAmount          = errors.New("invalid amount")
	ErrUnknownTransactionType = errors.New("unknown transaction type")
	ErrUnknownAccountType     = errors.New("unknown account type")
	ErrMissingDate            = errors.New("missing transaction date")
	ErrInvalidDate            = errors.New("invalid date")
	ErrMissingRecipient       = errors.New("transfer without recipient account")
)

// AllAccountTypes returns every account type in a stable order.
func AllAccountTypes() []AccountType {
	return []AccountType{Debit, Credit, Cash, Bank, Investment, Deposit, Digital, Savings}
}

func (t TransactionType) IsValid() bool {
	switch t {
	case Income, Expense, Transfer:
		return true
	default:
		return false
	}
}

func (t AccountType) IsValid() bool {
	for _, known := range AllAccountTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// IsFamily reports whether the account belongs to a shared group.
func (a Account) IsFamily() bool {
	return a.GroupID != 0
}

func (a Account) Validate() error {
	if !a.Type.IsValid() {
		return ErrUnknownAccountType
	}
	if math.IsNaN(a.Balance) || math.IsInf(a.Balance, 0) {
		return ErrInvalidAmount
	}
	return nil
}

func (t Transaction) Validate() error {
	if !t.Type.IsValid() {
		return ErrUnknownTransactionType
	}
	if t.Amount < 0 || math.IsNaN(t.Amount) || math.IsInf(t.Amount, 0) {
		return ErrInvalidAmount
	}
	if t.Date.IsZero() {
		return ErrMissingDate
	}
	if t.Type == Transfer && t.AccountRecipientID == 0 {
		return ErrMissingRecipient
	}
	return nil
}

func (c Category) Validate() error {
	if !c.Type.IsValid() {
		return ErrUnknownTransactionType
	}
	return nil
}
