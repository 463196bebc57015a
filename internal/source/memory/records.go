package memory

import (
	"bytes"
	"encoding/json"
	"strings"

	"familyfinance/internal/core"
)

// amount accepts a JSON number, a numeric string or null. Anything else
// decodes as 0.
type amount float64

func (a *amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			*a = 0
			return nil
		}
		*a = amount(core.ParseAmount(s))
		return nil
	}
	*a = amount(core.ParseAmount(string(b)))
	return nil
}

// balance is amount with the sign kept.
type balance float64

func (b *balance) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*b = 0
			return nil
		}
		*b = balance(core.ParseBalance(s))
		return nil
	}
	*b = balance(core.ParseBalance(string(data)))
	return nil
}

type transactionRecord struct {
	ID                 int64  `json:"id"`
	AccountID          int64  `json:"accountId"`
	AccountRecipientID int64  `json:"accountRecipientId"`
	CategoryID         int64  `json:"categoryId"`
	Type               string `json:"type"`
	Amount             amount `json:"amount"`
	Currency           string `json:"currency"`
	Date               string `json:"date"`
	CreatedAt          string `json:"createdAt"`
}

type accountRecord struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Currency string  `json:"currency"`
	Balance  balance `json:"balance"`
	GroupID  int64   `json:"groupId"`
}

type categoryRecord struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Type  string `json:"type"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

func (r transactionRecord) toCore() (core.Transaction, error) {
	tx := core.Transaction{
		ID:                 r.ID,
		AccountID:          r.AccountID,
		AccountRecipientID: r.AccountRecipientID,
		CategoryID:         r.CategoryID,
		Type:               core.TransactionType(strings.ToUpper(strings.TrimSpace(r.Type))),
		Amount:             float64(r.Amount),
		Currency:           core.ParseCurrency(r.Currency),
	}
	date, err := core.ParseDate(r.Date)
	if err != nil {
		return tx, err
	}
	tx.Date = date
	if r.CreatedAt != "" {
		if created, err := core.ParseDate(r.CreatedAt); err == nil {
			tx.CreatedAt = created
		}
	}
	return tx, tx.Validate()
}

func (r accountRecord) toCore() (core.Account, error) {
	a := core.Account{
		ID:       r.ID,
		Name:     r.Name,
		Type:     core.AccountType(strings.ToUpper(strings.TrimSpace(r.Type))),
		Currency: core.ParseCurrency(r.Currency),
		Balance:  float64(r.Balance),
		GroupID:  r.GroupID,
	}
	return a, a.Validate()
}

func (r categoryRecord) toCore() (core.Category, error) {
	c := core.Category{
		ID:    r.ID,
		Name:  strings.TrimSpace(r.Name),
		Type:  core.TransactionType(strings.ToUpper(strings.TrimSpace(r.Type))),
		Icon:  r.Icon,
		Color: r.Color,
	}
	return c, c.Validate()
}
