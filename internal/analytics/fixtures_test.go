package analytics

import (
	"time"

	"familyfinance/internal/core"
)

var ref = time.Date(2026, time.October, 14, 12, 0, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 0, 0, 0, time.UTC)
}

func fixtureAccounts() []core.Account {
	return []core.Account{
		{ID: 1, Name: "Card", Type: core.Debit, Currency: core.UAH, Balance: 1000},
		{ID: 2, Name: "Dollars", Type: core.Bank, Currency: core.USD, Balance: 100},
		{ID: 5, Name: "Piggy", Type: core.Savings, Currency: core.UAH, Balance: 5000, GroupID: 3},
	}
}

func fixtureCategories() []core.Category {
	return []core.Category{
		{ID: 10, Name: "Food", Type: core.Expense},
		{ID: 11, Name: "Transport", Type: core.Expense},
		{ID: 20, Name: "Salary", Type: core.Income},
		{ID: 30, Name: "Savings", Type: core.Expense},
	}
}

func fixtureRates() core.Rates {
	return core.Rates{core.USD: 0.025, core.EUR: 0.02}
}
