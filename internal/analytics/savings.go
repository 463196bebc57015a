package analytics

import (
	"time"

	"familyfinance/internal/core"
	"familyfinance/internal/period"
)

// SeriesPoint is the net savings flow within one period. It is not a
// balance: each point stands alone.
type SeriesPoint struct {
	Label  string
	Start  time.Time
	End    time.Time
	Amount float64
}

// SavingsSeries returns, oldest first, the net flow into savings accounts
// for the last periodsBack periods of kind k up to the one containing ref.
// Any transaction whose recipient is a savings account is an inflow; any
// transaction drawn from a savings account is an outflow, whatever its type.
func (a *Aggregator) SavingsSeries(k period.Kind, periodsBack int, ref time.Time) []SeriesPoint {
	ranges := period.Series(k, periodsBack, core.RecordDay(ref))
	points := make([]SeriesPoint, 0, len(ranges))
	for _, r := range ranges {
		var inflow, outflow float64
		for _, tx := range a.snap.Transactions {
			if !r.Contains(tx.Date) {
				continue
			}
			in, out := a.isSavingsAccount(tx.AccountRecipientID), a.isSavingsAccount(tx.AccountID)
			if !in && !out {
				continue
			}
			amount := a.norm.Amount(tx)
			if in {
				inflow += amount
			}
			if out {
				outflow += amount
			}
		}
		points = append(points, SeriesPoint{
			Label:  r.Label,
			Start:  r.Start,
			End:    r.End,
			Amount: core.Round2(inflow - outflow),
		})
	}
	return points
}

// SavingsTimeSeries computes the savings flow per period.
func SavingsTimeSeries(txs []core.Transaction, accounts []core.Account, k period.Kind, periodsBack int, ref time.Time, rates core.Rates) []SeriesPoint {
	return New(core.Snapshot{Transactions: txs, Accounts: accounts, Rates: rates}).SavingsSeries(k, periodsBack, ref)
}
