package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"familyfinance/internal/core"
	"familyfinance/internal/log"
)

// Seed file names inside a data directory.
const (
	TransactionsFile = "transactions.json"
	AccountsFile     = "accounts.json"
	CategoriesFile   = "categories.json"
	RatesFile        = "rates.json"
)

// Store serves a fixed snapshot held in memory.
type Store struct {
	snap core.Snapshot
}

func New(s core.Snapshot) *Store {
	return &Store{snap: s}
}

// NewFromFiles reads the seed files found in base. A missing file yields
// an empty collection (a missing rates file yields no rate table); a record
// that fails to decode or validate is logged and skipped.
func NewFromFiles(base string, logger *log.Logger) (*Store, error) {
	if logger == nil {
		logger = log.Discard()
	}
	logger = logger.WithComponent(log.ComponentSource)

	var (
		txRaw, accRaw, catRaw []json.RawMessage
		rawRate               map[string]float64
	)
	if err := readJSON(filepath.Join(base, TransactionsFile), &txRaw); err != nil {
		return nil, err
	}
	if err := readJSON(filepath.Join(base, AccountsFile), &accRaw); err != nil {
		return nil, err
	}
	if err := readJSON(filepath.Join(base, CategoriesFile), &catRaw); err != nil {
		return nil, err
	}
	if err := readJSON(filepath.Join(base, RatesFile), &rawRate); err != nil {
		return nil, err
	}

	var snap core.Snapshot
	snap.Accounts = decodeRecords[core.Account, accountRecord](logger, AccountsFile, accRaw)
	snap.Categories = decodeRecords[core.Category, categoryRecord](logger, CategoriesFile, catRaw)
	snap.Transactions = decodeRecords[core.Transaction, transactionRecord](logger, TransactionsFile, txRaw)
	snap.Rates = core.ParseRates(rawRate)

	logger.Info("Loaded seed snapshot",
		log.FieldPath, base,
		"transactions", len(snap.Transactions),
		"accounts", len(snap.Accounts),
		"categories", len(snap.Categories),
		"rates", len(snap.Rates))

	return New(snap), nil
}

// LoadSnapshot implements source.SnapshotReader. The returned slices are
// copies.
func (s *Store) LoadSnapshot(ctx context.Context) (core.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return core.Snapshot{}, err
	}
	out := core.Snapshot{
		Transactions: append([]core.Transaction(nil), s.snap.Transactions...),
		Accounts:     append([]core.Account(nil), s.snap.Accounts...),
		Categories:   append([]core.Category(nil), s.snap.Categories...),
	}
	if s.snap.Rates != nil {
		out.Rates = make(core.Rates, len(s.snap.Rates))
		for c, r := range s.snap.Rates {
			out.Rates[c] = r
		}
	}
	return out, nil
}

type record[T any] interface {
	toCore() (T, error)
}

// decodeRecords decodes each element on its own so one malformed element
// only costs itself.
func decodeRecords[T any, R record[T]](logger *log.Logger, file string, raw []json.RawMessage) []T {
	var out []T
	for i, msg := range raw {
		var r R
		if err := json.Unmarshal(msg, &r); err != nil {
			logger.Warn("Skipping invalid record", log.NewFields().
				WithSkippedRecord(file, recordID(msg), fmt.Errorf("element %d: %w", i, err)).
				ToSlice()...)
			continue
		}
		v, err := r.toCore()
		if err != nil {
			logger.Warn("Skipping invalid record", log.NewFields().
				WithSkippedRecord(file, recordID(msg), err).
				ToSlice()...)
			continue
		}
		out = append(out, v)
	}
	return out
}

// recordID extracts the id of a raw record, 0 when there is none.
func recordID(msg json.RawMessage) int64 {
	var head struct {
		ID int64 `json:"id"`
	}
	_ = json.Unmarshal(msg, &head)
	return head.ID
}

func readJSON(path string, dst any) error {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return nil
}
