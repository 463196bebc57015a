package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"familyfinance/internal/core"
	"familyfinance/internal/log"

	_ "modernc.org/sqlite"
)

// SQLiteRepository reads snapshots from a SQLite file. It never writes
// domain data.
type SQLiteRepository struct {
	db     *sql.DB
	logger *log.Logger
}

func NewSQLiteRepository(dbPath string, logger *log.Logger) (*SQLiteRepository, error) {
	if logger == nil {
		logger = log.Discard()
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	logger = logger.WithComponent(log.ComponentStorage)
	if err := RunMigrations(dbPath, logger); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db, logger: logger}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// LoadSnapshot implements source.SnapshotReader. Rows that fail validation
// are logged and skipped.
func (r *SQLiteRepository) LoadSnapshot(ctx context.Context) (core.Snapshot, error) {
	var (
		snap core.Snapshot
		err  error
	)
	if snap.Accounts, err = r.loadAccounts(ctx); err != nil {
		return core.Snapshot{}, err
	}
	if snap.Categories, err = r.loadCategories(ctx); err != nil {
		return core.Snapshot{}, err
	}
	if snap.Transactions, err = r.loadTransactions(ctx); err != nil {
		return core.Snapshot{}, err
	}
	if snap.Rates, err = r.loadRates(ctx); err != nil {
		return core.Snapshot{}, err
	}

	r.logger.InfoContext(ctx, "Loaded snapshot from SQLite",
		"transactions", len(snap.Transactions),
		"accounts", len(snap.Accounts),
		"categories", len(snap.Categories),
		"rates", len(snap.Rates))

	return snap, nil
}

func (r *SQLiteRepository) loadAccounts(ctx context.Context) ([]core.Account, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, type, currency, balance, group_id FROM accounts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query accounts: %w", err)
	}
	defer rows.Close()

	var out []core.Account
	for rows.Next() {
		var (
			a       core.Account
			typ     string
			cur     string
			balance string
			groupID sql.NullInt64
		)
		if err := rows.Scan(&a.ID, &a.Name, &typ, &cur, &balance, &groupID); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		a.Type = core.AccountType(strings.ToUpper(strings.TrimSpace(typ)))
		a.Currency = core.ParseCurrency(cur)
		a.Balance = core.ParseBalance(balance)
		a.GroupID = groupID.Int64
		if err := a.Validate(); err != nil {
			r.skip(ctx, "accounts", a.ID, err)
			continue
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate accounts: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) loadCategories(ctx context.Context) ([]core.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, type, icon, color FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var out []core.Category
	for rows.Next() {
		var (
			c   core.Category
			typ string
		)
		if err := rows.Scan(&c.ID, &c.Name, &typ, &c.Icon, &c.Color); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		c.Name = strings.TrimSpace(c.Name)
		c.Type = core.TransactionType(strings.ToUpper(strings.TrimSpace(typ)))
		if err := c.Validate(); err != nil {
			r.skip(ctx, "categories", c.ID, err)
			continue
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) loadTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, account_id, account_recipient_id, category_id, type, amount, currency, date, created_at
		FROM transactions
		ORDER BY date, id`)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		var (
			tx          core.Transaction
			recipientID sql.NullInt64
			categoryID  sql.NullInt64
			typ         string
			amount      string
			cur         sql.NullString
			date        string
			createdAt   sql.NullString
		)
		if err := rows.Scan(&tx.ID, &tx.AccountID, &recipientID, &categoryID, &typ, &amount, &cur, &date, &createdAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		tx.AccountRecipientID = recipientID.Int64
		tx.CategoryID = categoryID.Int64
		tx.Type = core.TransactionType(strings.ToUpper(strings.TrimSpace(typ)))
		tx.Amount = core.ParseAmount(amount)
		tx.Currency = core.ParseCurrency(cur.String)

		d, err := core.ParseDate(date)
		if err != nil {
			r.skip(ctx, "transactions", tx.ID, err)
			continue
		}
		tx.Date = d
		if createdAt.Valid {
			if c, err := core.ParseDate(createdAt.String); err == nil {
				tx.CreatedAt = c
			}
		}

		if err := tx.Validate(); err != nil {
			r.skip(ctx, "transactions", tx.ID, err)
			continue
		}
		out = append(out, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) loadRates(ctx context.Context) (core.Rates, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT currency, rate FROM exchange_rates`)
	if err != nil {
		return nil, fmt.Errorf("query exchange rates: %w", err)
	}
	defer rows.Close()

	raw := make(map[string]float64)
	for rows.Next() {
		var (
			code string
			rate float64
		)
		if err := rows.Scan(&code, &rate); err != nil {
			return nil, fmt.Errorf("scan exchange rate: %w", err)
		}
		raw[code] = rate
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate exchange rates: %w", err)
	}
	if len(raw) == 0 {
		return nil, nil
	}
	return core.ParseRates(raw), nil
}

func (r *SQLiteRepository) skip(ctx context.Context, table string, id int64, err error) {
	r.logger.WarnContext(ctx, "Skipping invalid row", log.NewFields().WithSkippedRecord(table, id, err).ToSlice()...)
}
