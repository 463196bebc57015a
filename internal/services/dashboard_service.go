package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"familyfinance/internal/analytics"
	"familyfinance/internal/core"
	"familyfinance/internal/currency"
	"familyfinance/internal/log"
	"familyfinance/internal/source"
)

// DashboardService loads a snapshot and turns it into a dashboard.
type DashboardService struct {
	source source.SnapshotReader
	logger *log.Logger
}

// Report is a dashboard plus the currencies that could not be converted
// while building it.
type Report struct {
	analytics.Dashboard
	UnconvertedCurrencies []core.Currency
}

func NewDashboardService(src source.SnapshotReader, logger *log.Logger) *DashboardService {
	if logger == nil {
		logger = log.Discard()
	}
	return &DashboardService{
		source: src,
		logger: logger.WithComponent(log.ComponentDashboard),
	}
}

// BuildDashboard reads a fresh snapshot and evaluates every widget over it.
// Each currency without a usable rate is logged once per call.
func (s *DashboardService) BuildDashboard(ctx context.Context, opts analytics.DashboardOptions) (Report, error) {
	if s.source == nil {
		return Report{}, fmt.Errorf("snapshot source not configured")
	}

	started := time.Now()
	snap, err := s.source.LoadSnapshot(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("load snapshot: %w", err)
	}

	missing := newMissingRates(ctx, s.logger)
	d, err := analytics.BuildDashboard(ctx, snap, opts, currency.WithMissingRateHook(missing.record))
	if err != nil {
		return Report{}, fmt.Errorf("build dashboard: %w", err)
	}

	s.logger.InfoContext(ctx, "Dashboard built",
		log.NewFields().
			WithOperation(log.OpBuild).
			WithPeriod(d.Period.String(), d.Reference.Format(time.DateOnly)).
			ToSlice()...)
	s.logger.DebugContext(ctx, "Dashboard timing", log.FieldDuration, time.Since(started).Milliseconds())
	s.logWidgets(ctx, d)

	return Report{Dashboard: d, UnconvertedCurrencies: missing.list()}, nil
}

func (s *DashboardService) logWidgets(ctx context.Context, d analytics.Dashboard) {
	accounts := s.logger.With(log.FieldWidget, "accounts")
	for _, st := range []analytics.AccountStats{d.Personal, d.Family} {
		accounts.DebugContext(ctx, "Account stats", log.FieldScope, string(st.Scope), log.FieldCount, st.TotalCount)
	}
	s.logger.With(log.FieldWidget, "savings").DebugContext(ctx, "Savings series", log.FieldCount, len(d.Savings))
}

// missingRates deduplicates missing rate notifications arriving from
// concurrent widgets.
type missingRates struct {
	ctx    context.Context
	logger *log.Logger

	mu   sync.Mutex
	seen map[core.Currency]struct{}
}

func newMissingRates(ctx context.Context, logger *log.Logger) *missingRates {
	return &missingRates{ctx: ctx, logger: logger, seen: make(map[core.Currency]struct{})}
}

func (m *missingRates) record(c core.Currency) {
	m.mu.Lock()
	_, dup := m.seen[c]
	m.seen[c] = struct{}{}
	m.mu.Unlock()

	if !dup {
		m.logger.WarnContext(m.ctx, "No exchange rate, amounts left unconverted", log.FieldCurrency, string(c))
	}
}

func (m *missingRates) list() []core.Currency {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]core.Currency, 0, len(m.seen))
	for c := range m.seen {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
