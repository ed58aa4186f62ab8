package service

import (
	"context"
	"fmt"

	"github.com/set-night/agripay/internal/config"
	"github.com/set-night/agripay/internal/domain"
	"github.com/shopspring/decimal"
)

// FarmStore is the read-only source of the farm's ledger and field data.
type FarmStore interface {
	Wallet(ctx context.Context) (domain.Wallet, error)
	// Transactions returns the newest first; limit <= 0 returns all.
	Transactions(ctx context.Context, limit int) ([]domain.Transaction, error)
	YieldHistory(ctx context.Context) ([]domain.YieldPoint, error)
	Expenses(ctx context.Context) ([]domain.Expense, error)
	SoilReadings(ctx context.Context) ([]domain.SoilReading, error)
	Ping(ctx context.Context) error
}

type DashboardSummary struct {
	Wallet      domain.Wallet
	Recent      []domain.Transaction
	Soil        []domain.SoilReading
	LatestYield *domain.YieldPoint
}

type AnalyticsReport struct {
	Yields   []domain.YieldPoint
	Expenses []domain.Expense
	Total    decimal.Decimal
	Soil     []domain.SoilReading
}

type FarmService struct {
	store FarmStore
	cache *SnapshotCache[*DashboardSummary]
}

func NewFarmService(store FarmStore) *FarmService {
	return &FarmService{
		store: store,
		cache: NewSnapshotCache[*DashboardSummary](config.DashboardCacheDuration),
	}
}

func (s *FarmService) Dashboard(ctx context.Context) (*DashboardSummary, error) {
	if cached, ok := s.cache.Get(); ok {
		return cached, nil
	}

	wallet, err := s.store.Wallet(ctx)
	if err != nil {
		return nil, fmt.Errorf("get wallet: %w", err)
	}
	recent, err := s.store.Transactions(ctx, config.DashboardRecentTransactions)
	if err != nil {
		return nil, fmt.Errorf("list recent transactions: %w", err)
	}
	soil, err := s.store.SoilReadings(ctx)
	if err != nil {
		return nil, fmt.Errorf("list soil readings: %w", err)
	}
	yields, err := s.store.YieldHistory(ctx)
	if err != nil {
		return nil, fmt.Errorf("list yield history: %w", err)
	}

	summary := &DashboardSummary{Wallet: wallet, Recent: recent, Soil: soil}
	for i := len(yields) - 1; i >= 0; i-- {
		if !yields[i].Predicted {
			y := yields[i]
			summary.LatestYield = &y
			break
		}
	}

	s.cache.Set(summary)
	return summary, nil
}

func (s *FarmService) Transactions(ctx context.Context) ([]domain.Transaction, error) {
	txs, err := s.store.Transactions(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txs, nil
}

func (s *FarmService) Analytics(ctx context.Context) (*AnalyticsReport, error) {
	yields, err := s.store.YieldHistory(ctx)
	if err != nil {
		return nil, fmt.Errorf("list yield history: %w", err)
	}
	expenses, err := s.store.Expenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	soil, err := s.store.SoilReadings(ctx)
	if err != nil {
		return nil, fmt.Errorf("list soil readings: %w", err)
	}

	expenses, total := ExpenseShares(expenses)
	return &AnalyticsReport{Yields: yields, Expenses: expenses, Total: total, Soil: soil}, nil
}

func (s *FarmService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// ExpenseShares fills each expense's whole-number percentage of the total.
func ExpenseShares(expenses []domain.Expense) ([]domain.Expense, decimal.Decimal) {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}

	out := make([]domain.Expense, len(expenses))
	hundred := decimal.NewFromInt(100)
	for i, e := range expenses {
		out[i] = e
		if total.IsPositive() {
			out[i].Percent = e.Amount.Div(total).Mul(hundred).Round(0)
		} else {
			out[i].Percent = decimal.Zero
		}
	}
	return out, total
}
