package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/set-night/agripay/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStore struct {
	walletCalls int
	txs         []domain.Transaction
	yields      []domain.YieldPoint
	expenses    []domain.Expense
	err         error
}

func (s *stubStore) Wallet(context.Context) (domain.Wallet, error) {
	s.walletCalls++
	return domain.Wallet{Currency: "USDC", Balance: decimal.RequireFromString("1250.75")}, s.err
}

func (s *stubStore) Transactions(_ context.Context, limit int) ([]domain.Transaction, error) {
	if limit > 0 && limit < len(s.txs) {
		return s.txs[:limit], nil
	}
	return s.txs, nil
}

func (s *stubStore) YieldHistory(context.Context) ([]domain.YieldPoint, error) {
	return s.yields, nil
}

func (s *stubStore) Expenses(context.Context) ([]domain.Expense, error) {
	return s.expenses, nil
}

func (s *stubStore) SoilReadings(context.Context) ([]domain.SoilReading, error) {
	return []domain.SoilReading{{Nutrient: "nitrogen", Level: domain.SoilLow}}, nil
}

func (s *stubStore) Ping(context.Context) error {
	return s.err
}

func TestExpenseShares(t *testing.T) {
	expenses, total := ExpenseShares([]domain.Expense{
		{Category: domain.ExpenseFertilizer, Amount: decimal.NewFromInt(400)},
		{Category: domain.ExpenseSeeds, Amount: decimal.NewFromInt(300)},
		{Category: domain.ExpenseLabor, Amount: decimal.NewFromInt(250)},
		{Category: domain.ExpenseEquipment, Amount: decimal.NewFromInt(200)},
	})

	assert.True(t, total.Equal(decimal.NewFromInt(1150)))
	want := []int64{35, 26, 22, 17}
	for i, e := range expenses {
		assert.True(t, e.Percent.Equal(decimal.NewFromInt(want[i])), "%s: %s", e.Category, e.Percent)
	}

	empty, total := ExpenseShares([]domain.Expense{{Category: domain.ExpenseSeeds, Amount: decimal.Zero}})
	assert.True(t, total.IsZero())
	assert.True(t, empty[0].Percent.IsZero())
}

func TestFarmDashboard(t *testing.T) {
	store := &stubStore{
		txs: make([]domain.Transaction, 6),
		yields: []domain.YieldPoint{
			{Season: "2023", TonsPerHa: decimal.RequireFromString("8.1")},
			{Season: "2024", TonsPerHa: decimal.RequireFromString("8.5"), Predicted: true},
		},
	}
	svc := NewFarmService(store)

	summary, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Len(t, summary.Recent, 4)
	require.NotNil(t, summary.LatestYield)
	assert.Equal(t, "2023", summary.LatestYield.Season)

	_, err = svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, store.walletCalls)

	all, err := svc.Transactions(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 6)
}

func TestFarmDashboardError(t *testing.T) {
	boom := errors.New("db down")
	svc := NewFarmService(&stubStore{err: boom})

	_, err := svc.Dashboard(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, svc.Ping(context.Background()), boom)
}

func TestSnapshotCache(t *testing.T) {
	c := NewSnapshotCache[int](time.Hour)
	_, ok := c.Get()
	assert.False(t, ok)

	c.Set(7)
	v, ok := c.Get()
	assert.True(t, ok)
	assert.Equal(t, 7, v)

	c.Invalidate()
	_, ok = c.Get()
	assert.False(t, ok)

	expired := NewSnapshotCache[int](-time.Second)
	expired.Set(1)
	_, ok = expired.Get()
	assert.False(t, ok)
}
