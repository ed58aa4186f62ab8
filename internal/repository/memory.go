package repository

import (
	"context"
	"sort"
	"time"

	"github.com/set-night/agripay/internal/domain"
	"github.com/shopspring/decimal"
)

// MemoryStore serves the demo farm when no database is configured. It holds
// the same rows the seed migration inserts.
type MemoryStore struct {
	wallet   domain.Wallet
	txs      []domain.Transaction
	yields   []domain.YieldPoint
	expenses []domain.Expense
	soil     []domain.SoilReading
}

func NewMemoryStore() *MemoryStore {
	day := func(d int) time.Time { return time.Date(2024, time.July, d, 0, 0, 0, 0, time.UTC) }
	dec := decimal.RequireFromString

	txs := []domain.Transaction{
		{ID: 1, TxType: domain.TxTypeCredit, Amount: dec("500.00"), Description: "Crop Sale - Local Market", Status: domain.TxStatusCompleted, Date: day(15)},
		{ID: 2, TxType: domain.TxTypeDebit, Amount: dec("150.00"), Description: "Sent to Family", Status: domain.TxStatusCompleted, Date: day(16)},
		{ID: 3, TxType: domain.TxTypeDebit, Amount: dec("12.75"), Description: "Seed Purchase", Status: domain.TxStatusCompleted, Date: day(17)},
		{ID: 4, TxType: domain.TxTypeCredit, Amount: dec("25.00"), Description: "Microloan Disbursement", Status: domain.TxStatusCompleted, Date: day(18)},
		{ID: 5, TxType: domain.TxTypeDebit, Amount: dec("45.50"), Description: "Fertilizer Purchase", Status: domain.TxStatusCompleted, Date: day(19)},
		{ID: 6, TxType: domain.TxTypeCredit, Amount: dec("350.00"), Description: "Maize Sale - Buyer Corp", Status: domain.TxStatusCompleted, Date: day(20)},
	}
	sort.SliceStable(txs, func(i, j int) bool {
		if txs[i].Date.Equal(txs[j].Date) {
			return txs[i].ID > txs[j].ID
		}
		return txs[i].Date.After(txs[j].Date)
	})

	return &MemoryStore{
		wallet: domain.Wallet{Currency: "USDC", Balance: dec("1250.75")},
		txs:    txs,
		yields: []domain.YieldPoint{
			{Season: "2021", TonsPerHa: dec("7.2")},
			{Season: "2022", TonsPerHa: dec("6.8")},
			{Season: "2023", TonsPerHa: dec("8.1")},
			{Season: "2024", TonsPerHa: dec("8.5"), Predicted: true},
		},
		expenses: []domain.Expense{
			{Category: domain.ExpenseFertilizer, Amount: dec("400")},
			{Category: domain.ExpenseSeeds, Amount: dec("300")},
			{Category: domain.ExpenseLabor, Amount: dec("250")},
			{Category: domain.ExpenseEquipment, Amount: dec("200")},
		},
		soil: []domain.SoilReading{
			{Nutrient: "nitrogen", Level: domain.SoilLow},
			{Nutrient: "phosphorus", Level: domain.SoilOptimal},
			{Nutrient: "potassium", Level: domain.SoilMedium},
		},
	}
}

func (s *MemoryStore) Wallet(context.Context) (domain.Wallet, error) {
	return s.wallet, nil
}

func (s *MemoryStore) Transactions(_ context.Context, limit int) ([]domain.Transaction, error) {
	n := len(s.txs)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]domain.Transaction, n)
	copy(out, s.txs[:n])
	return out, nil
}

func (s *MemoryStore) YieldHistory(context.Context) ([]domain.YieldPoint, error) {
	return append([]domain.YieldPoint(nil), s.yields...), nil
}

func (s *MemoryStore) Expenses(context.Context) ([]domain.Expense, error) {
	return append([]domain.Expense(nil), s.expenses...), nil
}

func (s *MemoryStore) SoilReadings(context.Context) ([]domain.SoilReading, error) {
	return append([]domain.SoilReading(nil), s.soil...), nil
}

func (s *MemoryStore) Ping(context.Context) error {
	return nil
}
