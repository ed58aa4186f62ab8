package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/set-night/agripay/internal/domain"
)

const defaultWalletID = 1

// PGStore reads the farm tables created by the embedded migrations.
type PGStore struct {
	db *pgxpool.Pool
}

func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) Wallet(ctx context.Context) (domain.Wallet, error) {
	var (
		w       domain.Wallet
		balance pgtype.Numeric
	)
	err := s.db.QueryRow(ctx,
		`SELECT currency, balance FROM wallets WHERE id = $1`, defaultWalletID,
	).Scan(&w.Currency, &balance)
	if err != nil {
		return domain.Wallet{}, fmt.Errorf("select wallet: %w", err)
	}
	w.Balance = pgNumericToDecimal(balance)
	return w, nil
}

func (s *PGStore) Transactions(ctx context.Context, limit int) ([]domain.Transaction, error) {
	query := `SELECT id, tx_type, amount, description, status, occurred_on
		FROM transactions
		WHERE wallet_id = $1
		ORDER BY occurred_on DESC, id DESC`
	args := []any{defaultWalletID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select transactions: %w", err)
	}

	txs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Transaction, error) {
		var (
			tx     domain.Transaction
			amount pgtype.Numeric
			date   pgtype.Date
		)
		if err := row.Scan(&tx.ID, &tx.TxType, &amount, &tx.Description, &tx.Status, &date); err != nil {
			return domain.Transaction{}, err
		}
		tx.Amount = pgNumericToDecimal(amount)
		tx.Date = pgDateToTime(date)
		return tx, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan transactions: %w", err)
	}
	return txs, nil
}

func (s *PGStore) YieldHistory(ctx context.Context) ([]domain.YieldPoint, error) {
	rows, err := s.db.Query(ctx,
		`SELECT season, tons_per_ha, is_predicted FROM yield_history ORDER BY sort_order`)
	if err != nil {
		return nil, fmt.Errorf("select yield history: %w", err)
	}

	points, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.YieldPoint, error) {
		var (
			p    domain.YieldPoint
			tons pgtype.Numeric
		)
		if err := row.Scan(&p.Season, &tons, &p.Predicted); err != nil {
			return domain.YieldPoint{}, err
		}
		p.TonsPerHa = pgNumericToDecimal(tons)
		return p, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan yield history: %w", err)
	}
	return points, nil
}

func (s *PGStore) Expenses(ctx context.Context) ([]domain.Expense, error) {
	rows, err := s.db.Query(ctx, `SELECT category, amount FROM expenses ORDER BY sort_order`)
	if err != nil {
		return nil, fmt.Errorf("select expenses: %w", err)
	}

	expenses, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Expense, error) {
		var (
			e      domain.Expense
			amount pgtype.Numeric
		)
		if err := row.Scan(&e.Category, &amount); err != nil {
			return domain.Expense{}, err
		}
		e.Amount = pgNumericToDecimal(amount)
		return e, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan expenses: %w", err)
	}
	return expenses, nil
}

func (s *PGStore) SoilReadings(ctx context.Context) ([]domain.SoilReading, error) {
	rows, err := s.db.Query(ctx, `SELECT nutrient, level FROM soil_readings ORDER BY sort_order`)
	if err != nil {
		return nil, fmt.Errorf("select soil readings: %w", err)
	}

	readings, err := pgx.CollectRows(rows, pgx.RowToStructByPos[domain.SoilReading])
	if err != nil {
		return nil, fmt.Errorf("scan soil readings: %w", err)
	}
	return readings, nil
}

func (s *PGStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}
