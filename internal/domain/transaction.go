package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TxType string

const (
	TxTypeDebit  TxType = "debit"
	TxTypeCredit TxType = "credit"
)

type TxStatus string

const (
	TxStatusCompleted TxStatus = "completed"
	TxStatusPending   TxStatus = "pending"
	TxStatusFailed    TxStatus = "failed"
)

type Transaction struct {
	ID          int64
	Amount      decimal.Decimal // always non-negative; TxType carries the sign
	TxType      TxType
	Description string
	Status      TxStatus
	Date        time.Time
}

// Signed returns the amount as it affects the wallet balance.
func (t *Transaction) Signed() decimal.Decimal {
	if t.TxType == TxTypeDebit {
		return t.Amount.Neg()
	}
	return t.Amount
}

type Wallet struct {
	Currency string
	Balance  decimal.Decimal
}
