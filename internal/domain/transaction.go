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

type TxUnit string

const (
	TxUnitPoints TxUnit = "points"
	TxUnitCash   TxUnit = "cash"
)

// Transaction is the per-user journal row written alongside every
// balance mutation.
type Transaction struct {
	ID          int64
	UserID      int64
	Amount      decimal.Decimal
	Unit        TxUnit
	TxType      TxType
	Description string
	CreatedAt   time.Time
}
