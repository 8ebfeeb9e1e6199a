package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type FundEntryType string

const (
	FundAdd      FundEntryType = "add"
	FundSubtract FundEntryType = "subtract"
)

// FundEntry is one row of the admin fund ledger. Amounts are stored
// positive; the entry type carries the sign. The signed running sum is
// the total disbursable funds.
type FundEntry struct {
	ID        int64
	Amount    decimal.Decimal
	EntryType FundEntryType
	Note      string
	CreatedAt time.Time
}

// Signed returns the entry amount with its ledger sign applied.
func (e *FundEntry) Signed() decimal.Decimal {
	if e.EntryType == FundSubtract {
		return e.Amount.Neg()
	}
	return e.Amount
}
