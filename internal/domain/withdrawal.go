package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type WithdrawalStatus string

const (
	WithdrawalPending  WithdrawalStatus = "pending"
	WithdrawalApproved WithdrawalStatus = "approved"
	WithdrawalRejected WithdrawalStatus = "rejected"
)

// Withdrawal reserves its amount at request time: the user's cash balance
// is debited when the row is created, and refunded only on rejection.
type Withdrawal struct {
	ID          int64
	UserID      int64
	Amount      decimal.Decimal
	Method      string
	AccountInfo string
	NotifyEmail *string
	Status      WithdrawalStatus
	RequestedAt time.Time
	ProcessedAt *time.Time
}
