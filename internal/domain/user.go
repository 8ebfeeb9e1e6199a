package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID              int64
	PublicID        string
	Username        string
	FullName        string
	Email           string
	PasswordHash    string
	Points          int64
	CashBalance     decimal.Decimal
	Referrals       int64
	ReferralBalance decimal.Decimal
	ActivationCode  string
	MessengerID     *string
	MessengerActive bool
	IsAdmin         bool
	CreatedAt       time.Time
}
