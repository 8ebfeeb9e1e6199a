package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInsufficientBalance  = errors.New("insufficient balance")
	ErrBelowMinimum         = errors.New("amount below minimum")
	ErrCodeNotFound         = errors.New("activation code not found")
	ErrCodeAlreadyUsed      = errors.New("activation code already used")
	ErrExhaustedKeyspace    = errors.New("could not generate a unique code")
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrUsernameTaken        = errors.New("username already taken")
	ErrEmailTaken           = errors.New("email already registered")
	ErrNoActiveTask         = errors.New("no task awaiting an answer")
	ErrAccountAlreadyLinked = errors.New("account already linked")
	ErrWithdrawalNotFound   = errors.New("withdrawal not found")
	ErrSuspiciousActivity   = errors.New("suspicious activity detected")
)

// CooldownError rejects a task attempt made while the (user, channel)
// pair is still cooling down. It carries the remaining wait so callers
// can show it instead of blocking.
type CooldownError struct {
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("still cooling down, %s remaining", e.Remaining.Round(time.Second))
}

// AsCooldown unwraps err into a CooldownError if it is one.
func AsCooldown(err error) (*CooldownError, bool) {
	var ce *CooldownError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
