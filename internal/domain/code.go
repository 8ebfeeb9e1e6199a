package domain

import "time"

// ActivationCode is a single-use token required to create an account.
// A code transitions unused to used exactly once; used_by records the
// public id of the redeeming user.
type ActivationCode struct {
	ID        int64
	Code      string
	UsedBy    *string
	UsedAt    *time.Time
	CreatedAt time.Time
}

func (c *ActivationCode) IsUsed() bool {
	return c.UsedAt != nil
}
