package repository

import (
	"context"

	"github.com/ifund-app/ifund/internal/domain"
)

func (q *Queries) CreateActivationCode(ctx context.Context, code string) error {
	_, err := q.db.Exec(ctx, `INSERT INTO activation_codes (code) VALUES ($1)`, code)
	return err
}

func (q *Queries) ActivationCodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := q.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM activation_codes WHERE code = $1)`, code,
	).Scan(&exists)
	return exists, err
}

func (q *Queries) GetActivationCode(ctx context.Context, code string) (domain.ActivationCode, error) {
	var c domain.ActivationCode
	err := q.db.QueryRow(ctx,
		`SELECT id, code, used_by, used_at, created_at FROM activation_codes WHERE code = $1`, code,
	).Scan(&c.ID, &c.Code, &c.UsedBy, &c.UsedAt, &c.CreatedAt)
	return c, err
}

type RedeemActivationCodeParams struct {
	Code   string
	UsedBy string
}

// RedeemActivationCode marks a code used in one conditional update.
// Concurrent redeemers serialize on the row; only the first statement
// matches, so at most one caller ever sees success.
func (q *Queries) RedeemActivationCode(ctx context.Context, arg RedeemActivationCodeParams) error {
	var id int64
	return q.db.QueryRow(ctx, `
		UPDATE activation_codes
		SET used_by = $2, used_at = now()
		WHERE code = $1 AND used_at IS NULL
		RETURNING id`,
		arg.Code, arg.UsedBy,
	).Scan(&id)
}
