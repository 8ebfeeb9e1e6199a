package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/ifund-app/ifund/internal/domain"
)

const withdrawalColumns = `id, user_id, amount, method, account_info, notify_email,
	status, requested_at, processed_at`

func scanWithdrawal(row pgx.Row) (domain.Withdrawal, error) {
	var w domain.Withdrawal
	err := row.Scan(
		&w.ID, &w.UserID, &w.Amount, &w.Method, &w.AccountInfo, &w.NotifyEmail,
		&w.Status, &w.RequestedAt, &w.ProcessedAt,
	)
	return w, err
}

type CreateWithdrawalParams struct {
	UserID      int64
	Amount      decimal.Decimal
	Method      string
	AccountInfo string
	NotifyEmail *string
}

func (q *Queries) CreateWithdrawal(ctx context.Context, arg CreateWithdrawalParams) (domain.Withdrawal, error) {
	row := q.db.QueryRow(ctx, `
		INSERT INTO withdrawals (user_id, amount, method, account_info, notify_email)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+withdrawalColumns,
		arg.UserID, arg.Amount, arg.Method, arg.AccountInfo, arg.NotifyEmail,
	)
	return scanWithdrawal(row)
}

func (q *Queries) GetWithdrawalForUpdate(ctx context.Context, id int64) (domain.Withdrawal, error) {
	return scanWithdrawal(q.db.QueryRow(ctx,
		`SELECT `+withdrawalColumns+` FROM withdrawals WHERE id = $1 FOR UPDATE`, id))
}

type UpdateWithdrawalStatusParams struct {
	ID     int64
	Status domain.WithdrawalStatus
}

func (q *Queries) UpdateWithdrawalStatus(ctx context.Context, arg UpdateWithdrawalStatusParams) error {
	_, err := q.db.Exec(ctx,
		`UPDATE withdrawals SET status = $2, processed_at = now() WHERE id = $1`,
		arg.ID, arg.Status,
	)
	return err
}

func (q *Queries) ListUserWithdrawals(ctx context.Context, userID int64) ([]domain.Withdrawal, error) {
	return q.listWithdrawals(ctx,
		`SELECT `+withdrawalColumns+` FROM withdrawals WHERE user_id = $1 ORDER BY requested_at DESC`, userID)
}

func (q *Queries) ListWithdrawals(ctx context.Context) ([]domain.Withdrawal, error) {
	return q.listWithdrawals(ctx,
		`SELECT `+withdrawalColumns+` FROM withdrawals ORDER BY requested_at DESC`)
}

func (q *Queries) listWithdrawals(ctx context.Context, sql string, args ...any) ([]domain.Withdrawal, error) {
	rows, err := q.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Withdrawal
	for rows.Next() {
		w, err := scanWithdrawal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (q *Queries) SumApprovedWithdrawals(ctx context.Context) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := q.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM withdrawals WHERE status = 'approved'`,
	).Scan(&sum)
	return sum, err
}
