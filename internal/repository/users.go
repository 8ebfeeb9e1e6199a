package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/ifund-app/ifund/internal/domain"
)

const userColumns = `id, public_id, username, full_name, email, password_hash,
	points, cash_balance, referrals, referral_balance, activation_code,
	messenger_id, messenger_active, is_admin, created_at`

func scanUser(row pgx.Row) (domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.PublicID, &u.Username, &u.FullName, &u.Email, &u.PasswordHash,
		&u.Points, &u.CashBalance, &u.Referrals, &u.ReferralBalance, &u.ActivationCode,
		&u.MessengerID, &u.MessengerActive, &u.IsAdmin, &u.CreatedAt,
	)
	return u, err
}

type CreateUserParams struct {
	PublicID       string
	Username       string
	FullName       string
	Email          string
	PasswordHash   string
	ActivationCode string
	IsAdmin        bool
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (domain.User, error) {
	row := q.db.QueryRow(ctx, `
		INSERT INTO users (public_id, username, full_name, email, password_hash, activation_code, is_admin)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+userColumns,
		arg.PublicID, arg.Username, arg.FullName, arg.Email, arg.PasswordHash, arg.ActivationCode, arg.IsAdmin,
	)
	return scanUser(row)
}

func (q *Queries) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	return scanUser(q.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (q *Queries) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	return scanUser(q.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username))
}

func (q *Queries) GetUserByPublicID(ctx context.Context, publicID string) (domain.User, error) {
	return scanUser(q.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE public_id = $1`, publicID))
}

func (q *Queries) GetUserByMessengerID(ctx context.Context, messengerID string) (domain.User, error) {
	return scanUser(q.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE messenger_id = $1 AND messenger_active`, messengerID))
}

// GetUserForUpdate locks the user row for the duration of the enclosing
// transaction. Every balance mutation goes through this lock.
func (q *Queries) GetUserForUpdate(ctx context.Context, id int64) (domain.User, error) {
	return scanUser(q.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1 FOR UPDATE`, id))
}

type UpdateUserPointsParams struct {
	ID    int64
	Delta int64
}

func (q *Queries) UpdateUserPoints(ctx context.Context, arg UpdateUserPointsParams) (int64, error) {
	var points int64
	err := q.db.QueryRow(ctx,
		`UPDATE users SET points = points + $2 WHERE id = $1 RETURNING points`,
		arg.ID, arg.Delta,
	).Scan(&points)
	return points, err
}

type UpdateUserCashParams struct {
	ID    int64
	Delta decimal.Decimal
}

func (q *Queries) UpdateUserCash(ctx context.Context, arg UpdateUserCashParams) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := q.db.QueryRow(ctx,
		`UPDATE users SET cash_balance = cash_balance + $2 WHERE id = $1 RETURNING cash_balance`,
		arg.ID, arg.Delta,
	).Scan(&balance)
	return balance, err
}

type ApplyReferralBonusParams struct {
	ID    int64
	Bonus decimal.Decimal
}

// ApplyReferralBonus credits the inviter in one statement: referral
// count, referral-earned total, and spendable cash move together.
func (q *Queries) ApplyReferralBonus(ctx context.Context, arg ApplyReferralBonusParams) error {
	_, err := q.db.Exec(ctx, `
		UPDATE users
		SET referrals = referrals + 1,
		    referral_balance = referral_balance + $2,
		    cash_balance = cash_balance + $2
		WHERE id = $1`,
		arg.ID, arg.Bonus,
	)
	return err
}

type LinkMessengerParams struct {
	Username    string
	MessengerID string
}

// LinkMessenger binds a chat sender to an account, but only if the
// account is not linked yet. Returns the linked user id.
func (q *Queries) LinkMessenger(ctx context.Context, arg LinkMessengerParams) (int64, error) {
	var id int64
	err := q.db.QueryRow(ctx, `
		UPDATE users
		SET messenger_id = $2, messenger_active = TRUE
		WHERE username = $1 AND NOT messenger_active
		RETURNING id`,
		arg.Username, arg.MessengerID,
	).Scan(&id)
	return id, err
}

func (q *Queries) SumCashBalances(ctx context.Context) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := q.db.QueryRow(ctx, `SELECT COALESCE(SUM(cash_balance), 0) FROM users`).Scan(&sum)
	return sum, err
}

func (q *Queries) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}

type LeaderboardRow struct {
	Username     string
	CashBalance  decimal.Decimal
	Referrals    int64
	TotalPayouts decimal.Decimal
	RankScore    decimal.Decimal
}

// ListLeaderboard ranks users by lifetime earnings: current balance plus
// everything already paid out.
func (q *Queries) ListLeaderboard(ctx context.Context) ([]LeaderboardRow, error) {
	rows, err := q.db.Query(ctx, `
		SELECT u.username, u.cash_balance, u.referrals,
		       COALESCE(SUM(w.amount) FILTER (WHERE w.status = 'approved'), 0) AS total_payouts,
		       u.cash_balance + COALESCE(SUM(w.amount) FILTER (WHERE w.status = 'approved'), 0) AS rank_score
		FROM users u
		LEFT JOIN withdrawals w ON w.user_id = u.id
		GROUP BY u.id
		ORDER BY rank_score DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LeaderboardRow
	for rows.Next() {
		var r LeaderboardRow
		if err := rows.Scan(&r.Username, &r.CashBalance, &r.Referrals, &r.TotalPayouts, &r.RankScore); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
