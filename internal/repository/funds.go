package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/ifund-app/ifund/internal/domain"
)

type CreateFundEntryParams struct {
	Amount    decimal.Decimal
	EntryType domain.FundEntryType
	Note      string
}

func (q *Queries) CreateFundEntry(ctx context.Context, arg CreateFundEntryParams) (domain.FundEntry, error) {
	var e domain.FundEntry
	err := q.db.QueryRow(ctx, `
		INSERT INTO admin_funds (amount, entry_type, note)
		VALUES ($1, $2, $3)
		RETURNING id, amount, entry_type, note, created_at`,
		arg.Amount, arg.EntryType, arg.Note,
	).Scan(&e.ID, &e.Amount, &e.EntryType, &e.Note, &e.CreatedAt)
	return e, err
}

// SumFundEntries returns the signed running total of the fund ledger.
func (q *Queries) SumFundEntries(ctx context.Context) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := q.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(CASE WHEN entry_type = 'add' THEN amount ELSE -amount END), 0)
		FROM admin_funds`,
	).Scan(&sum)
	return sum, err
}

type CreateTransactionParams struct {
	UserID      int64
	Amount      decimal.Decimal
	Unit        domain.TxUnit
	TxType      domain.TxType
	Description string
}

func (q *Queries) CreateTransaction(ctx context.Context, arg CreateTransactionParams) error {
	_, err := q.db.Exec(ctx, `
		INSERT INTO transactions (user_id, amount, unit, tx_type, description)
		VALUES ($1, $2, $3, $4, $5)`,
		arg.UserID, arg.Amount, arg.Unit, arg.TxType, arg.Description,
	)
	return err
}
