package service

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ifund-app/ifund/internal/config"
	"github.com/ifund-app/ifund/internal/domain"
	"github.com/ifund-app/ifund/internal/repository"
)

// LedgerService owns every balance field. All point and cash mutations
// go through it, each as one transaction over a locked user row.
type LedgerService struct {
	db      *pgxpool.Pool
	queries *repository.Queries
}

func NewLedgerService(db *pgxpool.Pool, queries *repository.Queries) *LedgerService {
	return &LedgerService{db: db, queries: queries}
}

// AdjustPoints applies a signed point delta and journals it. Fails with
// ErrInsufficientBalance if the result would go negative.
func (s *LedgerService) AdjustPoints(ctx context.Context, userID, delta int64, description string) (int64, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	qtx := s.queries.WithTx(tx)

	user, err := qtx.GetUserForUpdate(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("lock user: %w", err)
	}
	if user.Points+delta < 0 {
		return 0, domain.ErrInsufficientBalance
	}

	newPoints, err := qtx.UpdateUserPoints(ctx, repository.UpdateUserPointsParams{ID: userID, Delta: delta})
	if err != nil {
		return 0, fmt.Errorf("update points: %w", err)
	}

	if err := journalPoints(ctx, qtx, userID, delta, description); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return newPoints, nil
}

// AdjustCash applies a signed cash delta and journals it.
func (s *LedgerService) AdjustCash(ctx context.Context, userID int64, delta decimal.Decimal, description string) (decimal.Decimal, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	qtx := s.queries.WithTx(tx)

	user, err := qtx.GetUserForUpdate(ctx, userID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("lock user: %w", err)
	}
	if user.CashBalance.Add(delta).LessThan(decimal.Zero) {
		return decimal.Zero, domain.ErrInsufficientBalance
	}

	newBalance, err := qtx.UpdateUserCash(ctx, repository.UpdateUserCashParams{ID: userID, Delta: delta})
	if err != nil {
		return decimal.Zero, fmt.Errorf("update cash: %w", err)
	}

	if err := journalCash(ctx, qtx, userID, delta, description); err != nil {
		return decimal.Zero, err
	}

	if err := tx.Commit(ctx); err != nil {
		return decimal.Zero, fmt.Errorf("commit: %w", err)
	}
	return newBalance, nil
}

// TransferPointsToCash debits pointCost and credits cashCredit as a
// single atomic unit: both legs commit or neither does.
func (s *LedgerService) TransferPointsToCash(ctx context.Context, userID, pointCost int64, cashCredit decimal.Decimal) (decimal.Decimal, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	qtx := s.queries.WithTx(tx)

	user, err := qtx.GetUserForUpdate(ctx, userID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("lock user: %w", err)
	}
	if user.Points < pointCost {
		return decimal.Zero, domain.ErrInsufficientBalance
	}

	if _, err := qtx.UpdateUserPoints(ctx, repository.UpdateUserPointsParams{ID: userID, Delta: -pointCost}); err != nil {
		return decimal.Zero, fmt.Errorf("debit points: %w", err)
	}
	newBalance, err := qtx.UpdateUserCash(ctx, repository.UpdateUserCashParams{ID: userID, Delta: cashCredit})
	if err != nil {
		return decimal.Zero, fmt.Errorf("credit cash: %w", err)
	}

	description := fmt.Sprintf("Converted %d points", pointCost)
	if err := journalPoints(ctx, qtx, userID, -pointCost, description); err != nil {
		return decimal.Zero, err
	}
	if err := journalCash(ctx, qtx, userID, cashCredit, description); err != nil {
		return decimal.Zero, err
	}

	if err := tx.Commit(ctx); err != nil {
		return decimal.Zero, fmt.Errorf("commit: %w", err)
	}
	return newBalance, nil
}

// Convert exchanges the fixed point cost for a randomly drawn cash
// credit within the configured range.
func (s *LedgerService) Convert(ctx context.Context, userID int64) (decimal.Decimal, error) {
	credit := drawConversionCredit(rand.Int64N)
	if _, err := s.TransferPointsToCash(ctx, userID, config.ConvertPointCost, credit); err != nil {
		return decimal.Zero, err
	}
	return credit, nil
}

// drawConversionCredit picks a cash value in [ConvertCashMin,
// ConvertCashMax] with cent precision. intn is injected so tests can
// pin the draw.
func drawConversionCredit(intn func(int64) int64) decimal.Decimal {
	minCents := int64(config.ConvertCashMin * 100)
	maxCents := int64(config.ConvertCashMax * 100)
	cents := minCents + intn(maxCents-minCents+1)
	return decimal.New(cents, -2)
}

func journalPoints(ctx context.Context, qtx *repository.Queries, userID, delta int64, description string) error {
	txType := domain.TxTypeCredit
	if delta < 0 {
		txType = domain.TxTypeDebit
	}
	err := qtx.CreateTransaction(ctx, repository.CreateTransactionParams{
		UserID:      userID,
		Amount:      decimal.NewFromInt(delta),
		Unit:        domain.TxUnitPoints,
		TxType:      txType,
		Description: description,
	})
	if err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}
	return nil
}

func journalCash(ctx context.Context, qtx *repository.Queries, userID int64, delta decimal.Decimal, description string) error {
	txType := domain.TxTypeCredit
	if delta.IsNegative() {
		txType = domain.TxTypeDebit
	}
	err := qtx.CreateTransaction(ctx, repository.CreateTransactionParams{
		UserID:      userID,
		Amount:      delta,
		Unit:        domain.TxUnitCash,
		TxType:      txType,
		Description: description,
	})
	if err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}
	return nil
}
