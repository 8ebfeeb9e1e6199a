package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ifund-app/ifund/internal/config"
	"github.com/ifund-app/ifund/internal/domain"
	"github.com/ifund-app/ifund/internal/repository"
)

type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

type WithdrawalService struct {
	db      *pgxpool.Pool
	queries *repository.Queries
}

func NewWithdrawalService(db *pgxpool.Pool, queries *repository.Queries) *WithdrawalService {
	return &WithdrawalService{db: db, queries: queries}
}

// validateWithdrawalAmount enforces the request floor.
func validateWithdrawalAmount(amount decimal.Decimal) error {
	if amount.LessThan(decimal.NewFromInt(config.MinWithdrawalAmount)) {
		return domain.ErrBelowMinimum
	}
	return nil
}

// Request reserves the amount immediately: the debit happens at request
// time, not approval, so the same funds cannot back two outstanding
// requests. Debit and pending record are one transaction.
func (s *WithdrawalService) Request(ctx context.Context, userID int64, amount decimal.Decimal, method, accountInfo string, notifyEmail *string) (*domain.Withdrawal, error) {
	if err := validateWithdrawalAmount(amount); err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	qtx := s.queries.WithTx(tx)

	user, err := qtx.GetUserForUpdate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("lock user: %w", err)
	}
	if user.CashBalance.LessThan(amount) {
		return nil, domain.ErrInsufficientBalance
	}

	w, err := qtx.CreateWithdrawal(ctx, repository.CreateWithdrawalParams{
		UserID:      userID,
		Amount:      amount,
		Method:      method,
		AccountInfo: accountInfo,
		NotifyEmail: notifyEmail,
	})
	if err != nil {
		return nil, fmt.Errorf("create withdrawal: %w", err)
	}

	if _, err := qtx.UpdateUserCash(ctx, repository.UpdateUserCashParams{ID: userID, Delta: amount.Neg()}); err != nil {
		return nil, fmt.Errorf("reserve amount: %w", err)
	}
	if err := journalCash(ctx, qtx, userID, amount.Neg(), fmt.Sprintf("Withdrawal request #%d", w.ID)); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return &w, nil
}

// Process settles a pending request. Approval consumes disbursable
// funds via a subtract entry on the fund ledger; rejection refunds the
// reserved amount. A request that is no longer pending is silently
// ignored, matching repeated clicks on the admin screen.
func (s *WithdrawalService) Process(ctx context.Context, id int64, decision Decision) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	qtx := s.queries.WithTx(tx)

	w, err := qtx.GetWithdrawalForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrWithdrawalNotFound
		}
		return fmt.Errorf("lock withdrawal: %w", err)
	}
	if w.Status != domain.WithdrawalPending {
		return nil
	}

	switch decision {
	case DecisionApprove:
		err = qtx.UpdateWithdrawalStatus(ctx, repository.UpdateWithdrawalStatusParams{
			ID:     id,
			Status: domain.WithdrawalApproved,
		})
		if err != nil {
			return fmt.Errorf("approve withdrawal: %w", err)
		}

		user, err := qtx.GetUserByID(ctx, w.UserID)
		if err != nil {
			return fmt.Errorf("get user: %w", err)
		}
		_, err = qtx.CreateFundEntry(ctx, repository.CreateFundEntryParams{
			Amount:    w.Amount,
			EntryType: domain.FundSubtract,
			Note:      fmt.Sprintf("Approved withdrawal for %s", user.PublicID),
		})
		if err != nil {
			return fmt.Errorf("record fund entry: %w", err)
		}

	case DecisionReject:
		err = qtx.UpdateWithdrawalStatus(ctx, repository.UpdateWithdrawalStatusParams{
			ID:     id,
			Status: domain.WithdrawalRejected,
		})
		if err != nil {
			return fmt.Errorf("reject withdrawal: %w", err)
		}

		if _, err := qtx.GetUserForUpdate(ctx, w.UserID); err != nil {
			return fmt.Errorf("lock user: %w", err)
		}
		if _, err := qtx.UpdateUserCash(ctx, repository.UpdateUserCashParams{ID: w.UserID, Delta: w.Amount}); err != nil {
			return fmt.Errorf("refund amount: %w", err)
		}
		if err := journalCash(ctx, qtx, w.UserID, w.Amount, fmt.Sprintf("Refund for rejected withdrawal #%d", w.ID)); err != nil {
			return err
		}

	default:
		return fmt.Errorf("unknown decision %q", decision)
	}

	return tx.Commit(ctx)
}

func (s *WithdrawalService) ListForUser(ctx context.Context, userID int64) ([]domain.Withdrawal, error) {
	return s.queries.ListUserWithdrawals(ctx, userID)
}

func (s *WithdrawalService) ListAll(ctx context.Context) ([]domain.Withdrawal, error) {
	return s.queries.ListWithdrawals(ctx)
}
