package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/ifund-app/ifund/internal/config"
	"github.com/ifund-app/ifund/internal/domain"
	"github.com/ifund-app/ifund/internal/repository"
)

// applyReferralBonus credits the inviter once per created account. It
// runs inside the signup transaction so the bonus can never be lost
// between user creation and crediting. Unknown referrers and
// self-referrals are skipped silently, not errors.
func applyReferralBonus(ctx context.Context, qtx *repository.Queries, referrerPublicID string, newUser *domain.User) error {
	if referrerPublicID == "" {
		return nil
	}

	inviter, err := qtx.GetUserByPublicID(ctx, referrerPublicID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("get referrer: %w", err)
	}
	if inviter.ID == newUser.ID {
		return nil
	}

	bonus := decimal.NewFromInt(config.ReferralBonus)
	err = qtx.ApplyReferralBonus(ctx, repository.ApplyReferralBonusParams{ID: inviter.ID, Bonus: bonus})
	if err != nil {
		return fmt.Errorf("apply referral bonus: %w", err)
	}

	err = qtx.CreateTransaction(ctx, repository.CreateTransactionParams{
		UserID:      inviter.ID,
		Amount:      bonus,
		Unit:        domain.TxUnitCash,
		TxType:      domain.TxTypeCredit,
		Description: fmt.Sprintf("Referral bonus for inviting %s", newUser.PublicID),
	})
	if err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}
	return nil
}
