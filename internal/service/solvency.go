package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ifund-app/ifund/internal/domain"
	"github.com/ifund-app/ifund/internal/repository"
)

// SolvencyReport compares total disbursable funds against what members
// could collectively cash out. The warning is observational: it does
// not block further withdrawals.
type SolvencyReport struct {
	TotalFunds      decimal.Decimal
	MemberEarnings  decimal.Decimal
	ApprovedPayouts decimal.Decimal
	Warning         bool
}

// EvaluateSolvency derives the report from the three running totals.
func EvaluateSolvency(totalFunds, memberEarnings, approvedPayouts decimal.Decimal) SolvencyReport {
	return SolvencyReport{
		TotalFunds:      totalFunds,
		MemberEarnings:  memberEarnings,
		ApprovedPayouts: approvedPayouts,
		Warning:         totalFunds.LessThan(memberEarnings),
	}
}

type SolvencyService struct {
	queries *repository.Queries
}

func NewSolvencyService(queries *repository.Queries) *SolvencyService {
	return &SolvencyService{queries: queries}
}

// Report recomputes the invariant from the store on demand.
func (s *SolvencyService) Report(ctx context.Context) (SolvencyReport, error) {
	funds, err := s.queries.SumFundEntries(ctx)
	if err != nil {
		return SolvencyReport{}, fmt.Errorf("sum fund entries: %w", err)
	}
	earnings, err := s.queries.SumCashBalances(ctx)
	if err != nil {
		return SolvencyReport{}, fmt.Errorf("sum cash balances: %w", err)
	}
	payouts, err := s.queries.SumApprovedWithdrawals(ctx)
	if err != nil {
		return SolvencyReport{}, fmt.Errorf("sum approved withdrawals: %w", err)
	}
	return EvaluateSolvency(funds, earnings, payouts), nil
}

// AddFunds appends a manual top-up entry to the fund ledger.
func (s *SolvencyService) AddFunds(ctx context.Context, amount decimal.Decimal, note string) (*domain.FundEntry, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrBelowMinimum
	}
	if note == "" {
		note = "Manual fund update"
	}
	entry, err := s.queries.CreateFundEntry(ctx, repository.CreateFundEntryParams{
		Amount:    amount,
		EntryType: domain.FundAdd,
		Note:      note,
	})
	if err != nil {
		return nil, fmt.Errorf("create fund entry: %w", err)
	}
	return &entry, nil
}
