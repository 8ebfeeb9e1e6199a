package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/ifund-app/ifund/internal/domain"
)

func TestValidateWithdrawalAmount(t *testing.T) {
	tests := []struct {
		amount  string
		wantErr error
	}{
		{"300.00", nil},
		{"300.01", nil},
		{"1000.00", nil},
		{"299.99", domain.ErrBelowMinimum},
		{"0.00", domain.ErrBelowMinimum},
		{"-5.00", domain.ErrBelowMinimum},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			err := validateWithdrawalAmount(decimal.RequireFromString(tt.amount))
			if tt.wantErr == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
