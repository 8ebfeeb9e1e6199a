package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestEvaluateSolvency(t *testing.T) {
	d := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }

	tests := []struct {
		name     string
		funds    string
		earnings string
		payouts  string
		warning  bool
	}{
		{"healthy", "1000.00", "400.00", "200.00", false},
		{"exactly covered", "400.00", "400.00", "0.00", false},
		{"underfunded", "399.99", "400.00", "0.00", true},
		{"empty ledgers", "0.00", "0.00", "0.00", false},
		{"negative funds", "-50.00", "0.01", "0.00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := EvaluateSolvency(d(tt.funds), d(tt.earnings), d(tt.payouts))
			require.Equal(t, tt.warning, report.Warning)
			require.True(t, report.TotalFunds.Equal(d(tt.funds)))
			require.True(t, report.MemberEarnings.Equal(d(tt.earnings)))
			require.True(t, report.ApprovedPayouts.Equal(d(tt.payouts)))
		})
	}
}
