package service

import (
	"math/rand/v2"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestDrawConversionCredit(t *testing.T) {
	t.Run("pins the low end", func(t *testing.T) {
		credit := drawConversionCredit(func(int64) int64 { return 0 })
		require.True(t, credit.Equal(decimal.RequireFromString("2.00")), "got %s", credit)
	})

	t.Run("pins the high end", func(t *testing.T) {
		credit := drawConversionCredit(func(n int64) int64 { return n - 1 })
		require.True(t, credit.Equal(decimal.RequireFromString("2.50")), "got %s", credit)
	})

	t.Run("stays within range", func(t *testing.T) {
		low := decimal.RequireFromString("2.00")
		high := decimal.RequireFromString("2.50")
		for i := 0; i < 200; i++ {
			credit := drawConversionCredit(rand.Int64N)
			require.True(t, credit.GreaterThanOrEqual(low), "got %s", credit)
			require.True(t, credit.LessThanOrEqual(high), "got %s", credit)
			require.LessOrEqual(t, int32(-2), credit.Exponent())
		}
	})
}
