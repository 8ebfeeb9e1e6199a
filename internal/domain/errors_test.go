package domain

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAsCooldown(t *testing.T) {
	ce := &CooldownError{Remaining: 7 * time.Second}

	got, ok := AsCooldown(ce)
	require.True(t, ok)
	require.Equal(t, 7*time.Second, got.Remaining)

	wrapped := fmt.Errorf("issue task: %w", ce)
	got, ok = AsCooldown(wrapped)
	require.True(t, ok)
	require.Equal(t, 7*time.Second, got.Remaining)

	_, ok = AsCooldown(ErrNoActiveTask)
	require.False(t, ok)
}
