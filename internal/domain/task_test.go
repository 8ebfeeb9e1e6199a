package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCooldownRemaining(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	window := 30 * time.Second

	tests := []struct {
		name        string
		lastAttempt time.Time
		want        time.Duration
	}{
		{"never attempted", time.Time{}, 0},
		{"just attempted", now, window},
		{"halfway through", now.Add(-15 * time.Second), 15 * time.Second},
		{"exactly expired", now.Add(-window), 0},
		{"long expired", now.Add(-time.Hour), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, CooldownRemaining(tt.lastAttempt, window, now))
		})
	}
}

func TestCheckAnswer(t *testing.T) {
	tests := []struct {
		name      string
		expected  string
		submitted string
		want      bool
	}{
		{"exact numeric", "42", "42", true},
		{"numeric with spaces", "42", "  42  ", true},
		{"numeric mismatch", "42", "43", false},
		{"numeric vs text", "42", "forty-two", false},
		{"numeric leading zero", "7", "07", true},
		{"text exact", "blue", "blue", true},
		{"text case insensitive", "Blue", "bLUE", true},
		{"text with spaces", "blue", " blue ", true},
		{"text mismatch", "blue", "red", false},
		{"empty submission", "blue", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, CheckAnswer(tt.expected, tt.submitted))
		})
	}
}

func TestTaskStateHasChallenge(t *testing.T) {
	var nilState *TaskState
	require.False(t, nilState.HasChallenge())

	answer := "42"
	require.False(t, (&TaskState{}).HasChallenge())
	require.True(t, (&TaskState{Answer: &answer}).HasChallenge())
}
