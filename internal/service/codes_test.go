package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ifund-app/ifund/internal/config"
	"github.com/ifund-app/ifund/internal/domain"
)

func TestPolicyByName(t *testing.T) {
	tests := []struct {
		name   string
		want   CodePolicy
		wantOK bool
	}{
		{"user", PolicyUser, true},
		{"", PolicyUser, true},
		{"admin", PolicyAdmin, true},
		{"superuser", CodePolicy{}, false},
	}

	for _, tt := range tests {
		got, ok := PolicyByName(tt.name)
		require.Equal(t, tt.wantOK, ok, "policy %q", tt.name)
		require.Equal(t, tt.want, got, "policy %q", tt.name)
	}
}

func TestRandomCodeFormat(t *testing.T) {
	for _, policy := range []CodePolicy{PolicyUser, PolicyAdmin} {
		t.Run(policy.Name, func(t *testing.T) {
			code, err := randomCode(policy)
			require.NoError(t, err)
			require.True(t, strings.HasPrefix(code, policy.Prefix))
			require.Len(t, code, len(policy.Prefix)+policy.Length)
			for _, c := range code[len(policy.Prefix):] {
				require.Contains(t, codeCharset, string(c))
			}
		})
	}
}

func TestGenerateUniqueCodeRetries(t *testing.T) {
	ctx := context.Background()

	calls := 0
	exists := func(ctx context.Context, code string) (bool, error) {
		calls++
		return calls < 3, nil
	}

	code, err := generateUniqueCode(ctx, PolicyAdmin, exists)
	require.NoError(t, err)
	require.NotEmpty(t, code)
	require.Equal(t, 3, calls)
}

func TestGenerateUniqueCodeExhaustsKeyspace(t *testing.T) {
	ctx := context.Background()

	calls := 0
	exists := func(ctx context.Context, code string) (bool, error) {
		calls++
		return true, nil
	}

	_, err := generateUniqueCode(ctx, PolicyAdmin, exists)
	require.ErrorIs(t, err, domain.ErrExhaustedKeyspace)
	require.Equal(t, config.CodeGenMaxAttempts, calls)
}
