package web

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ifund-app/ifund/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	user := &domain.User{ID: 42, IsAdmin: true}

	token, err := CreateToken("secret", user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, isAdmin, err := ParseClaims("secret", token)
	require.NoError(t, err)
	require.Equal(t, int64(42), userID)
	require.True(t, isAdmin)
}

func TestParseClaimsRejectsWrongSecret(t *testing.T) {
	token, err := CreateToken("secret", &domain.User{ID: 1})
	require.NoError(t, err)

	_, _, err = ParseClaims("other-secret", token)
	require.Error(t, err)
}

func TestParseClaimsRejectsGarbage(t *testing.T) {
	_, _, err := ParseClaims("secret", "not.a.token")
	require.Error(t, err)
}
