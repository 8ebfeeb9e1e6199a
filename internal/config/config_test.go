package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/ifund_test")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.HTTPAddr)
	require.Equal(t, "12s", cfg.ChatTaskCooldown.String())
	require.False(t, cfg.ChatEnabled())
}

func TestLoadChatCooldownBounds(t *testing.T) {
	tests := []struct {
		cooldown string
		wantErr  bool
	}{
		{"10s", false},
		{"15s", false},
		{"9s", true},
		{"16s", true},
	}

	for _, tt := range tests {
		t.Run(tt.cooldown, func(t *testing.T) {
			setRequired(t)
			t.Setenv("CHAT_TASK_COOLDOWN", tt.cooldown)

			_, err := Load()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	os.Unsetenv("DATABASE_URL")
	t.Setenv("JWT_SECRET", "test-secret")

	_, err := Load()
	require.Error(t, err)
}

func TestChatEnabled(t *testing.T) {
	setRequired(t)
	t.Setenv("BOT_TOKEN", "123:abc")

	cfg, err := Load()
	require.NoError(t, err)
	require.True(t, cfg.ChatEnabled())
}
