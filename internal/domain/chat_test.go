package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChatStateKind(t *testing.T) {
	var missing *ChatState
	require.Equal(t, ChatIdle, missing.Kind())
	require.Equal(t, ChatIdle, (&ChatState{}).Kind())
	require.Equal(t, ChatAwaitingPassword, (&ChatState{State: ChatAwaitingPassword}).Kind())
}
