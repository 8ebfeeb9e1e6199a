package domain

import "time"

// ChatStateKind is one step of the chat-channel conversation machine.
// Account linking must complete AwaitingUsername -> AwaitingPassword
// before the task flow is reachable.
type ChatStateKind string

const (
	ChatIdle             ChatStateKind = "idle"
	ChatAwaitingUsername ChatStateKind = "awaiting_username"
	ChatAwaitingPassword ChatStateKind = "awaiting_password"
	ChatAwaitingAnswer   ChatStateKind = "awaiting_answer"
)

// ChatState is the persisted conversation state for one chat sender.
// Payload carries step context (the username typed so far during the
// linking flow). States live in the store, not in process memory, so
// every worker observes the same step.
type ChatState struct {
	SenderID  int64
	State     ChatStateKind
	Payload   string
	UpdatedAt time.Time
}

// Kind returns the state, treating a missing record as Idle.
func (s *ChatState) Kind() ChatStateKind {
	if s == nil || s.State == "" {
		return ChatIdle
	}
	return s.State
}
