package domain

import (
	"strconv"
	"strings"
	"time"
)

// Channel is an independent entry point into the system. Each channel
// carries its own task cooldown policy.
type Channel string

const (
	ChannelWeb  Channel = "web"
	ChannelChat Channel = "chat"
)

// TaskState is the per-(user, channel) cooldown record. last_attempt_at
// is set on every issuance; the challenge fields hold the outstanding
// question until it is answered.
type TaskState struct {
	UserID        int64
	Channel       Channel
	LastAttemptAt time.Time
	TaskType      *string
	Question      *string
	Answer        *string
	RewardPoints  *int64
}

// HasChallenge reports whether an issued question is still awaiting an answer.
func (s *TaskState) HasChallenge() bool {
	return s != nil && s.Answer != nil
}

// CooldownRemaining returns how long until a new task may be issued, or 0
// when the (user, channel) pair is ready. A rejected attempt never feeds
// back into lastAttempt, so the timer is never re-armed by polling.
func CooldownRemaining(lastAttempt time.Time, window time.Duration, now time.Time) time.Duration {
	if lastAttempt.IsZero() {
		return 0
	}
	remaining := window - now.Sub(lastAttempt)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// CheckAnswer verifies a submitted answer against the expected one.
// Numeric answers are integer-exact; textual answers are compared
// case-insensitively with surrounding whitespace trimmed.
func CheckAnswer(expected, submitted string) bool {
	expected = strings.TrimSpace(expected)
	submitted = strings.TrimSpace(submitted)

	if want, err := strconv.ParseInt(expected, 10, 64); err == nil {
		got, err := strconv.ParseInt(submitted, 10, 64)
		return err == nil && got == want
	}
	return strings.EqualFold(expected, submitted)
}
