package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ifund-app/ifund/internal/config"
	"github.com/ifund-app/ifund/internal/domain"
	"github.com/ifund-app/ifund/internal/repository"
)

// TaskService is the per-(user, channel) cooldown machine. Issuing a
// challenge arms the cooldown immediately, so a user who never answers
// still pays the wait. Answering the outstanding challenge is always
// allowed; only new issuance is gated.
type TaskService struct {
	db      *pgxpool.Pool
	queries *repository.Queries
	windows map[domain.Channel]time.Duration
	now     func() time.Time
	newRand func() *rand.Rand
}

func NewTaskService(db *pgxpool.Pool, queries *repository.Queries, chatWindow time.Duration) *TaskService {
	return &TaskService{
		db:      db,
		queries: queries,
		windows: map[domain.Channel]time.Duration{
			domain.ChannelWeb:  config.WebTaskCooldown,
			domain.ChannelChat: chatWindow,
		},
		now: time.Now,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		},
	}
}

// Window returns the cooldown window configured for a channel.
func (s *TaskService) Window(channel domain.Channel) time.Duration {
	return s.windows[channel]
}

// Remaining reports how long until the pair may be issued a new task.
// Non-blocking: a cooling pair gets the wait back, never a sleep.
func (s *TaskService) Remaining(ctx context.Context, userID int64, channel domain.Channel) (time.Duration, error) {
	state, err := s.queries.GetTaskState(ctx, repository.TaskStateKey{UserID: userID, Channel: channel})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("get task state: %w", err)
	}
	return domain.CooldownRemaining(state.LastAttemptAt, s.windows[channel], s.now()), nil
}

// Issue generates a challenge for the pair and arms the cooldown. While
// cooling it fails with a CooldownError carrying the remaining wait and
// leaves the existing timer untouched.
func (s *TaskService) Issue(ctx context.Context, userID int64, channel domain.Channel) (*Challenge, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	qtx := s.queries.WithTx(tx)

	state, err := qtx.GetTaskStateForUpdate(ctx, repository.TaskStateKey{UserID: userID, Channel: channel})
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("lock task state: %w", err)
	}

	if remaining := domain.CooldownRemaining(state.LastAttemptAt, s.windows[channel], s.now()); remaining > 0 {
		return nil, &domain.CooldownError{Remaining: remaining}
	}

	ch := randomChallenge(s.newRand())
	err = qtx.UpsertTaskChallenge(ctx, repository.UpsertTaskChallengeParams{
		UserID:        userID,
		Channel:       channel,
		LastAttemptAt: s.now(),
		TaskType:      ch.Kind,
		Question:      ch.Question,
		Answer:        ch.Answer,
		RewardPoints:  ch.Reward,
	})
	if err != nil {
		return nil, fmt.Errorf("record challenge: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return &ch, nil
}

type AnswerResult struct {
	Correct   bool
	Earned    int64
	NewPoints int64
}

// Answer verifies the outstanding challenge and credits the reward on a
// match. The challenge is consumed either way; the cooldown timestamp
// is left as issued, so answering never extends the wait.
func (s *TaskService) Answer(ctx context.Context, userID int64, channel domain.Channel, submitted string) (AnswerResult, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return AnswerResult{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	qtx := s.queries.WithTx(tx)

	key := repository.TaskStateKey{UserID: userID, Channel: channel}
	state, err := qtx.GetTaskStateForUpdate(ctx, key)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return AnswerResult{}, domain.ErrNoActiveTask
		}
		return AnswerResult{}, fmt.Errorf("lock task state: %w", err)
	}
	if !state.HasChallenge() {
		return AnswerResult{}, domain.ErrNoActiveTask
	}

	if err := qtx.ClearTaskChallenge(ctx, key); err != nil {
		return AnswerResult{}, fmt.Errorf("clear challenge: %w", err)
	}

	result := AnswerResult{}
	if domain.CheckAnswer(*state.Answer, submitted) {
		result.Correct = true
		result.Earned = *state.RewardPoints

		if _, err := qtx.GetUserForUpdate(ctx, userID); err != nil {
			return AnswerResult{}, fmt.Errorf("lock user: %w", err)
		}
		newPoints, err := qtx.UpdateUserPoints(ctx, repository.UpdateUserPointsParams{ID: userID, Delta: result.Earned})
		if err != nil {
			return AnswerResult{}, fmt.Errorf("credit points: %w", err)
		}
		result.NewPoints = newPoints

		err = qtx.CreateTransaction(ctx, repository.CreateTransactionParams{
			UserID:      userID,
			Amount:      decimal.NewFromInt(result.Earned),
			Unit:        domain.TxUnitPoints,
			TxType:      domain.TxTypeCredit,
			Description: fmt.Sprintf("Task reward (%s, %s)", derefOr(state.TaskType, "unknown"), channel),
		})
		if err != nil {
			return AnswerResult{}, fmt.Errorf("create transaction: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return AnswerResult{}, fmt.Errorf("commit: %w", err)
	}
	return result, nil
}

func derefOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
