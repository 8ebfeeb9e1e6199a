package repository

import (
	"context"
	"time"

	"github.com/ifund-app/ifund/internal/domain"
)

type TaskStateKey struct {
	UserID  int64
	Channel domain.Channel
}

func (q *Queries) GetTaskState(ctx context.Context, arg TaskStateKey) (domain.TaskState, error) {
	var s domain.TaskState
	err := q.db.QueryRow(ctx, `
		SELECT user_id, channel, last_attempt_at, task_type, question, answer, reward_points
		FROM task_states
		WHERE user_id = $1 AND channel = $2`,
		arg.UserID, arg.Channel,
	).Scan(&s.UserID, &s.Channel, &s.LastAttemptAt, &s.TaskType, &s.Question, &s.Answer, &s.RewardPoints)
	return s, err
}

// GetTaskStateForUpdate locks the cooldown row so that two concurrent
// attempts for the same (user, channel) pair serialize.
func (q *Queries) GetTaskStateForUpdate(ctx context.Context, arg TaskStateKey) (domain.TaskState, error) {
	var s domain.TaskState
	err := q.db.QueryRow(ctx, `
		SELECT user_id, channel, last_attempt_at, task_type, question, answer, reward_points
		FROM task_states
		WHERE user_id = $1 AND channel = $2
		FOR UPDATE`,
		arg.UserID, arg.Channel,
	).Scan(&s.UserID, &s.Channel, &s.LastAttemptAt, &s.TaskType, &s.Question, &s.Answer, &s.RewardPoints)
	return s, err
}

type UpsertTaskChallengeParams struct {
	UserID        int64
	Channel       domain.Channel
	LastAttemptAt time.Time
	TaskType      string
	Question      string
	Answer        string
	RewardPoints  int64
}

// UpsertTaskChallenge records an issuance: the cooldown timestamp and
// the outstanding challenge move together in one statement.
func (q *Queries) UpsertTaskChallenge(ctx context.Context, arg UpsertTaskChallengeParams) error {
	_, err := q.db.Exec(ctx, `
		INSERT INTO task_states (user_id, channel, last_attempt_at, task_type, question, answer, reward_points)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, channel) DO UPDATE
		SET last_attempt_at = EXCLUDED.last_attempt_at,
		    task_type = EXCLUDED.task_type,
		    question = EXCLUDED.question,
		    answer = EXCLUDED.answer,
		    reward_points = EXCLUDED.reward_points`,
		arg.UserID, arg.Channel, arg.LastAttemptAt, arg.TaskType, arg.Question, arg.Answer, arg.RewardPoints,
	)
	return err
}

// ClearTaskChallenge drops the outstanding question but keeps the
// cooldown timestamp, so answering never shortens the wait.
func (q *Queries) ClearTaskChallenge(ctx context.Context, arg TaskStateKey) error {
	_, err := q.db.Exec(ctx, `
		UPDATE task_states
		SET task_type = NULL, question = NULL, answer = NULL, reward_points = NULL
		WHERE user_id = $1 AND channel = $2`,
		arg.UserID, arg.Channel,
	)
	return err
}
