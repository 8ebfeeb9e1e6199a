package repository

import (
	"context"
	"time"

	"github.com/ifund-app/ifund/internal/domain"
)

func (q *Queries) GetChatState(ctx context.Context, senderID int64) (domain.ChatState, error) {
	var s domain.ChatState
	err := q.db.QueryRow(ctx,
		`SELECT sender_id, state, payload, updated_at FROM chat_states WHERE sender_id = $1`,
		senderID,
	).Scan(&s.SenderID, &s.State, &s.Payload, &s.UpdatedAt)
	return s, err
}

type UpsertChatStateParams struct {
	SenderID int64
	State    domain.ChatStateKind
	Payload  string
}

func (q *Queries) UpsertChatState(ctx context.Context, arg UpsertChatStateParams) error {
	_, err := q.db.Exec(ctx, `
		INSERT INTO chat_states (sender_id, state, payload, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (sender_id) DO UPDATE
		SET state = EXCLUDED.state, payload = EXCLUDED.payload, updated_at = now()`,
		arg.SenderID, arg.State, arg.Payload,
	)
	return err
}

// ResetStaleChatStates drops abandoned conversations back to idle so a
// sender who walked away mid-flow gets the fallback prompt next time.
func (q *Queries) ResetStaleChatStates(ctx context.Context, olderThan time.Time) (int64, error) {
	tag, err := q.db.Exec(ctx, `
		UPDATE chat_states
		SET state = $1, payload = '', updated_at = now()
		WHERE state <> $1 AND updated_at < $2`,
		domain.ChatIdle, olderThan,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
