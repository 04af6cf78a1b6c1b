package readstore

import (
	"context"
	"errors"

	"studysync-api/internal/infra"
	"studysync-api/internal/infra/db"
	"studysync-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PracticeReadStore struct {
	db db.DBTX
}

func NewPracticeReadStore(db db.DBTX) *PracticeReadStore {
	return &PracticeReadStore{db: db}
}

func (p *PracticeReadStore) FindSessionByID(ctx context.Context, id uuid.UUID) (*queries.PracticeSessionView, error) {
	row := p.db.QueryRow(ctx, `
		SELECT id, user_id, set_name, card_count, status,
		       started_at, completed_at, paused_total_ms, active_ms, correct_count
		FROM practice_sessions
		WHERE id = $1`, id)

	var view queries.PracticeSessionView
	err := row.Scan(
		&view.ID, &view.UserID, &view.SetName, &view.CardCount, &view.Status,
		&view.StartedAt, &view.CompletedAt, &view.PausedTotalMs, &view.ActiveMs, &view.CorrectCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("practice session not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find practice session", err)
	}
	return &view, nil
}

func (p *PracticeReadStore) FindAttempts(ctx context.Context, sessionID uuid.UUID) ([]queries.PracticeAttemptView, error) {
	rows, err := p.db.Query(ctx, `
		SELECT card_index, flashcard_id, correct, response_ms, created_at
		FROM practice_attempts
		WHERE session_id = $1
		ORDER BY card_index`, sessionID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list practice attempts", err)
	}
	defer rows.Close()

	attempts := []queries.PracticeAttemptView{}
	for rows.Next() {
		var view queries.PracticeAttemptView
		err := rows.Scan(&view.CardIndex, &view.FlashcardID, &view.Correct, &view.ResponseMs, &view.CreatedAt)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan practice attempt", err)
		}
		attempts = append(attempts, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate practice attempts", err)
	}
	return attempts, nil
}
