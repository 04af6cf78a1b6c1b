package writerepo

import (
	"context"
	"errors"
	"time"

	"studysync-api/internal/domain/practice"
	"studysync-api/internal/infra"
	"studysync-api/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PracticeRepository struct {
	db db.DBTX
}

func NewPracticeRepository(db db.DBTX) *PracticeRepository {
	return &PracticeRepository{db: db}
}

func (p *PracticeRepository) CreateSession(ctx context.Context, s *practice.Session) error {
	_, err := p.db.Exec(ctx, `
		INSERT INTO practice_sessions (id, user_id, set_name, card_count, status, started_at, paused_at, paused_total_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		s.ID(), s.UserID(), s.SetName(), s.CardCount(), s.Status().String(),
		s.StartedAt(), s.PausedAt(), s.PausedTotal().Milliseconds(),
	)
	if err != nil {
		return wrapWriteErr("failed to create practice session", err)
	}
	return nil
}

func (p *PracticeRepository) FindSessionForUpdate(ctx context.Context, id uuid.UUID) (*practice.Session, error) {
	row := p.db.QueryRow(ctx, `
		SELECT id, user_id, set_name, card_count, status,
		       started_at, paused_at, paused_total_ms, completed_at, active_ms, correct_count
		FROM practice_sessions
		WHERE id = $1
		FOR UPDATE`, id)

	var (
		sessionID, userID uuid.UUID
		setName           string
		cardCount         int
		status            string
		startedAt         time.Time
		pausedAt          *time.Time
		pausedTotalMs     int64
		completedAt       *time.Time
		activeMs          *int64
		correctCount      *int
	)
	err := row.Scan(&sessionID, &userID, &setName, &cardCount, &status,
		&startedAt, &pausedAt, &pausedTotalMs, &completedAt, &activeMs, &correctCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("practice session not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock practice session", err)
	}

	statusVO := practice.Status(status)
	if !statusVO.IsValid() {
		return nil, infra.WrapRepoErr("inconsistent practice session status", nil)
	}
	var activeTime *time.Duration
	if activeMs != nil {
		d := time.Duration(*activeMs) * time.Millisecond
		activeTime = &d
	}

	return practice.ReconstructSession(
		sessionID, userID, setName, cardCount, statusVO,
		startedAt, pausedAt, time.Duration(pausedTotalMs)*time.Millisecond,
		completedAt, activeTime, correctCount,
	), nil
}

func (p *PracticeRepository) UpdateSession(ctx context.Context, s *practice.Session) error {
	var activeMs *int64
	if d := s.ActiveTime(); d != nil {
		ms := d.Milliseconds()
		activeMs = &ms
	}
	tag, err := p.db.Exec(ctx, `
		UPDATE practice_sessions
		SET status = $2, paused_at = $3, paused_total_ms = $4,
		    completed_at = $5, active_ms = $6, correct_count = $7, updated_at = now()
		WHERE id = $1`,
		s.ID(), s.Status().String(), s.PausedAt(), s.PausedTotal().Milliseconds(),
		s.CompletedAt(), activeMs, s.CorrectCount(),
	)
	if err != nil {
		return wrapWriteErr("failed to update practice session", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("practice session not found", nil, infra.KindNotFound)
	}
	return nil
}

// UpsertAttempt keeps one row per card: a re-answer replaces the
// earlier outcome rather than appending a duplicate.
func (p *PracticeRepository) UpsertAttempt(ctx context.Context, a *practice.Attempt) error {
	_, err := p.db.Exec(ctx, `
		INSERT INTO practice_attempts (id, session_id, card_index, flashcard_id, correct, response_ms)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (session_id, card_index)
		DO UPDATE SET flashcard_id = EXCLUDED.flashcard_id,
		              correct = EXCLUDED.correct,
		              response_ms = EXCLUDED.response_ms,
		              created_at = now()`,
		a.ID, a.SessionID, a.CardIndex, a.FlashcardID, a.Correct, a.ResponseMs,
	)
	if err != nil {
		return wrapWriteErr("failed to upsert practice attempt", err)
	}
	return nil
}

func (p *PracticeRepository) CountCorrect(ctx context.Context, sessionID uuid.UUID) (int, error) {
	var count int
	err := p.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM practice_attempts WHERE session_id = $1 AND correct`, sessionID).Scan(&count)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count correct attempts", err)
	}
	return count, nil
}
