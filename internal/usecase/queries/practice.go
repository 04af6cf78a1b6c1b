package queries

import (
	"context"

	"studysync-api/internal/infra"
	"studysync-api/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrPracticeSessionNotFound = errs.New("practice session not found")
	ErrNotSessionOwner         = errs.New("practice session belongs to another user")
)

type PracticeReadStore interface {
	FindSessionByID(ctx context.Context, id uuid.UUID) (*PracticeSessionView, error)
	FindAttempts(ctx context.Context, sessionID uuid.UUID) ([]PracticeAttemptView, error)
}

type PracticeQueries interface {
	// GetSession returns the session with its attempts; actor must own
	// the session.
	GetSession(ctx context.Context, actor uuid.UUID, id uuid.UUID) (*PracticeSessionView, error)
}

type practiceQueriesImpl struct {
	store PracticeReadStore
}

func NewPracticeQueries(store PracticeReadStore) PracticeQueries {
	return &practiceQueriesImpl{store: store}
}

func (q *practiceQueriesImpl) GetSession(ctx context.Context, actor uuid.UUID, id uuid.UUID) (*PracticeSessionView, error) {
	view, err := q.store.FindSessionByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrPracticeSessionNotFound
		}
		return nil, err
	}
	if view.UserID != actor {
		return nil, ErrNotSessionOwner
	}

	attempts, err := q.store.FindAttempts(ctx, id)
	if err != nil {
		return nil, err
	}
	view.Attempts = attempts

	if view.CorrectCount != nil && view.CardCount > 0 {
		accuracy := float64(*view.CorrectCount) / float64(view.CardCount)
		view.Accuracy = &accuracy
	}
	return view, nil
}
