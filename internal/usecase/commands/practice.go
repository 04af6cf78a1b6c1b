package commands

import (
	"context"

	"studysync-api/internal/domain/practice"
	reqdto "studysync-api/internal/handler/dto/request"
	"studysync-api/internal/infra"
	"studysync-api/internal/pkg/clock"
	"studysync-api/internal/pkg/errs"
	"studysync-api/internal/usecase/queries"
	"studysync-api/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound     = errs.New("practice session not found")
	ErrNotSessionOwner     = errs.New("practice session belongs to another user")
	ErrSessionStateInvalid = errs.New("invalid session state for this operation")
	ErrAttemptInvalid      = errs.New("invalid attempt payload")
)

type PracticeCommands interface {
	StartSession(ctx context.Context, req reqdto.StartPracticeRequest, userID uuid.UUID) (*queries.PracticeSessionView, error)
	PauseSession(ctx context.Context, id, userID uuid.UUID) (*queries.PracticeSessionView, error)
	ResumeSession(ctx context.Context, id, userID uuid.UUID) (*queries.PracticeSessionView, error)
	// RecordAttempt stores one card outcome. Recording the same card
	// index again replaces the earlier outcome.
	RecordAttempt(ctx context.Context, id, userID uuid.UUID, req reqdto.RecordAttemptRequest) error
	// CompleteSession reconciles the client's final attempt batch into
	// the ledger, then freezes the session. The summary is computed
	// from the persisted rows, not from client-reported totals.
	CompleteSession(ctx context.Context, id, userID uuid.UUID, req reqdto.CompletePracticeRequest) (*queries.PracticeSessionView, error)
}

type practiceCommandsImpl struct {
	uow       shared.UnitOfWork
	readStore queries.PracticeReadStore
	clock     clock.Clock
}

func NewPracticeCommands(uow shared.UnitOfWork, readStore queries.PracticeReadStore, clock clock.Clock) PracticeCommands {
	return &practiceCommandsImpl{
		uow:       uow,
		readStore: readStore,
		clock:     clock,
	}
}

func (p *practiceCommandsImpl) StartSession(ctx context.Context, req reqdto.StartPracticeRequest, userID uuid.UUID) (*queries.PracticeSessionView, error) {
	session, err := practice.NewSession(userID, req.SetName, req.CardCount, p.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	err = p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Practice().CreateSession(ctx, session); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return p.loadView(ctx, session.ID())
}

func (p *practiceCommandsImpl) PauseSession(ctx context.Context, id, userID uuid.UUID) (*queries.PracticeSessionView, error) {
	return p.transition(ctx, id, userID, func(s *practice.Session) error {
		return s.Pause(p.clock.Now())
	})
}

func (p *practiceCommandsImpl) ResumeSession(ctx context.Context, id, userID uuid.UUID) (*queries.PracticeSessionView, error) {
	return p.transition(ctx, id, userID, func(s *practice.Session) error {
		return s.Resume(p.clock.Now())
	})
}

func (p *practiceCommandsImpl) RecordAttempt(ctx context.Context, id, userID uuid.UUID, req reqdto.RecordAttemptRequest) error {
	return p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		session, err := p.lockOwnedSession(ctx, tx, id, userID)
		if err != nil {
			return err
		}
		if session.Status() == practice.StatusCompleted {
			return errs.Mark(practice.ErrAlreadyCompleted, ErrSessionStateInvalid)
		}

		attempt, err := practice.NewAttempt(id, req.CardIndex, req.FlashcardID, req.Correct, req.ResponseMs, session.CardCount())
		if err != nil {
			return errs.Mark(err, ErrAttemptInvalid)
		}
		if err := tx.Practice().UpsertAttempt(ctx, attempt); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func (p *practiceCommandsImpl) CompleteSession(ctx context.Context, id, userID uuid.UUID, req reqdto.CompletePracticeRequest) (*queries.PracticeSessionView, error) {
	err := p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		session, err := p.lockOwnedSession(ctx, tx, id, userID)
		if err != nil {
			return err
		}

		for _, a := range req.Attempts {
			attempt, err := practice.NewAttempt(id, a.CardIndex, a.FlashcardID, a.Correct, a.ResponseMs, session.CardCount())
			if err != nil {
				return errs.Mark(err, ErrAttemptInvalid)
			}
			if err := tx.Practice().UpsertAttempt(ctx, attempt); err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
		}

		correct, err := tx.Practice().CountCorrect(ctx, id)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if err := session.Complete(p.clock.Now(), correct); err != nil {
			return errs.Mark(err, ErrSessionStateInvalid)
		}
		if err := tx.Practice().UpdateSession(ctx, session); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return p.loadView(ctx, id)
}

func (p *practiceCommandsImpl) transition(ctx context.Context, id, userID uuid.UUID, apply func(*practice.Session) error) (*queries.PracticeSessionView, error) {
	err := p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		session, err := p.lockOwnedSession(ctx, tx, id, userID)
		if err != nil {
			return err
		}
		if err := apply(session); err != nil {
			return errs.Mark(err, ErrSessionStateInvalid)
		}
		if err := tx.Practice().UpdateSession(ctx, session); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return p.loadView(ctx, id)
}

func (p *practiceCommandsImpl) lockOwnedSession(ctx context.Context, tx shared.Tx, id, userID uuid.UUID) (*practice.Session, error) {
	session, err := tx.Practice().FindSessionForUpdate(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if session.UserID() != userID {
		return nil, ErrNotSessionOwner
	}
	return session, nil
}

func (p *practiceCommandsImpl) loadView(ctx context.Context, id uuid.UUID) (*queries.PracticeSessionView, error) {
	view, err := p.readStore.FindSessionByID(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	attempts, err := p.readStore.FindAttempts(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	view.Attempts = attempts
	if view.CorrectCount != nil && view.CardCount > 0 {
		accuracy := float64(*view.CorrectCount) / float64(view.CardCount)
		view.Accuracy = &accuracy
	}
	return view, nil
}
