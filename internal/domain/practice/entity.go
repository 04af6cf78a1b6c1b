package practice

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptySetName        = errors.New("set name cannot be empty")
	ErrInvalidCardCount    = errors.New("card count must be positive")
	ErrInvalidCardIndex    = errors.New("card index out of range")
	ErrNegativeResponse    = errors.New("response time cannot be negative")
	ErrNotActive           = errors.New("session is not active")
	ErrNotPaused           = errors.New("session is not paused")
	ErrAlreadyCompleted    = errors.New("session is already completed")
	ErrSessionNotCompleted = errors.New("session is not completed")
)

// Session tracks one flashcard practice run. Elapsed study time is
// wall-clock time minus the accumulated paused intervals.
type Session struct {
	id          uuid.UUID
	userID      uuid.UUID
	setName     string
	cardCount   int
	status      Status
	startedAt   time.Time
	pausedAt    *time.Time
	pausedTotal time.Duration
	completedAt *time.Time
	activeTime  *time.Duration
	correctCnt  *int
}

// Attempt records the outcome of one card. The (session, card index)
// pair is unique; re-recording a card replaces the earlier outcome.
type Attempt struct {
	ID          uuid.UUID
	SessionID   uuid.UUID
	CardIndex   int
	FlashcardID uuid.UUID
	Correct     bool
	ResponseMs  int
	CreatedAt   time.Time
}

func NewAttempt(sessionID uuid.UUID, cardIndex int, flashcardID uuid.UUID, correct bool, responseMs int, cardCount int) (*Attempt, error) {
	if cardIndex < 0 || cardIndex >= cardCount {
		return nil, ErrInvalidCardIndex
	}
	if responseMs < 0 {
		return nil, ErrNegativeResponse
	}
	return &Attempt{
		ID:          uuid.New(),
		SessionID:   sessionID,
		CardIndex:   cardIndex,
		FlashcardID: flashcardID,
		Correct:     correct,
		ResponseMs:  responseMs,
	}, nil
}

func NewSession(userID uuid.UUID, setName string, cardCount int, startedAt time.Time) (*Session, error) {
	setName = strings.TrimSpace(setName)
	if setName == "" {
		return nil, ErrEmptySetName
	}
	if cardCount <= 0 {
		return nil, ErrInvalidCardCount
	}
	return &Session{
		id:        uuid.New(),
		userID:    userID,
		setName:   setName,
		cardCount: cardCount,
		status:    StatusActive,
		startedAt: startedAt,
	}, nil
}

func ReconstructSession(
	id, userID uuid.UUID,
	setName string,
	cardCount int,
	status Status,
	startedAt time.Time,
	pausedAt *time.Time,
	pausedTotal time.Duration,
	completedAt *time.Time,
	activeTime *time.Duration,
	correctCnt *int,
) *Session {
	return &Session{
		id:          id,
		userID:      userID,
		setName:     setName,
		cardCount:   cardCount,
		status:      status,
		startedAt:   startedAt,
		pausedAt:    pausedAt,
		pausedTotal: pausedTotal,
		completedAt: completedAt,
		activeTime:  activeTime,
		correctCnt:  correctCnt,
	}
}

func (s *Session) Pause(now time.Time) error {
	if s.status == StatusCompleted {
		return ErrAlreadyCompleted
	}
	if s.status != StatusActive {
		return ErrNotActive
	}
	s.status = StatusPaused
	s.pausedAt = &now
	return nil
}

func (s *Session) Resume(now time.Time) error {
	if s.status == StatusCompleted {
		return ErrAlreadyCompleted
	}
	if s.status != StatusPaused || s.pausedAt == nil {
		return ErrNotPaused
	}
	s.pausedTotal += now.Sub(*s.pausedAt)
	s.pausedAt = nil
	s.status = StatusActive
	return nil
}

// ActiveTimeAt returns study time excluding paused intervals, including
// the current pause if one is open.
func (s *Session) ActiveTimeAt(now time.Time) time.Duration {
	if s.status == StatusCompleted && s.activeTime != nil {
		return *s.activeTime
	}
	paused := s.pausedTotal
	if s.pausedAt != nil {
		paused += now.Sub(*s.pausedAt)
	}
	active := now.Sub(s.startedAt) - paused
	if active < 0 {
		active = 0
	}
	return active
}

// Complete freezes the session totals. The caller supplies the correct
// count computed from the persisted attempt rows, which are the source
// of truth for the summary.
func (s *Session) Complete(now time.Time, correctCount int) error {
	if s.status == StatusCompleted {
		return ErrAlreadyCompleted
	}
	if s.status == StatusPaused && s.pausedAt != nil {
		s.pausedTotal += now.Sub(*s.pausedAt)
		s.pausedAt = nil
	}
	active := s.ActiveTimeAt(now)
	s.status = StatusCompleted
	s.completedAt = &now
	s.activeTime = &active
	s.correctCnt = &correctCount
	return nil
}

// Accuracy is correct answers over total cards, 0..1. Only meaningful
// once completed.
func (s *Session) Accuracy() (float64, error) {
	if s.status != StatusCompleted || s.correctCnt == nil {
		return 0, ErrSessionNotCompleted
	}
	return float64(*s.correctCnt) / float64(s.cardCount), nil
}

func (s *Session) ID() uuid.UUID              { return s.id }
func (s *Session) UserID() uuid.UUID          { return s.userID }
func (s *Session) SetName() string            { return s.setName }
func (s *Session) CardCount() int             { return s.cardCount }
func (s *Session) Status() Status             { return s.status }
func (s *Session) StartedAt() time.Time       { return s.startedAt }
func (s *Session) PausedAt() *time.Time       { return s.pausedAt }
func (s *Session) PausedTotal() time.Duration { return s.pausedTotal }
func (s *Session) CompletedAt() *time.Time    { return s.completedAt }
func (s *Session) ActiveTime() *time.Duration { return s.activeTime }
func (s *Session) CorrectCount() *int         { return s.correctCnt }
