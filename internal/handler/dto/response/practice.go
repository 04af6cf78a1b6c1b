package response

import (
	"time"

	"studysync-api/internal/usecase/queries"

	"github.com/google/uuid"
)

type PracticeSessionResponse struct {
	ID            uuid.UUID                 `json:"id"`
	UserID        uuid.UUID                 `json:"userId"`
	SetName       string                    `json:"setName"`
	CardCount     int                       `json:"cardCount"`
	Status        string                    `json:"status"`
	StartedAt     time.Time                 `json:"startedAt"`
	CompletedAt   *time.Time                `json:"completedAt,omitempty"`
	PausedTotalMs int64                     `json:"pausedTotalMs"`
	ActiveMs      *int64                    `json:"activeMs,omitempty"`
	CorrectCount  *int                      `json:"correctCount,omitempty"`
	Accuracy      *float64                  `json:"accuracy,omitempty"`
	Attempts      []PracticeAttemptResponse `json:"attempts"`
}

type PracticeAttemptResponse struct {
	CardIndex   int       `json:"cardIndex"`
	FlashcardID uuid.UUID `json:"flashcardId"`
	Correct     bool      `json:"correct"`
	ResponseMs  int       `json:"responseMs"`
	CreatedAt   time.Time `json:"createdAt"`
}

func FromPracticeSessionView(rm *queries.PracticeSessionView) *PracticeSessionResponse {
	attempts := make([]PracticeAttemptResponse, len(rm.Attempts))
	for i, a := range rm.Attempts {
		attempts[i] = PracticeAttemptResponse{
			CardIndex:   a.CardIndex,
			FlashcardID: a.FlashcardID,
			Correct:     a.Correct,
			ResponseMs:  a.ResponseMs,
			CreatedAt:   a.CreatedAt,
		}
	}
	return &PracticeSessionResponse{
		ID:            rm.ID,
		UserID:        rm.UserID,
		SetName:       rm.SetName,
		CardCount:     rm.CardCount,
		Status:        rm.Status,
		StartedAt:     rm.StartedAt,
		CompletedAt:   rm.CompletedAt,
		PausedTotalMs: rm.PausedTotalMs,
		ActiveMs:      rm.ActiveMs,
		CorrectCount:  rm.CorrectCount,
		Accuracy:      rm.Accuracy,
		Attempts:      attempts,
	}
}
