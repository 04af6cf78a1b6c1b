package request

import (
	"github.com/google/uuid"
)

type StartPracticeRequest struct {
	SetName   string `json:"set_name" binding:"required,max=200"`
	CardCount int    `json:"card_count" binding:"required,min=1"`
}

type RecordAttemptRequest struct {
	CardIndex   int       `json:"card_index" binding:"min=0"`
	FlashcardID uuid.UUID `json:"flashcard_id" binding:"required"`
	Correct     bool      `json:"correct"`
	ResponseMs  int       `json:"response_ms" binding:"min=0"`
}

// CompletePracticeRequest carries the client's final attempt batch so
// outcomes recorded while offline are reconciled before the summary is
// computed. Attempts may be empty when everything was recorded live.
type CompletePracticeRequest struct {
	Attempts []RecordAttemptRequest `json:"attempts" binding:"omitempty,dive"`
}
