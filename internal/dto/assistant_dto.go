package dto

import (
	"time"

	"github.com/google/uuid"
)

type ChatRequest struct {
	Message string `json:"message" validate:"required,min=1,max=2000"`
}

type ChatResponse struct {
	SessionId uuid.UUID `json:"session_id"`
	Reply     string    `json:"reply"`
}

type SessionResponse struct {
	SessionId       uuid.UUID `json:"session_id"`
	Transcript      []string  `json:"transcript"`
	CurrentFlow     string    `json:"current_flow,omitempty"`
	LastInteraction time.Time `json:"last_interaction"`
}
