package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ChatSession persists one user's assistant conversation. SessionData is the
// typed state blob (current flow + accumulators), Context the recent
// transcript. Version backs the compare-and-swap update in the repository.
type ChatSession struct {
	Id              uuid.UUID                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId          uuid.UUID                   `gorm:"type:uuid;not null;index"`
	Context         datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	SessionData     datatypes.JSON              `gorm:"type:jsonb"`
	Version         int64                       `gorm:"not null;default:0"`
	LastInteraction time.Time                   `gorm:"not null;index"`
	CreatedAt       time.Time                   `gorm:"autoCreateTime"`
}

func (ChatSession) TableName() string {
	return "chat_sessions"
}
