package dto

import (
	"time"

	"github.com/google/uuid"
)

type MessageResponse struct {
	Id         uuid.UUID  `json:"id"`
	SenderId   uuid.UUID  `json:"sender_id"`
	ReceiverId uuid.UUID  `json:"receiver_id"`
	Content    string     `json:"content"`
	OrderId    *uuid.UUID `json:"order_id,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}
