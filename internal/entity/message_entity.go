package entity

import (
	"time"

	"github.com/google/uuid"
)

// Message is a direct message between two profiles. Negotiation proposals
// from the assistant are delivered as messages to the seller. Append-only.
type Message struct {
	Id         uuid.UUID
	SenderId   uuid.UUID
	ReceiverId uuid.UUID
	Content    string
	OrderId    *uuid.UUID
	CreatedAt  time.Time
}
