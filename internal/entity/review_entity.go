package entity

import (
	"time"

	"github.com/google/uuid"
)

// Review is a buyer's rating of a completed order. Rating is bounded 1..5.
type Review struct {
	Id         uuid.UUID
	OrderId    uuid.UUID
	ReviewerId uuid.UUID
	Rating     int
	Comment    *string
	CreatedAt  time.Time
}
