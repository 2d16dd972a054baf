package entity

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the marketplace identity shown to other users. One per account,
// created together with the User row and sharing its id.
type Profile struct {
	Id        uuid.UUID
	FullName  string
	AvatarURL *string
	Phone     *string
	Address   *string
	IsFarmer  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
