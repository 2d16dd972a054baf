package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByUserID struct {
	UserID uuid.UUID
}

func (s ByUserID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

// ParticipantsAre matches messages exchanged between two profiles in either
// direction.
type ParticipantsAre struct {
	A uuid.UUID
	B uuid.UUID
}

func (s ParticipantsAre) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(
		"(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
		s.A, s.B, s.B, s.A,
	)
}
