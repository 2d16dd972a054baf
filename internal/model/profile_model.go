package model

import (
	"time"

	"github.com/google/uuid"
)

// Profile shares its primary key with users.id, one row per account.
type Profile struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName  string    `gorm:"type:varchar(255);not null"`
	AvatarURL *string   `gorm:"type:text"`
	Phone     *string   `gorm:"type:varchar(30)"`
	Address   *string   `gorm:"type:text"`
	IsFarmer  bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Profile) TableName() string {
	return "profiles"
}
