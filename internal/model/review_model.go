package model

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderId    uuid.UUID `gorm:"type:uuid;not null;index"`
	ReviewerId uuid.UUID `gorm:"type:uuid;not null;index"`
	Rating     int       `gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment    *string   `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (Review) TableName() string {
	return "reviews"
}
