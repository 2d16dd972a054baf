package model

import (
	"time"

	"github.com/google/uuid"
)

type Message struct {
	Id         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SenderId   uuid.UUID  `gorm:"type:uuid;not null;index"`
	ReceiverId uuid.UUID  `gorm:"type:uuid;not null;index"`
	Content    string     `gorm:"type:text;not null"`
	OrderId    *uuid.UUID `gorm:"type:uuid"`
	CreatedAt  time.Time  `gorm:"autoCreateTime"`
}

func (Message) TableName() string {
	return "messages"
}
