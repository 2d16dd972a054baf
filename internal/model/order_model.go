package model

import (
	"time"

	"github.com/google/uuid"
)

type Order struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BuyerId    uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductId  uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantity   int       `gorm:"not null"`
	TotalPrice float64   `gorm:"type:numeric(12,2);not null"`
	Status     string    `gorm:"type:varchar(30);not null;default:'pending'"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`

	Product *Product `gorm:"foreignKey:ProductId;references:Id"`
}

func (Order) TableName() string {
	return "orders"
}
