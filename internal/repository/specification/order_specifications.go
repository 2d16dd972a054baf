package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByBuyerID struct {
	BuyerID uuid.UUID
}

func (s ByBuyerID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("buyer_id = ?", s.BuyerID)
}

type ByOrderID struct {
	OrderID uuid.UUID
}

func (s ByOrderID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("order_id = ?", s.OrderID)
}

type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}
