package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByCode struct {
	Code int64
}

func (s ByCode) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("code = ?", s.Code)
}

type ByFarmerID struct {
	FarmerID uuid.UUID
}

func (s ByFarmerID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("farmer_id = ?", s.FarmerID)
}

type ByCategory struct {
	Category string
}

func (s ByCategory) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("category = ?", s.Category)
}

type ByLocation struct {
	Location string
}

func (s ByLocation) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("location ILIKE ?", "%"+s.Location+"%")
}

// PriceBelow keeps products strictly cheaper than Max. The assistant's
// search flow depends on the strict inequality.
type PriceBelow struct {
	Max float64
}

func (s PriceBelow) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("price < ?", s.Max)
}

// InStock filters out sold-out listings.
type InStock struct{}

func (s InStock) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("quantity > 0")
}
