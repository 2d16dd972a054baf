package entity

import (
	"time"

	"github.com/google/uuid"
)

// Product is a listed item owned by a farmer profile. Code is a short public
// number (separate from the uuid primary key) that buyers can type in chat,
// e.g. "negotiate for product 42".
type Product struct {
	Id          uuid.UUID
	Code        int64
	FarmerId    uuid.UUID
	Name        string
	Category    string
	Price       float64
	Quantity    int
	Unit        string
	Location    string
	HarvestDate *time.Time
	Images      []string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Populated when the query preloads the owning profile.
	Farmer *Profile
}

// ProductRating is the per-product analytics row: mean rating over all
// reviews of the product's orders. Only products with at least one review
// are ever materialized.
type ProductRating struct {
	ProductId   uuid.UUID
	Name        string
	AvgRating   float64
	ReviewCount int
}
