package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required,min=2,max=150"`
	Category    string   `json:"category" validate:"required"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	Quantity    int      `json:"quantity" validate:"required,gt=0"`
	Unit        string   `json:"unit" validate:"required"`
	Location    string   `json:"location" validate:"required"`
	HarvestDate *string  `json:"harvest_date" validate:"omitempty,datetime=2006-01-02"`
	Images      []string `json:"images" validate:"omitempty,dive,url"`
	Description *string  `json:"description"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=2,max=150"`
	Category    *string  `json:"category"`
	Price       *float64 `json:"price" validate:"omitempty,gt=0"`
	Quantity    *int     `json:"quantity" validate:"omitempty,gte=0"`
	Unit        *string  `json:"unit"`
	Location    *string  `json:"location"`
	HarvestDate *string  `json:"harvest_date" validate:"omitempty,datetime=2006-01-02"`
	Images      []string `json:"images" validate:"omitempty,dive,url"`
	Description *string  `json:"description"`
}

type ProductResponse struct {
	Id          uuid.UUID  `json:"id"`
	Code        int64      `json:"code"`
	FarmerId    uuid.UUID  `json:"farmer_id"`
	FarmerName  string     `json:"farmer_name,omitempty"`
	Name        string     `json:"name"`
	Category    string     `json:"category"`
	Price       float64    `json:"price"`
	Quantity    int        `json:"quantity"`
	Unit        string     `json:"unit"`
	Location    string     `json:"location"`
	HarvestDate *time.Time `json:"harvest_date,omitempty"`
	Images      []string   `json:"images"`
	Description string     `json:"description,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type ListProductsQuery struct {
	Category string  `query:"category"`
	Location string  `query:"location"`
	MaxPrice float64 `query:"max_price"`
	Page     int     `query:"page"`
	Limit    int     `query:"limit"`
}

// PublishEmbedProductMessage is the embedding pipeline payload.
type PublishEmbedProductMessage struct {
	ProductId uuid.UUID `json:"product_id"`
}

type SemanticSearchRequest struct {
	Query string `json:"query" validate:"required,min=2"`
	Limit int    `json:"limit" validate:"omitempty,gte=1,lte=50"`
}
