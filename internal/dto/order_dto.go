package dto

import (
	"time"

	"github.com/google/uuid"
)

type CheckoutRequest struct {
	ProductId uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

type OrderResponse struct {
	Id         uuid.UUID `json:"id"`
	ProductId  uuid.UUID `json:"product_id"`
	Quantity   int       `json:"quantity"`
	TotalPrice float64   `json:"total_price"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

type OrderHistoryResponse struct {
	Order        OrderResponse   `json:"order"`
	ProductName  string          `json:"product_name"`
	ProductPrice float64         `json:"product_price"`
	ProductUnit  string          `json:"product_unit"`
	Review       *ReviewResponse `json:"review,omitempty"`
}

type ReviewRequest struct {
	OrderId uuid.UUID `json:"order_id" validate:"required"`
	Rating  int       `json:"rating" validate:"required,gte=1,lte=5"`
	Comment *string   `json:"comment" validate:"omitempty,max=1000"`
}

type ReviewResponse struct {
	Id        uuid.UUID `json:"id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
