package entity

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusAccepted  OrderStatus = "accepted"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type Order struct {
	Id         uuid.UUID
	BuyerId    uuid.UUID
	ProductId  uuid.UUID
	Quantity   int
	TotalPrice float64
	Status     OrderStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// OrderHistory is an order joined with the product it was placed on and the
// buyer's review, if any. Used by the order-view flow and the orders API.
type OrderHistory struct {
	Order        Order
	ProductName  string
	ProductPrice float64
	ProductUnit  string
	Review       *Review
}
