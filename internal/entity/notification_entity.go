package entity

import (
	"time"

	"github.com/google/uuid"
)

// Notification event codes published on the bus and stored per user.
const (
	NotificationOrderPlaced   = "ORDER_PLACED"
	NotificationOrderPaid     = "ORDER_PAID"
	NotificationPriceProposal = "PRICE_PROPOSAL"
	NotificationProductListed = "PRODUCT_LISTED"
)

type Notification struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	ActorId   *uuid.UUID
	TypeCode  string
	Title     string
	Message   string
	IsRead    bool
	ReadAt    *time.Time
	CreatedAt time.Time
}
