package events

import "time"

// Event type codes published on the bus. Subjects become "events.<code>".
const (
	TypeOrderPlaced   = "ORDER_PLACED"
	TypeOrderPaid     = "ORDER_PAID"
	TypePriceProposal = "PRICE_PROPOSAL"
	TypeProductListed = "PRODUCT_LISTED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "ORDER_PLACED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the plain implementation services construct inline.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}
