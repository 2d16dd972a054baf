// Package flow holds the assistant's per-intent conversation handlers. Each
// handler is a small state machine over the typed accumulators in the chat
// session, reading and writing the marketplace through the narrow Store
// interface.
package flow

import (
	"context"

	"farmmarket-be/internal/entity"

	"github.com/google/uuid"
)

// Conversation is one user turn in flight.
type Conversation struct {
	UserId  uuid.UUID
	Profile *entity.Profile
	Message string
	// Session state as loaded for this turn. Handlers never mutate it;
	// changes go through the Result patch.
	Data entity.SessionData
}

// Result is what a handler hands back: the bot reply plus the session state
// changes the turn produced.
type Result struct {
	Reply string
	Patch entity.SessionPatch
}

// Store is the slice of persistence the flow handlers touch. The assistant
// service implements it over the repositories; tests use a fake.
type Store interface {
	// ProductByCode resolves a public product code with the owning farmer
	// profile attached, or (nil, nil) when no such product exists.
	ProductByCode(ctx context.Context, code int64) (*entity.Product, error)
	// ProductsUnderPrice lists products strictly cheaper than maxPrice,
	// ascending by price. A nil maxPrice means unbounded.
	ProductsUnderPrice(ctx context.Context, maxPrice *float64) ([]*entity.Product, error)
	CreateProduct(ctx context.Context, product *entity.Product) error
	// OrderHistory returns the buyer's orders joined with product and
	// review, newest first.
	OrderHistory(ctx context.Context, buyerId uuid.UUID) ([]*entity.OrderHistory, error)
	// FarmerRatings returns per-product mean rating and review count for
	// products that have at least one review.
	FarmerRatings(ctx context.Context, farmerId uuid.UUID) ([]*entity.ProductRating, error)
	SendMessage(ctx context.Context, message *entity.Message) error
}

// Handler runs one turn of a flow.
type Handler interface {
	Handle(ctx context.Context, conv *Conversation) (*Result, error)
}
