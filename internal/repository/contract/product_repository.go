package contract

import (
	"context"

	"farmmarket-be/internal/entity"
	"farmmarket-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Product, error)
	// FindOneWithFarmer preloads the owning profile; the negotiation flow
	// needs the seller id alongside the product.
	FindOneWithFarmer(ctx context.Context, specs ...specification.Specification) (*entity.Product, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Product, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// RatingsByFarmer aggregates mean rating and review count per product for
	// one farmer, inner-joining reviews so only reviewed products appear.
	RatingsByFarmer(ctx context.Context, farmerId uuid.UUID) ([]*entity.ProductRating, error)
}

type ProductEmbeddingRepository interface {
	Upsert(ctx context.Context, productId uuid.UUID, embedding pgvector.Vector) error
	// NearestProductIds returns product ids ordered by cosine distance to the
	// query vector.
	NearestProductIds(ctx context.Context, embedding pgvector.Vector, limit int) ([]uuid.UUID, error)
}
