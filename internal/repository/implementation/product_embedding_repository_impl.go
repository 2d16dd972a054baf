package implementation

import (
	"context"

	"farmmarket-be/internal/model"
	"farmmarket-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductEmbeddingRepositoryImpl struct {
	db *gorm.DB
}

func NewProductEmbeddingRepository(db *gorm.DB) contract.ProductEmbeddingRepository {
	return &ProductEmbeddingRepositoryImpl{db: db}
}

func (r *ProductEmbeddingRepositoryImpl) Upsert(ctx context.Context, productId uuid.UUID, embedding pgvector.Vector) error {
	m := &model.ProductEmbedding{
		Id:        uuid.New(),
		ProductId: productId,
		Embedding: embedding,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"embedding", "updated_at"}),
	}).Create(m).Error
}

func (r *ProductEmbeddingRepositoryImpl) NearestProductIds(ctx context.Context, embedding pgvector.Vector, limit int) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&model.ProductEmbedding{}).
		Select("product_id").
		Order(clause.OrderBy{Expression: clause.Expr{
			SQL:  "embedding <=> ?",
			Vars: []interface{}{embedding},
		}}).
		Limit(limit).
		Scan(&ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
