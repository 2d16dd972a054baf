package implementation

import (
	"context"
	"errors"
	"time"

	"farmmarket-be/internal/entity"
	"farmmarket-be/internal/mapper"
	"farmmarket-be/internal/model"
	"farmmarket-be/internal/repository/contract"
	"farmmarket-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.OrderMapper
}

func NewOrderRepository(db *gorm.DB) contract.OrderRepository {
	return &OrderRepositoryImpl{
		db:     db,
		mapper: mapper.NewOrderMapper(),
	}
}

func (r *OrderRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *OrderRepositoryImpl) Create(ctx context.Context, order *entity.Order) error {
	m := r.mapper.ToModel(order)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*order = *r.mapper.ToEntity(m)
	return nil
}

func (r *OrderRepositoryImpl) Update(ctx context.Context, order *entity.Order) error {
	m := r.mapper.ToModel(order)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*order = *r.mapper.ToEntity(m)
	return nil
}

func (r *OrderRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Order, error) {
	var m model.Order
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *OrderRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Order, error) {
	var models []*model.Order
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Order, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *OrderRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Order{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *OrderRepositoryImpl) HistoryByBuyer(ctx context.Context, buyerId uuid.UUID) ([]*entity.OrderHistory, error) {
	var rows []struct {
		// Order columns
		Id         uuid.UUID
		BuyerId    uuid.UUID
		ProductId  uuid.UUID
		Quantity   int
		TotalPrice float64
		Status     string
		CreatedAt  time.Time
		UpdatedAt  time.Time
		// Joined product columns
		ProductName  string
		ProductPrice float64
		ProductUnit  string
		// Joined review columns (left join, may be absent)
		ReviewId      *uuid.UUID
		ReviewRating  *int
		ReviewComment *string
	}

	err := r.db.WithContext(ctx).
		Table("orders").
		Select(`orders.*,
			products.name AS product_name, products.price AS product_price, products.unit AS product_unit,
			reviews.id AS review_id, reviews.rating AS review_rating, reviews.comment AS review_comment`).
		Joins("JOIN products ON products.id = orders.product_id").
		Joins("LEFT JOIN reviews ON reviews.order_id = orders.id").
		Where("orders.buyer_id = ?", buyerId).
		Order("orders.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	history := make([]*entity.OrderHistory, len(rows))
	for i, row := range rows {
		h := &entity.OrderHistory{
			Order: entity.Order{
				Id:         row.Id,
				BuyerId:    row.BuyerId,
				ProductId:  row.ProductId,
				Quantity:   row.Quantity,
				TotalPrice: row.TotalPrice,
				Status:     entity.OrderStatus(row.Status),
				CreatedAt:  row.CreatedAt,
				UpdatedAt:  row.UpdatedAt,
			},
			ProductName:  row.ProductName,
			ProductPrice: row.ProductPrice,
			ProductUnit:  row.ProductUnit,
		}
		if row.ReviewId != nil {
			h.Review = &entity.Review{
				Id:      *row.ReviewId,
				OrderId: row.Id,
				Rating:  *row.ReviewRating,
				Comment: row.ReviewComment,
			}
		}
		history[i] = h
	}
	return history, nil
}
