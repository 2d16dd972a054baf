package implementation

import (
	"context"
	"errors"

	"farmmarket-be/internal/entity"
	"farmmarket-be/internal/mapper"
	"farmmarket-be/internal/model"
	"farmmarket-be/internal/repository/contract"
	"farmmarket-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ProductMapper
}

func NewProductRepository(db *gorm.DB) contract.ProductRepository {
	return &ProductRepositoryImpl{
		db:     db,
		mapper: mapper.NewProductMapper(),
	}
}

func (r *ProductRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ProductRepositoryImpl) Create(ctx context.Context, product *entity.Product) error {
	m := r.mapper.ToModel(product)
	// Code is assigned by the database sequence.
	if err := r.db.WithContext(ctx).Omit("Code").Create(m).Error; err != nil {
		return err
	}
	// Re-read to pick up the generated code.
	if err := r.db.WithContext(ctx).First(m, "id = ?", m.Id).Error; err != nil {
		return err
	}
	*product = *r.mapper.ToEntity(m)
	return nil
}

func (r *ProductRepositoryImpl) Update(ctx context.Context, product *entity.Product) error {
	m := r.mapper.ToModel(product)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*product = *r.mapper.ToEntity(m)
	return nil
}

func (r *ProductRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Product{}, "id = ?", id).Error
}

func (r *ProductRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Product, error) {
	var m model.Product
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ProductRepositoryImpl) FindOneWithFarmer(ctx context.Context, specs ...specification.Specification) (*entity.Product, error) {
	var m model.Product
	query := r.applySpecifications(r.db.WithContext(ctx).Preload("Farmer"), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ProductRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Product, error) {
	var models []*model.Product
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ProductRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Product{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ProductRepositoryImpl) RatingsByFarmer(ctx context.Context, farmerId uuid.UUID) ([]*entity.ProductRating, error) {
	var rows []struct {
		ProductId   uuid.UUID
		Name        string
		AvgRating   float64
		ReviewCount int
	}

	// Inner joins guarantee every returned product carries at least one
	// review, so the mean is always over a non-empty set.
	err := r.db.WithContext(ctx).
		Table("products").
		Select("products.id AS product_id, products.name, AVG(reviews.rating) AS avg_rating, COUNT(reviews.id) AS review_count").
		Joins("JOIN orders ON orders.product_id = products.id").
		Joins("JOIN reviews ON reviews.order_id = orders.id").
		Where("products.farmer_id = ?", farmerId).
		Group("products.id, products.name").
		Order("products.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	ratings := make([]*entity.ProductRating, len(rows))
	for i, row := range rows {
		ratings[i] = &entity.ProductRating{
			ProductId:   row.ProductId,
			Name:        row.Name,
			AvgRating:   row.AvgRating,
			ReviewCount: row.ReviewCount,
		}
	}
	return ratings, nil
}
