package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"farmmarket-be/internal/dto"
	"farmmarket-be/internal/entity"
	"farmmarket-be/internal/pkg/logger"
	"farmmarket-be/internal/repository/specification"
	"farmmarket-be/internal/repository/unitofwork"
	"farmmarket-be/pkg/embedding"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

const defaultPageSize = 20

type IProductService interface {
	CreateProduct(ctx context.Context, farmerId uuid.UUID, req *dto.CreateProductRequest) (*dto.ProductResponse, error)
	UpdateProduct(ctx context.Context, farmerId uuid.UUID, productId uuid.UUID, req *dto.UpdateProductRequest) (*dto.ProductResponse, error)
	DeleteProduct(ctx context.Context, farmerId uuid.UUID, productId uuid.UUID) error
	GetProduct(ctx context.Context, productId uuid.UUID) (*dto.ProductResponse, error)
	GetProductByCode(ctx context.Context, code int64) (*dto.ProductResponse, error)
	ListProducts(ctx context.Context, query *dto.ListProductsQuery) ([]*dto.ProductResponse, error)
	MyProducts(ctx context.Context, farmerId uuid.UUID) ([]*dto.ProductResponse, error)
	SemanticSearch(ctx context.Context, req *dto.SemanticSearchRequest) ([]*dto.ProductResponse, error)
}

type productService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	embedProvider    embedding.EmbeddingProvider
	log              logger.ILogger
}

func NewProductService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	embedProvider embedding.EmbeddingProvider,
	log logger.ILogger,
) IProductService {
	return &productService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		embedProvider:    embedProvider,
		log:              log,
	}
}

func (s *productService) CreateProduct(ctx context.Context, farmerId uuid.UUID, req *dto.CreateProductRequest) (*dto.ProductResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	profile, err := uow.ProfileRepository().FindOne(ctx, specification.ByID{ID: farmerId})
	if err != nil {
		return nil, err
	}
	if profile == nil || !profile.IsFarmer {
		return nil, errors.New("only farmers can list products")
	}

	now := time.Now()
	product := &entity.Product{
		Id:          uuid.New(),
		FarmerId:    farmerId,
		Name:        req.Name,
		Category:    req.Category,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Unit:        req.Unit,
		Location:    req.Location,
		Images:      req.Images,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.HarvestDate != nil {
		parsed, err := time.Parse("2006-01-02", *req.HarvestDate)
		if err != nil {
			return nil, errors.New("invalid harvest date")
		}
		product.HarvestDate = &parsed
	}

	if err := uow.ProductRepository().Create(ctx, product); err != nil {
		return nil, err
	}

	s.requestEmbedding(ctx, product.Id)

	product.Farmer = profile
	return toProductResponse(product), nil
}

func (s *productService) UpdateProduct(ctx context.Context, farmerId uuid.UUID, productId uuid.UUID, req *dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	product, err := uow.ProductRepository().FindOne(ctx, specification.ByID{ID: productId})
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.New("product not found")
	}
	if product.FarmerId != farmerId {
		return nil, errors.New("you do not own this product")
	}

	reembed := false
	if req.Name != nil {
		product.Name = *req.Name
		reembed = true
	}
	if req.Category != nil {
		product.Category = *req.Category
		reembed = true
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Quantity != nil {
		product.Quantity = *req.Quantity
	}
	if req.Unit != nil {
		product.Unit = *req.Unit
	}
	if req.Location != nil {
		product.Location = *req.Location
		reembed = true
	}
	if req.HarvestDate != nil {
		parsed, err := time.Parse("2006-01-02", *req.HarvestDate)
		if err != nil {
			return nil, errors.New("invalid harvest date")
		}
		product.HarvestDate = &parsed
	}
	if req.Images != nil {
		product.Images = req.Images
	}
	if req.Description != nil {
		product.Description = req.Description
		reembed = true
	}
	product.UpdatedAt = time.Now()

	if err := uow.ProductRepository().Update(ctx, product); err != nil {
		return nil, err
	}

	if reembed {
		s.requestEmbedding(ctx, product.Id)
	}

	return toProductResponse(product), nil
}

func (s *productService) DeleteProduct(ctx context.Context, farmerId uuid.UUID, productId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	product, err := uow.ProductRepository().FindOne(ctx, specification.ByID{ID: productId})
	if err != nil {
		return err
	}
	if product == nil {
		return errors.New("product not found")
	}
	if product.FarmerId != farmerId {
		return errors.New("you do not own this product")
	}

	return uow.ProductRepository().Delete(ctx, productId)
}

func (s *productService) GetProduct(ctx context.Context, productId uuid.UUID) (*dto.ProductResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	product, err := uow.ProductRepository().FindOneWithFarmer(ctx, specification.ByID{ID: productId})
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.New("product not found")
	}
	return toProductResponse(product), nil
}

func (s *productService) GetProductByCode(ctx context.Context, code int64) (*dto.ProductResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	product, err := uow.ProductRepository().FindOneWithFarmer(ctx, specification.ByCode{Code: code})
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.New("product not found")
	}
	return toProductResponse(product), nil
}

func (s *productService) ListProducts(ctx context.Context, query *dto.ListProductsQuery) ([]*dto.ProductResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{specification.InStock{}}
	if query.Category != "" {
		specs = append(specs, specification.ByCategory{Category: query.Category})
	}
	if query.Location != "" {
		specs = append(specs, specification.ByLocation{Location: query.Location})
	}
	if query.MaxPrice > 0 {
		specs = append(specs, specification.PriceBelow{Max: query.MaxPrice})
	}

	limit := query.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	page := query.Page
	if page <= 0 {
		page = 1
	}
	specs = append(specs,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	)

	products, err := uow.ProductRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ProductResponse, 0, len(products))
	for _, p := range products {
		res = append(res, toProductResponse(p))
	}
	return res, nil
}

// MyProducts lists the farmer's own listings, sold-out ones included, so the
// seller can restock or delete them.
func (s *productService) MyProducts(ctx context.Context, farmerId uuid.UUID) ([]*dto.ProductResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	products, err := uow.ProductRepository().FindAll(ctx,
		specification.ByFarmerID{FarmerID: farmerId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ProductResponse, 0, len(products))
	for _, p := range products {
		res = append(res, toProductResponse(p))
	}
	return res, nil
}

func (s *productService) SemanticSearch(ctx context.Context, req *dto.SemanticSearchRequest) ([]*dto.ProductResponse, error) {
	if s.embedProvider == nil {
		return nil, errors.New("semantic search is not enabled")
	}

	embedRes, err := s.embedProvider.Generate(req.Query, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	ids, err := uow.ProductEmbeddingRepository().NearestProductIds(ctx, pgvector.NewVector(embedRes.Embedding.Values), limit)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*dto.ProductResponse{}, nil
	}

	products, err := uow.ProductRepository().FindAll(ctx, specification.ByIDs{IDs: ids})
	if err != nil {
		return nil, err
	}

	// FindAll does not preserve the distance ordering, restore it.
	byId := make(map[uuid.UUID]*entity.Product, len(products))
	for _, p := range products {
		byId[p.Id] = p
	}
	res := make([]*dto.ProductResponse, 0, len(ids))
	for _, id := range ids {
		if p, ok := byId[id]; ok {
			res = append(res, toProductResponse(p))
		}
	}
	return res, nil
}

// requestEmbedding hands the product off to the embedding consumer. A publish
// failure never fails the write that triggered it.
func (s *productService) requestEmbedding(ctx context.Context, productId uuid.UUID) {
	if s.publisherService == nil {
		return
	}
	payload, err := json.Marshal(dto.PublishEmbedProductMessage{ProductId: productId})
	if err != nil {
		s.log.Error("product", "failed to marshal embed message", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.log.Error("product", "failed to publish embed message", map[string]interface{}{
			"product_id": productId.String(),
			"error":      err.Error(),
		})
	}
}

// EmbeddingText is the canonical document fed to the embedding model for a
// product. The consumer and any backfill job must agree on this shape.
func EmbeddingText(product *entity.Product) string {
	var b strings.Builder
	b.WriteString(product.Name)
	b.WriteString(". Category: ")
	b.WriteString(product.Category)
	b.WriteString(". Location: ")
	b.WriteString(product.Location)
	if product.Description != nil && *product.Description != "" {
		b.WriteString(". ")
		b.WriteString(*product.Description)
	}
	return b.String()
}

func toProductResponse(product *entity.Product) *dto.ProductResponse {
	res := &dto.ProductResponse{
		Id:          product.Id,
		Code:        product.Code,
		FarmerId:    product.FarmerId,
		Name:        product.Name,
		Category:    product.Category,
		Price:       product.Price,
		Quantity:    product.Quantity,
		Unit:        product.Unit,
		Location:    product.Location,
		HarvestDate: product.HarvestDate,
		Images:      product.Images,
		CreatedAt:   product.CreatedAt,
	}
	if product.Description != nil {
		res.Description = *product.Description
	}
	if product.Farmer != nil {
		res.FarmerName = product.Farmer.FullName
	}
	return res
}
