package service

import (
	"context"
	"errors"
	"time"

	"farmmarket-be/internal/dto"
	"farmmarket-be/internal/entity"
	"farmmarket-be/internal/pkg/logger"
	"farmmarket-be/internal/repository/specification"
	"farmmarket-be/internal/repository/unitofwork"
	"farmmarket-be/pkg/events"
	"farmmarket-be/pkg/nats"

	"github.com/google/uuid"
)

type IOrderService interface {
	Checkout(ctx context.Context, buyerId uuid.UUID, req *dto.CheckoutRequest) (*dto.OrderResponse, error)
	MyOrders(ctx context.Context, buyerId uuid.UUID) ([]*dto.OrderHistoryResponse, error)
	CreateReview(ctx context.Context, reviewerId uuid.UUID, req *dto.ReviewRequest) (*dto.ReviewResponse, error)
}

type orderService struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  *nats.Publisher
	log        logger.ILogger
}

func NewOrderService(uowFactory unitofwork.RepositoryFactory, publisher *nats.Publisher, log logger.ILogger) IOrderService {
	return &orderService{
		uowFactory: uowFactory,
		publisher:  publisher,
		log:        log,
	}
}

func (s *orderService) Checkout(ctx context.Context, buyerId uuid.UUID, req *dto.CheckoutRequest) (*dto.OrderResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	product, err := uow.ProductRepository().FindOne(ctx, specification.ByID{ID: req.ProductId})
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.New("product not found")
	}
	if product.FarmerId == buyerId {
		return nil, errors.New("you cannot order your own product")
	}
	if product.Quantity < req.Quantity {
		return nil, errors.New("not enough stock available")
	}

	now := time.Now()
	order := &entity.Order{
		Id:         uuid.New(),
		BuyerId:    buyerId,
		ProductId:  product.Id,
		Quantity:   req.Quantity,
		TotalPrice: float64(req.Quantity) * product.Price,
		Status:     entity.OrderStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uow.OrderRepository().Create(ctx, order); err != nil {
		return nil, err
	}

	product.Quantity -= req.Quantity
	product.UpdatedAt = now
	if err := uow.ProductRepository().Update(ctx, product); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.BaseEvent{
		Type: events.TypeOrderPlaced,
		Data: map[string]interface{}{
			"order_id":     order.Id.String(),
			"buyer_id":     buyerId.String(),
			"farmer_id":    product.FarmerId.String(),
			"product_id":   product.Id.String(),
			"product_name": product.Name,
			"quantity":     order.Quantity,
			"unit":         product.Unit,
			"total_price":  order.TotalPrice,
		},
		OccurredAt: now,
	})

	return toOrderResponse(order), nil
}

func (s *orderService) MyOrders(ctx context.Context, buyerId uuid.UUID) ([]*dto.OrderHistoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	history, err := uow.OrderRepository().HistoryByBuyer(ctx, buyerId)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.OrderHistoryResponse, 0, len(history))
	for _, h := range history {
		item := &dto.OrderHistoryResponse{
			Order:        *toOrderResponse(&h.Order),
			ProductName:  h.ProductName,
			ProductPrice: h.ProductPrice,
			ProductUnit:  h.ProductUnit,
		}
		if h.Review != nil {
			item.Review = toReviewResponse(h.Review)
		}
		res = append(res, item)
	}
	return res, nil
}

func (s *orderService) CreateReview(ctx context.Context, reviewerId uuid.UUID, req *dto.ReviewRequest) (*dto.ReviewResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	order, err := uow.OrderRepository().FindOne(ctx, specification.ByID{ID: req.OrderId})
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order not found")
	}
	if order.BuyerId != reviewerId {
		return nil, errors.New("you can only review your own orders")
	}

	existing, err := uow.ReviewRepository().FindOne(ctx, specification.ByOrderID{OrderID: req.OrderId})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.New("order already reviewed")
	}

	review := &entity.Review{
		Id:         uuid.New(),
		OrderId:    req.OrderId,
		ReviewerId: reviewerId,
		Rating:     req.Rating,
		Comment:    req.Comment,
		CreatedAt:  time.Now(),
	}
	if err := uow.ReviewRepository().Create(ctx, review); err != nil {
		return nil, err
	}

	return toReviewResponse(review), nil
}

func (s *orderService) publishEvent(ctx context.Context, event events.BaseEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.Error("order", "failed to publish event", map[string]interface{}{
			"event_type": event.Type,
			"error":      err.Error(),
		})
	}
}

func toOrderResponse(order *entity.Order) *dto.OrderResponse {
	return &dto.OrderResponse{
		Id:         order.Id,
		ProductId:  order.ProductId,
		Quantity:   order.Quantity,
		TotalPrice: order.TotalPrice,
		Status:     string(order.Status),
		CreatedAt:  order.CreatedAt,
	}
}

func toReviewResponse(review *entity.Review) *dto.ReviewResponse {
	res := &dto.ReviewResponse{
		Id:        review.Id,
		Rating:    review.Rating,
		CreatedAt: review.CreatedAt,
	}
	if review.Comment != nil {
		res.Comment = *review.Comment
	}
	return res
}
