package service

import (
	"context"
	"crypto/sha512"
	"errors"
	"fmt"
	"os"
	"time"

	"farmmarket-be/internal/dto"
	"farmmarket-be/internal/entity"
	"farmmarket-be/internal/pkg/logger"
	"farmmarket-be/internal/repository/specification"
	"farmmarket-be/internal/repository/unitofwork"
	"farmmarket-be/pkg/events"
	"farmmarket-be/pkg/nats"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

type IPaymentService interface {
	CreatePayment(ctx context.Context, buyerId uuid.UUID, req *dto.CreatePaymentRequest) (*dto.CreatePaymentResponse, error)
	HandleNotification(ctx context.Context, req *dto.MidtransWebhookRequest) error
}

type paymentService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *nats.Publisher
	log            logger.ILogger
}

func NewPaymentService(uowFactory unitofwork.RepositoryFactory, eventPublisher *nats.Publisher, log logger.ILogger) IPaymentService {
	return &paymentService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		log:            log,
	}
}

func (s *paymentService) CreatePayment(ctx context.Context, buyerId uuid.UUID, req *dto.CreatePaymentRequest) (*dto.CreatePaymentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	order, err := uow.OrderRepository().FindOne(ctx, specification.ByID{ID: req.OrderId})
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order not found")
	}
	if order.BuyerId != buyerId {
		return nil, errors.New("you can only pay for your own orders")
	}
	if order.Status != entity.OrderStatusPending {
		return nil, errors.New("order is not awaiting payment")
	}

	product, err := uow.ProductRepository().FindOne(ctx, specification.ByID{ID: order.ProductId})
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.New("product not found")
	}

	buyer, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: buyerId})
	if err != nil {
		return nil, err
	}
	if buyer == nil {
		return nil, errors.New("buyer not found")
	}
	buyerProfile, err := uow.ProfileRepository().FindOne(ctx, specification.ByID{ID: buyerId})
	if err != nil {
		return nil, err
	}

	var sClient snap.Client
	serverKey := os.Getenv("MIDTRANS_SERVER_KEY")
	env := midtrans.Sandbox
	if os.Getenv("MIDTRANS_IS_PRODUCTION") == "true" {
		env = midtrans.Production
	}
	sClient.New(serverKey, env)

	frontendURL := os.Getenv("CLIENT_URL")
	finishRedirectURL := fmt.Sprintf("%s/orders?payment=success", frontendURL)

	customer := &midtrans.CustomerDetails{
		Email: buyer.Email,
	}
	if buyerProfile != nil {
		customer.FName = buyerProfile.FullName
		if buyerProfile.Phone != nil {
			customer.Phone = *buyerProfile.Phone
		}
	}

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  order.Id.String(),
			GrossAmt: int64(order.TotalPrice),
		},
		CreditCard: &snap.CreditCardDetails{
			Secure: true,
		},
		Callbacks: &snap.Callbacks{
			Finish: finishRedirectURL,
		},
		CustomerDetail: customer,
		Items: &[]midtrans.ItemDetails{
			{
				ID:    product.Id.String(),
				Price: int64(product.Price),
				Qty:   int32(order.Quantity),
				Name:  product.Name,
			},
		},
		EnabledPayments: snap.AllSnapPaymentType,
	}

	snapResp, midErr := sClient.CreateTransaction(snapReq)
	if midErr != nil {
		return nil, fmt.Errorf("midtrans error: %v", midErr.GetMessage())
	}

	return &dto.CreatePaymentResponse{
		OrderId:         order.Id,
		SnapToken:       snapResp.Token,
		SnapRedirectUrl: snapResp.RedirectURL,
	}, nil
}

func (s *paymentService) HandleNotification(ctx context.Context, req *dto.MidtransWebhookRequest) error {
	s.log.Info("payment", "processing webhook notification", map[string]interface{}{
		"order_id": req.OrderId,
		"status":   req.TransactionStatus,
	})

	serverKey := os.Getenv("MIDTRANS_SERVER_KEY")
	if serverKey == "" {
		s.log.Error("payment", "MIDTRANS_SERVER_KEY not configured", nil)
		return fmt.Errorf("server configuration error")
	}

	// Midtrans signature = SHA512(order_id + status_code + gross_amount + server_key)
	signatureInput := req.OrderId + req.StatusCode + req.GrossAmount + serverKey
	expectedSignature := fmt.Sprintf("%x", sha512.Sum512([]byte(signatureInput)))
	if req.SignatureKey != expectedSignature {
		s.log.Warn("payment", "webhook signature mismatch", map[string]interface{}{
			"order_id": req.OrderId,
		})
		return fmt.Errorf("invalid signature")
	}

	orderId, err := uuid.Parse(req.OrderId)
	if err != nil {
		return fmt.Errorf("invalid order id format")
	}

	var newStatus entity.OrderStatus
	paid := false
	switch req.TransactionStatus {
	case "capture", "settlement":
		newStatus = entity.OrderStatusAccepted
		paid = true
	case "deny", "cancel", "expire":
		newStatus = entity.OrderStatusCancelled
	case "pending":
		return nil
	default:
		s.log.Warn("payment", "unknown transaction status, no action taken", map[string]interface{}{
			"order_id": req.OrderId,
			"status":   req.TransactionStatus,
		})
		return nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	order, err := uow.OrderRepository().FindOne(ctx, specification.ByID{ID: orderId})
	if err != nil {
		return err
	}
	if order == nil {
		return fmt.Errorf("order not found")
	}

	// Webhooks retry, make the transition idempotent.
	if order.Status == newStatus {
		return nil
	}
	if order.Status != entity.OrderStatusPending {
		s.log.Warn("payment", "ignoring webhook for settled order", map[string]interface{}{
			"order_id": req.OrderId,
			"current":  string(order.Status),
		})
		return nil
	}

	order.Status = newStatus
	order.UpdatedAt = time.Now()
	if err := uow.OrderRepository().Update(ctx, order); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	if paid && s.eventPublisher != nil {
		product, _ := uow.ProductRepository().FindOne(ctx, specification.ByID{ID: order.ProductId})
		data := map[string]interface{}{
			"order_id":    order.Id.String(),
			"buyer_id":    order.BuyerId.String(),
			"quantity":    order.Quantity,
			"total_price": order.TotalPrice,
		}
		if product != nil {
			data["farmer_id"] = product.FarmerId.String()
			data["product_name"] = product.Name
			data["unit"] = product.Unit
		}
		evt := events.BaseEvent{
			Type:       events.TypeOrderPaid,
			Data:       data,
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.log.Error("payment", "failed to publish order paid event", map[string]interface{}{
				"order_id": order.Id.String(),
				"error":    err.Error(),
			})
		}
	}

	return nil
}
