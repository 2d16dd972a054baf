package service

import (
	"context"
	"fmt"
	"time"

	"farmmarket-be/internal/dto"
	"farmmarket-be/internal/entity"
	"farmmarket-be/internal/pkg/logger"
	"farmmarket-be/internal/pkg/mailer"
	"farmmarket-be/internal/repository/specification"
	"farmmarket-be/internal/repository/unitofwork"
	"farmmarket-be/pkg/events"
	"farmmarket-be/pkg/nats"

	"github.com/google/uuid"
)

// NotificationDelivery pushes real-time updates, implemented by the
// websocket hub.
type NotificationDelivery interface {
	Send(userID uuid.UUID, notification entity.Notification)
	Broadcast(notification entity.Notification)
}

type INotificationService interface {
	Start()
	GetNotifications(ctx context.Context, userId uuid.UUID) ([]*dto.NotificationResponse, error)
	MarkRead(ctx context.Context, userId uuid.UUID, notificationId uuid.UUID) error
}

type notificationService struct {
	uowFactory unitofwork.RepositoryFactory
	subscriber *nats.Subscriber
	delivery   NotificationDelivery
	email      mailer.IEmailService
	log        logger.ILogger
}

func NewNotificationService(
	uowFactory unitofwork.RepositoryFactory,
	subscriber *nats.Subscriber,
	delivery NotificationDelivery,
	email mailer.IEmailService,
	log logger.ILogger,
) INotificationService {
	return &notificationService{
		uowFactory: uowFactory,
		subscriber: subscriber,
		delivery:   delivery,
		email:      email,
		log:        log,
	}
}

// Start begins draining the event bus. Each event type fans out to stored
// notifications, websocket pushes and, where relevant, email.
func (s *notificationService) Start() {
	if s.subscriber == nil {
		s.log.Warn("notification", "no event subscriber configured, notifications disabled", nil)
		return
	}
	if err := s.subscriber.Subscribe("events.>", "notification-worker", s.handleEvent); err != nil {
		s.log.Error("notification", "failed to start event subscriber", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	s.log.Info("notification", "listening for events", nil)
}

func (s *notificationService) handleEvent(ctx context.Context, event events.Event) error {
	payload := event.Payload()

	switch event.EventType() {
	case events.TypeOrderPlaced:
		return s.onOrderPlaced(ctx, payload)
	case events.TypeOrderPaid:
		return s.onOrderPaid(ctx, payload)
	case events.TypePriceProposal:
		return s.onPriceProposal(ctx, payload)
	case events.TypeProductListed:
		return s.onProductListed(ctx, payload)
	default:
		s.log.Info("notification", "ignoring unhandled event type", map[string]interface{}{
			"type": event.EventType(),
		})
		return nil
	}
}

func (s *notificationService) onOrderPlaced(ctx context.Context, payload map[string]interface{}) error {
	farmerId, ok := payloadUUID(payload, "farmer_id")
	if !ok {
		return nil
	}
	productName, _ := payload["product_name"].(string)
	quantity := payloadInt(payload, "quantity")
	unit, _ := payload["unit"].(string)
	total := payloadFloat(payload, "total_price")
	buyerId, _ := payloadUUID(payload, "buyer_id")

	notif := entity.Notification{
		Id:       uuid.New(),
		UserId:   farmerId,
		TypeCode: entity.NotificationOrderPlaced,
		Title:    "New order",
		Message:  fmt.Sprintf("You received an order: %d %s of %s (₹%.2f).", quantity, unit, productName, total),
	}
	if buyerId != uuid.Nil {
		notif.ActorId = &buyerId
	}
	if err := s.deliver(ctx, notif); err != nil {
		return err
	}

	// Receipt goes to the buyer.
	if buyerId != uuid.Nil {
		if email, err := s.emailFor(ctx, buyerId); err == nil && email != "" {
			if merr := s.email.SendOrderReceipt(email, productName, quantity, unit, total); merr != nil {
				s.log.Error("notification", "failed to send order receipt", map[string]interface{}{
					"buyer_id": buyerId.String(),
					"error":    merr.Error(),
				})
			}
		}
	}

	return nil
}

func (s *notificationService) onOrderPaid(ctx context.Context, payload map[string]interface{}) error {
	productName, _ := payload["product_name"].(string)
	total := payloadFloat(payload, "total_price")

	if farmerId, ok := payloadUUID(payload, "farmer_id"); ok {
		notif := entity.Notification{
			Id:       uuid.New(),
			UserId:   farmerId,
			TypeCode: entity.NotificationOrderPaid,
			Title:    "Order paid",
			Message:  fmt.Sprintf("Payment of ₹%.2f received for %s.", total, productName),
		}
		if err := s.deliver(ctx, notif); err != nil {
			return err
		}
	}

	if buyerId, ok := payloadUUID(payload, "buyer_id"); ok {
		notif := entity.Notification{
			Id:       uuid.New(),
			UserId:   buyerId,
			TypeCode: entity.NotificationOrderPaid,
			Title:    "Payment confirmed",
			Message:  fmt.Sprintf("Your payment of ₹%.2f for %s is confirmed.", total, productName),
		}
		if err := s.deliver(ctx, notif); err != nil {
			return err
		}
	}

	return nil
}

func (s *notificationService) onPriceProposal(ctx context.Context, payload map[string]interface{}) error {
	receiverId, ok := payloadUUID(payload, "receiver_id")
	if !ok {
		return nil
	}
	content, _ := payload["content"].(string)
	senderId, _ := payloadUUID(payload, "sender_id")

	notif := entity.Notification{
		Id:       uuid.New(),
		UserId:   receiverId,
		TypeCode: entity.NotificationPriceProposal,
		Title:    "New price proposal",
		Message:  content,
	}
	if senderId != uuid.Nil {
		notif.ActorId = &senderId
	}
	if err := s.deliver(ctx, notif); err != nil {
		return err
	}

	if email, err := s.emailFor(ctx, receiverId); err == nil && email != "" {
		if merr := s.email.SendPriceProposal(email, content); merr != nil {
			s.log.Error("notification", "failed to send proposal email", map[string]interface{}{
				"receiver_id": receiverId.String(),
				"error":       merr.Error(),
			})
		}
	}

	return nil
}

func (s *notificationService) onProductListed(ctx context.Context, payload map[string]interface{}) error {
	farmerId, ok := payloadUUID(payload, "farmer_id")
	if !ok {
		return nil
	}
	productName, _ := payload["product_name"].(string)
	code := payloadInt(payload, "product_code")

	notif := entity.Notification{
		Id:       uuid.New(),
		UserId:   farmerId,
		TypeCode: entity.NotificationProductListed,
		Title:    "Product listed",
		Message:  fmt.Sprintf("%s is live as product #%d.", productName, code),
	}
	return s.deliver(ctx, notif)
}

// deliver stores the notification row and pushes it over the websocket hub.
// Store failure returns an error so the bus retries; push failure does not.
func (s *notificationService) deliver(ctx context.Context, notif entity.Notification) error {
	notif.CreatedAt = time.Now()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.NotificationRepository().Create(ctx, &notif); err != nil {
		return err
	}

	if s.delivery != nil {
		s.delivery.Send(notif.UserId, notif)
	}
	return nil
}

func (s *notificationService) emailFor(ctx context.Context, userId uuid.UUID) (string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil || user == nil {
		return "", err
	}
	return user.Email, nil
}

func (s *notificationService) GetNotifications(ctx context.Context, userId uuid.UUID) ([]*dto.NotificationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	rows, err := uow.NotificationRepository().FindAll(ctx,
		specification.ByUserID{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.NotificationResponse, 0, len(rows))
	for _, n := range rows {
		res = append(res, &dto.NotificationResponse{
			Id:        n.Id,
			TypeCode:  n.TypeCode,
			Title:     n.Title,
			Message:   n.Message,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		})
	}
	return res, nil
}

func (s *notificationService) MarkRead(ctx context.Context, userId uuid.UUID, notificationId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.NotificationRepository().MarkRead(ctx, notificationId, userId)
}

// JSON round-trips turn numbers into float64 and uuids into strings; these
// helpers pull them back out without panicking on malformed payloads.

func payloadUUID(payload map[string]interface{}, key string) (uuid.UUID, bool) {
	raw, _ := payload[key].(string)
	if raw == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func payloadFloat(payload map[string]interface{}, key string) float64 {
	v, _ := payload[key].(float64)
	return v
}

func payloadInt(payload map[string]interface{}, key string) int {
	return int(payloadFloat(payload, key))
}
