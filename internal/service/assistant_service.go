package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"farmmarket-be/internal/dto"
	"farmmarket-be/internal/entity"
	"farmmarket-be/internal/pkg/logger"
	"farmmarket-be/internal/repository/specification"
	"farmmarket-be/internal/repository/unitofwork"
	"farmmarket-be/pkg/assistant/flow"
	"farmmarket-be/pkg/assistant/intent"
	"farmmarket-be/pkg/assistant/session"
	"farmmarket-be/pkg/events"
	"farmmarket-be/pkg/nats"

	"github.com/google/uuid"
)

type IAssistantService interface {
	Chat(ctx context.Context, userId uuid.UUID, req *dto.ChatRequest) (*dto.ChatResponse, error)
	GetSession(ctx context.Context, userId uuid.UUID) (*dto.SessionResponse, error)
}

type assistantService struct {
	uowFactory unitofwork.RepositoryFactory
	sessions   *session.Manager
	handlers   map[intent.Intent]flow.Handler
	log        logger.ILogger
}

func NewAssistantService(
	uowFactory unitofwork.RepositoryFactory,
	sessions *session.Manager,
	publisherService IPublisherService,
	eventPublisher *nats.Publisher,
	log logger.ILogger,
) IAssistantService {
	store := &repositoryStore{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		log:              log,
	}

	return &assistantService{
		uowFactory: uowFactory,
		sessions:   sessions,
		handlers: map[intent.Intent]flow.Handler{
			intent.Negotiation: flow.NewNegotiationHandler(store),
			intent.OrderView:   flow.NewOrderViewHandler(store),
			intent.Analytics:   flow.NewAnalyticsHandler(store),
			intent.Listing:     flow.NewListingHandler(store),
			intent.Search:      flow.NewSearchHandler(store),
			intent.Help:        flow.NewHelpHandler(),
		},
		log: log,
	}
}

func (s *assistantService) Chat(ctx context.Context, userId uuid.UUID, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	profile, err := uow.ProfileRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, errors.New("profile not found")
	}

	// A session store failure degrades to a blank one-turn session rather
	// than failing the chat. Multi-turn flows lose their state but single
	// messages still get answered.
	persisted := true
	sess, err := s.sessions.LoadOrCreate(ctx, userId)
	if err != nil {
		s.log.Error("assistant", "session load failed, continuing stateless", map[string]interface{}{
			"user_id": userId.String(),
			"error":   err.Error(),
		})
		persisted = false
		sess = &entity.ChatSession{
			Id:              uuid.New(),
			UserId:          userId,
			LastInteraction: time.Now(),
		}
	}

	conv := &flow.Conversation{
		UserId:  userId,
		Profile: profile,
		Message: req.Message,
		Data:    sess.Data,
	}

	handler := s.resolveHandler(req.Message, profile.IsFarmer, sess.Data)

	result, err := handler.Handle(ctx, conv)
	if err != nil {
		return nil, err
	}

	if persisted {
		s.sessions.Patch(ctx, sess, result.Patch, "user: "+req.Message, "bot: "+result.Reply)
	}

	return &dto.ChatResponse{
		SessionId: sess.Id,
		Reply:     result.Reply,
	}, nil
}

// resolveHandler picks the flow for this turn. An in-progress listing flow
// short-circuits the classifier so raw answers ("Tomatoes", "50") reach the
// listing state machine. A seeded negotiation catches messages the classifier
// would send to help, so a bare counter-offer ("₹30") lands as a proposal.
func (s *assistantService) resolveHandler(message string, isFarmer bool, data entity.SessionData) flow.Handler {
	if data.CurrentFlow == entity.FlowProductListing && data.ProductDraft != nil {
		return s.handlers[intent.Listing]
	}

	it := intent.Classify(message, isFarmer)
	if it == intent.Help && data.Negotiation != nil {
		return s.handlers[intent.Negotiation]
	}
	return s.handlers[it]
}

func (s *assistantService) GetSession(ctx context.Context, userId uuid.UUID) (*dto.SessionResponse, error) {
	sess, err := s.sessions.LoadOrCreate(ctx, userId)
	if err != nil {
		return nil, err
	}

	return &dto.SessionResponse{
		SessionId:       sess.Id,
		Transcript:      sess.Context,
		CurrentFlow:     sess.Data.CurrentFlow,
		LastInteraction: sess.LastInteraction,
	}, nil
}

// repositoryStore implements flow.Store over the repositories. Side effects
// the flows only imply, the embedding request for a chat-listed product and
// the bus event behind a proposal message, live here.
type repositoryStore struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	eventPublisher   *nats.Publisher
	log              logger.ILogger
}

func (st *repositoryStore) ProductByCode(ctx context.Context, code int64) (*entity.Product, error) {
	uow := st.uowFactory.NewUnitOfWork(ctx)
	return uow.ProductRepository().FindOneWithFarmer(ctx, specification.ByCode{Code: code})
}

func (st *repositoryStore) ProductsUnderPrice(ctx context.Context, maxPrice *float64) ([]*entity.Product, error) {
	uow := st.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{specification.InStock{}}
	if maxPrice != nil {
		specs = append(specs, specification.PriceBelow{Max: *maxPrice})
	}
	specs = append(specs, specification.OrderBy{Field: "price", Desc: false})

	return uow.ProductRepository().FindAll(ctx, specs...)
}

func (st *repositoryStore) CreateProduct(ctx context.Context, product *entity.Product) error {
	uow := st.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ProductRepository().Create(ctx, product); err != nil {
		return err
	}

	if st.publisherService != nil {
		payload, err := json.Marshal(dto.PublishEmbedProductMessage{ProductId: product.Id})
		if err == nil {
			if perr := st.publisherService.Publish(ctx, payload); perr != nil {
				st.log.Error("assistant", "failed to publish embed message", map[string]interface{}{
					"product_id": product.Id.String(),
					"error":      perr.Error(),
				})
			}
		}
	}

	if st.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: events.TypeProductListed,
			Data: map[string]interface{}{
				"product_id":   product.Id.String(),
				"product_code": product.Code,
				"farmer_id":    product.FarmerId.String(),
				"product_name": product.Name,
			},
			OccurredAt: time.Now(),
		}
		if err := st.eventPublisher.Publish(ctx, evt); err != nil {
			st.log.Error("assistant", "failed to publish product listed event", map[string]interface{}{
				"product_id": product.Id.String(),
				"error":      err.Error(),
			})
		}
	}

	return nil
}

func (st *repositoryStore) OrderHistory(ctx context.Context, buyerId uuid.UUID) ([]*entity.OrderHistory, error) {
	uow := st.uowFactory.NewUnitOfWork(ctx)
	return uow.OrderRepository().HistoryByBuyer(ctx, buyerId)
}

func (st *repositoryStore) FarmerRatings(ctx context.Context, farmerId uuid.UUID) ([]*entity.ProductRating, error) {
	uow := st.uowFactory.NewUnitOfWork(ctx)
	return uow.ProductRepository().RatingsByFarmer(ctx, farmerId)
}

func (st *repositoryStore) SendMessage(ctx context.Context, message *entity.Message) error {
	uow := st.uowFactory.NewUnitOfWork(ctx)
	if err := uow.MessageRepository().Create(ctx, message); err != nil {
		return err
	}

	if st.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: events.TypePriceProposal,
			Data: map[string]interface{}{
				"message_id":  message.Id.String(),
				"sender_id":   message.SenderId.String(),
				"receiver_id": message.ReceiverId.String(),
				"content":     message.Content,
			},
			OccurredAt: time.Now(),
		}
		if err := st.eventPublisher.Publish(ctx, evt); err != nil {
			st.log.Error("assistant", "failed to publish price proposal event", map[string]interface{}{
				"message_id": message.Id.String(),
				"error":      err.Error(),
			})
		}
	}

	return nil
}
