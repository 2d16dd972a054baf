package bootstrap

import (
	"context"
	"log"

	"farmmarket-be/internal/config"
	"farmmarket-be/internal/controller"
	"farmmarket-be/internal/pkg/logger"
	"farmmarket-be/internal/pkg/mailer"
	"farmmarket-be/internal/repository/implementation"
	"farmmarket-be/internal/repository/memory"
	"farmmarket-be/internal/repository/unitofwork"
	"farmmarket-be/internal/service"
	"farmmarket-be/internal/websocket"
	"farmmarket-be/pkg/assistant/session"
	"farmmarket-be/pkg/embedding"

	pktNats "farmmarket-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController         controller.IAuthController
	OAuthController        controller.IOAuthController
	ProfileController      controller.IProfileController
	ProductController      controller.IProductController
	OrderController        controller.IOrderController
	MessageController      controller.IMessageController
	PaymentController      controller.IPaymentController
	AssistantController    controller.IAssistantController
	NotificationController controller.INotificationController

	// Background services, run by main.go
	ConsumerService service.IConsumerService
	WebSocketHub    *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// In-process event bus for the embedding pipeline
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// Embedding provider, nil disables semantic search
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		log.Printf("[INFO] No embedding provider configured, semantic search disabled")
	}

	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// Embedding pipeline
	publisherService := service.NewPublisherService(pubSub, cfg.Ai.EmbedProductTopic)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Ai.EmbedProductTopic,
		uowFactory,
		embeddingProvider,
		sysLogger,
	)

	// Chat session management
	sessionRepo := implementation.NewChatSessionRepository(db)
	sessionCache := memory.NewSessionCache()
	sessionManager := session.NewManager(sessionRepo, sessionCache, sysLogger)

	// Domain services
	authService := service.NewAuthService(uowFactory)
	oauthService := service.NewOAuthService(uowFactory)
	profileService := service.NewProfileService(uowFactory)
	productService := service.NewProductService(uowFactory, publisherService, embeddingProvider, sysLogger)
	orderService := service.NewOrderService(uowFactory, natsPub, sysLogger)
	messageService := service.NewMessageService(uowFactory)
	paymentService := service.NewPaymentService(uowFactory, natsPub, sysLogger)
	assistantService := service.NewAssistantService(uowFactory, sessionManager, publisherService, natsPub, sysLogger)

	notifService := service.NewNotificationService(uowFactory, natsSub, wsHub, emailService, wsLogger)
	if natsSub != nil {
		go notifService.Start()
	}

	return &Container{
		AuthController:         controller.NewAuthController(authService),
		OAuthController:        controller.NewOAuthController(oauthService),
		ProfileController:      controller.NewProfileController(profileService),
		ProductController:      controller.NewProductController(productService),
		OrderController:        controller.NewOrderController(orderService),
		MessageController:      controller.NewMessageController(messageService),
		PaymentController:      controller.NewPaymentController(paymentService),
		AssistantController:    controller.NewAssistantController(assistantService),
		NotificationController: controller.NewNotificationController(notifService, wsHub, wsLogger),

		ConsumerService: consumerService,
		WebSocketHub:    wsHub,
	}
}
