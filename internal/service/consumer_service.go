package service

import (
	"context"
	"encoding/json"

	"farmmarket-be/internal/dto"
	"farmmarket-be/internal/pkg/logger"
	"farmmarket-be/internal/repository/specification"
	"farmmarket-be/internal/repository/unitofwork"
	"farmmarket-be/pkg/embedding"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/pgvector/pgvector-go"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the embed-product topic: for each message it reloads
// the product, embeds its canonical text and upserts the vector.
type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	log               logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		log:               log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedProductMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.log.Error("consumer", "failed to unmarshal embed message", map[string]interface{}{
			"error": err.Error(),
		})
		// Malformed payloads never get better, ack to stop the retry loop.
		msg.Ack()
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	product, err := uow.ProductRepository().FindOne(ctx, specification.ByID{ID: payload.ProductId})
	if err != nil {
		cs.log.Error("consumer", "failed to load product for embedding", map[string]interface{}{
			"product_id": payload.ProductId.String(),
			"error":      err.Error(),
		})
		msg.Nack()
		return
	}
	if product == nil {
		// Deleted between publish and consume, nothing to embed.
		msg.Ack()
		return
	}

	res, err := cs.embeddingProvider.Generate(EmbeddingText(product), "RETRIEVAL_DOCUMENT")
	if err != nil {
		cs.log.Error("consumer", "failed to generate embedding", map[string]interface{}{
			"product_id": product.Id.String(),
			"error":      err.Error(),
		})
		msg.Nack()
		return
	}

	vec := pgvector.NewVector(res.Embedding.Values)
	if err := uow.ProductEmbeddingRepository().Upsert(ctx, product.Id, vec); err != nil {
		cs.log.Error("consumer", "failed to store embedding", map[string]interface{}{
			"product_id": product.Id.String(),
			"error":      err.Error(),
		})
		msg.Nack()
		return
	}

	cs.log.Info("consumer", "product embedding updated", map[string]interface{}{
		"product_id": product.Id.String(),
	})
	msg.Ack()
}
