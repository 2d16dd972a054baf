package unitofwork

import (
	"context"

	"farmmarket-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	ProfileRepository() contract.ProfileRepository
	ProductRepository() contract.ProductRepository
	ProductEmbeddingRepository() contract.ProductEmbeddingRepository

	OrderRepository() contract.OrderRepository
	ReviewRepository() contract.ReviewRepository
	MessageRepository() contract.MessageRepository
	ChatSessionRepository() contract.ChatSessionRepository
	NotificationRepository() contract.NotificationRepository
}
