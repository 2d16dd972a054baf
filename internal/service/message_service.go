package service

import (
	"context"
	"errors"

	"farmmarket-be/internal/dto"
	"farmmarket-be/internal/entity"
	"farmmarket-be/internal/repository/specification"
	"farmmarket-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IMessageService interface {
	// Thread returns the conversation between the caller and one peer,
	// oldest first. Negotiation proposals from the assistant land here too.
	Thread(ctx context.Context, userId, peerId uuid.UUID) ([]*dto.MessageResponse, error)
}

type messageService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewMessageService(uowFactory unitofwork.RepositoryFactory) IMessageService {
	return &messageService{
		uowFactory: uowFactory,
	}
}

func (s *messageService) Thread(ctx context.Context, userId, peerId uuid.UUID) ([]*dto.MessageResponse, error) {
	if userId == peerId {
		return nil, errors.New("cannot open a thread with yourself")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	messages, err := uow.MessageRepository().FindAll(ctx,
		specification.ParticipantsAre{A: userId, B: peerId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.MessageResponse, 0, len(messages))
	for _, m := range messages {
		res = append(res, toMessageResponse(m))
	}
	return res, nil
}

func toMessageResponse(m *entity.Message) *dto.MessageResponse {
	return &dto.MessageResponse{
		Id:         m.Id,
		SenderId:   m.SenderId,
		ReceiverId: m.ReceiverId,
		Content:    m.Content,
		OrderId:    m.OrderId,
		CreatedAt:  m.CreatedAt,
	}
}
