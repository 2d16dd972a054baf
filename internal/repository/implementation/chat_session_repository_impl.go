package implementation

import (
	"context"
	"errors"

	"farmmarket-be/internal/entity"
	"farmmarket-be/internal/mapper"
	"farmmarket-be/internal/model"
	"farmmarket-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatSessionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewChatSessionRepository(db *gorm.DB) contract.ChatSessionRepository {
	return &ChatSessionRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *ChatSessionRepositoryImpl) Create(ctx context.Context, session *entity.ChatSession) error {
	m := r.mapper.SessionToModel(session)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*session = *r.mapper.SessionToEntity(m)
	return nil
}

func (r *ChatSessionRepositoryImpl) FindLatestByUser(ctx context.Context, userId uuid.UUID) (*entity.ChatSession, error) {
	var m model.ChatSession
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userId).
		Order("last_interaction DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.SessionToEntity(&m), nil
}

func (r *ChatSessionRepositoryImpl) UpdateCAS(ctx context.Context, session *entity.ChatSession) error {
	m := r.mapper.SessionToModel(session)

	// Guard on the version the caller loaded. A concurrent writer (second
	// browser tab) bumps the version first and this update matches no row.
	res := r.db.WithContext(ctx).
		Model(&model.ChatSession{}).
		Where("id = ? AND version = ?", session.Id, session.Version).
		Updates(map[string]interface{}{
			"context":          m.Context,
			"session_data":     m.SessionData,
			"version":          session.Version + 1,
			"last_interaction": m.LastInteraction,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return contract.ErrVersionConflict
	}

	session.Version++
	return nil
}
