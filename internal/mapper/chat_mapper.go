package mapper

import (
	"encoding/json"

	"farmmarket-be/internal/entity"
	"farmmarket-be/internal/model"

	"gorm.io/datatypes"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

func (m *ChatMapper) SessionToEntity(s *model.ChatSession) *entity.ChatSession {
	if s == nil {
		return nil
	}

	// An unreadable blob degrades to an empty state: flows restart from the
	// beginning instead of failing the whole conversation.
	var data entity.SessionData
	if len(s.SessionData) > 0 {
		_ = json.Unmarshal(s.SessionData, &data)
	}

	return &entity.ChatSession{
		Id:              s.Id,
		UserId:          s.UserId,
		Context:         []string(s.Context),
		Data:            data,
		Version:         s.Version,
		LastInteraction: s.LastInteraction,
		CreatedAt:       s.CreatedAt,
	}
}

func (m *ChatMapper) SessionToModel(s *entity.ChatSession) *model.ChatSession {
	if s == nil {
		return nil
	}

	raw, err := json.Marshal(s.Data)
	if err != nil {
		raw = []byte(`{}`)
	}

	return &model.ChatSession{
		Id:              s.Id,
		UserId:          s.UserId,
		Context:         datatypes.NewJSONSlice(s.Context),
		SessionData:     datatypes.JSON(raw),
		Version:         s.Version,
		LastInteraction: s.LastInteraction,
		CreatedAt:       s.CreatedAt,
	}
}
