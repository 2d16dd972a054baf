package mapper

import (
	"farmmarket-be/internal/entity"
	"farmmarket-be/internal/model"
)

type ProfileMapper struct{}

func NewProfileMapper() *ProfileMapper {
	return &ProfileMapper{}
}

func (m *ProfileMapper) ToEntity(p *model.Profile) *entity.Profile {
	if p == nil {
		return nil
	}
	return &entity.Profile{
		Id:        p.Id,
		FullName:  p.FullName,
		AvatarURL: p.AvatarURL,
		Phone:     p.Phone,
		Address:   p.Address,
		IsFarmer:  p.IsFarmer,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (m *ProfileMapper) ToModel(p *entity.Profile) *model.Profile {
	if p == nil {
		return nil
	}
	return &model.Profile{
		Id:        p.Id,
		FullName:  p.FullName,
		AvatarURL: p.AvatarURL,
		Phone:     p.Phone,
		Address:   p.Address,
		IsFarmer:  p.IsFarmer,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
