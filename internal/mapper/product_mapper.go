package mapper

import (
	"farmmarket-be/internal/entity"
	"farmmarket-be/internal/model"

	"gorm.io/datatypes"
)

type ProductMapper struct {
	profileMapper *ProfileMapper
}

func NewProductMapper() *ProductMapper {
	return &ProductMapper{
		profileMapper: NewProfileMapper(),
	}
}

func (m *ProductMapper) ToEntity(p *model.Product) *entity.Product {
	if p == nil {
		return nil
	}
	return &entity.Product{
		Id:          p.Id,
		Code:        p.Code,
		FarmerId:    p.FarmerId,
		Name:        p.Name,
		Category:    p.Category,
		Price:       p.Price,
		Quantity:    p.Quantity,
		Unit:        p.Unit,
		Location:    p.Location,
		HarvestDate: p.HarvestDate,
		Images:      []string(p.Images),
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		Farmer:      m.profileMapper.ToEntity(p.Farmer),
	}
}

func (m *ProductMapper) ToModel(p *entity.Product) *model.Product {
	if p == nil {
		return nil
	}
	return &model.Product{
		Id:          p.Id,
		Code:        p.Code,
		FarmerId:    p.FarmerId,
		Name:        p.Name,
		Category:    p.Category,
		Price:       p.Price,
		Quantity:    p.Quantity,
		Unit:        p.Unit,
		Location:    p.Location,
		HarvestDate: p.HarvestDate,
		Images:      datatypes.NewJSONSlice(p.Images),
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (m *ProductMapper) ToEntities(products []*model.Product) []*entity.Product {
	entities := make([]*entity.Product, len(products))
	for i, p := range products {
		entities[i] = m.ToEntity(p)
	}
	return entities
}
