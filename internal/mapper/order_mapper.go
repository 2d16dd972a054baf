package mapper

import (
	"farmmarket-be/internal/entity"
	"farmmarket-be/internal/model"
)

type OrderMapper struct{}

func NewOrderMapper() *OrderMapper {
	return &OrderMapper{}
}

func (m *OrderMapper) ToEntity(o *model.Order) *entity.Order {
	if o == nil {
		return nil
	}
	return &entity.Order{
		Id:         o.Id,
		BuyerId:    o.BuyerId,
		ProductId:  o.ProductId,
		Quantity:   o.Quantity,
		TotalPrice: o.TotalPrice,
		Status:     entity.OrderStatus(o.Status),
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
}

func (m *OrderMapper) ToModel(o *entity.Order) *model.Order {
	if o == nil {
		return nil
	}
	return &model.Order{
		Id:         o.Id,
		BuyerId:    o.BuyerId,
		ProductId:  o.ProductId,
		Quantity:   o.Quantity,
		TotalPrice: o.TotalPrice,
		Status:     string(o.Status),
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
}
