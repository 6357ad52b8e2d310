package mapper

import (
	"encoding/json"

	"ai-sales-be/internal/entity"
	"ai-sales-be/internal/model"

	"gorm.io/datatypes"
)

type OrderMapper struct{}

func NewOrderMapper() *OrderMapper {
	return &OrderMapper{}
}

func (m *OrderMapper) ToEntity(o *model.Order) *entity.Order {
	if o == nil {
		return nil
	}

	var items []entity.OrderItem
	if len(o.Items) > 0 {
		_ = json.Unmarshal(o.Items, &items)
	}

	return &entity.Order{
		Id:              o.Id,
		ProjectId:       o.ProjectId,
		CustomerId:      o.CustomerId,
		ConversationId:  o.ConversationId,
		Items:           items,
		TotalAmount:     o.TotalAmount,
		CustomerName:    o.CustomerName,
		CustomerPhone:   o.CustomerPhone,
		CustomerAddress: o.CustomerAddress,
		Notes:           o.Notes,
		Status:          entity.OrderStatus(o.Status),
		StatusChangedAt: o.StatusChangedAt,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       optionalTime(o.UpdatedAt),
	}
}

func (m *OrderMapper) ToModel(o *entity.Order) *model.Order {
	if o == nil {
		return nil
	}

	items := o.Items
	if items == nil {
		items = []entity.OrderItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		data = []byte("[]")
	}

	return &model.Order{
		Id:              o.Id,
		ProjectId:       o.ProjectId,
		CustomerId:      o.CustomerId,
		ConversationId:  o.ConversationId,
		Items:           datatypes.JSON(data),
		TotalAmount:     o.TotalAmount,
		CustomerName:    o.CustomerName,
		CustomerPhone:   o.CustomerPhone,
		CustomerAddress: o.CustomerAddress,
		Notes:           o.Notes,
		Status:          string(o.Status),
		StatusChangedAt: o.StatusChangedAt,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       timeOrZero(o.UpdatedAt),
	}
}
