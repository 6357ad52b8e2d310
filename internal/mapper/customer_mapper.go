package mapper

import (
	"ai-sales-be/internal/entity"
	"ai-sales-be/internal/model"
)

type CustomerMapper struct{}

func NewCustomerMapper() *CustomerMapper {
	return &CustomerMapper{}
}

func (m *CustomerMapper) ToEntity(c *model.Customer) *entity.Customer {
	if c == nil {
		return nil
	}
	return &entity.Customer{
		Id:                c.Id,
		ProjectId:         c.ProjectId,
		Platform:          c.Platform,
		PlatformUserId:    c.PlatformUserId,
		Name:              c.Name,
		Phone:             c.Phone,
		Email:             c.Email,
		LeadScore:         entity.LeadScore(c.LeadScore),
		TotalOrders:       c.TotalOrders,
		TotalSpent:        c.TotalSpent,
		Notes:             c.Notes,
		FirstContactAt:    c.FirstContactAt,
		LastInteractionAt: c.LastInteractionAt,
	}
}

func (m *CustomerMapper) ToModel(c *entity.Customer) *model.Customer {
	if c == nil {
		return nil
	}
	return &model.Customer{
		Id:                c.Id,
		ProjectId:         c.ProjectId,
		Platform:          c.Platform,
		PlatformUserId:    c.PlatformUserId,
		Name:              c.Name,
		Phone:             c.Phone,
		Email:             c.Email,
		LeadScore:         string(c.LeadScore),
		TotalOrders:       c.TotalOrders,
		TotalSpent:        c.TotalSpent,
		Notes:             c.Notes,
		FirstContactAt:    c.FirstContactAt,
		LastInteractionAt: c.LastInteractionAt,
	}
}
