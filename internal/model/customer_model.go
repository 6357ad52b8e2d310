package model

import (
	"time"

	"github.com/google/uuid"
)

type Customer struct {
	Id                uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProjectId         uuid.UUID  `gorm:"type:uuid;not null;index:idx_customers_identity,unique"`
	Platform          string     `gorm:"type:varchar(20);not null;index:idx_customers_identity,unique"`
	PlatformUserId    string     `gorm:"type:text;not null;index:idx_customers_identity,unique"`
	Name              *string    `gorm:"type:text"`
	Phone             *string    `gorm:"type:text"`
	Email             *string    `gorm:"type:text"`
	LeadScore         string     `gorm:"type:varchar(10);not null;default:'cold'"`
	TotalOrders       int        `gorm:"not null;default:0"`
	TotalSpent        float64    `gorm:"type:numeric;not null;default:0"`
	Notes             string     `gorm:"type:text"`
	FirstContactAt    time.Time  `gorm:"autoCreateTime"`
	LastInteractionAt *time.Time
}

func (Customer) TableName() string {
	return "customers"
}
