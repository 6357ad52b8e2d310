package model

import (
	"time"

	"github.com/google/uuid"
)

type KnowledgeSnippet struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProjectId uuid.UUID `gorm:"type:uuid;not null;index"` // uuid.Nil = global scope
	Category  string    `gorm:"type:varchar(50);not null;index"`
	Title     string    `gorm:"type:text;not null"`
	Content   string    `gorm:"type:text;not null"`
	IsActive  bool      `gorm:"not null;default:true;index"`
	Priority  int       `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (KnowledgeSnippet) TableName() string {
	return "knowledge_snippets"
}
