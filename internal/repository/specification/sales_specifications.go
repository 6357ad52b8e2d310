package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByProjectID struct {
	ProjectID uuid.UUID
}

func (s ByProjectID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("project_id = ?", s.ProjectID)
}

type ByCustomerID struct {
	CustomerID uuid.UUID
}

func (s ByCustomerID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("customer_id = ?", s.CustomerID)
}

// ActiveOnly keeps rows with is_active = true (products, knowledge, pages).
type ActiveOnly struct{}

func (s ActiveOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}

// ByCategoryIn keeps knowledge snippets in the given categories.
type ByCategoryIn struct {
	Categories []string
}

func (s ByCategoryIn) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("category IN ?", s.Categories)
}

// ProjectOrGlobalScope keeps rows scoped to the project plus the explicit
// global scope (uuid.Nil).
type ProjectOrGlobalScope struct {
	ProjectID uuid.UUID
}

func (s ProjectOrGlobalScope) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("project_id IN ?", []uuid.UUID{s.ProjectID, uuid.Nil})
}

// ByPlatformUser identifies a customer inside a project.
type ByPlatformUser struct {
	Platform       string
	PlatformUserID string
}

func (s ByPlatformUser) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("platform = ? AND platform_user_id = ?", s.Platform, s.PlatformUserID)
}

type ByPlatformConversationID struct {
	Platform               string
	PlatformConversationID string
}

func (s ByPlatformConversationID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("platform = ? AND platform_conversation_id = ?", s.Platform, s.PlatformConversationID)
}

type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

type ByPageID struct {
	PageID string
}

func (s ByPageID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("page_id = ?", s.PageID)
}
