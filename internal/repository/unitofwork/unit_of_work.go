package unitofwork

import (
	"context"

	"ai-sales-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ProjectRepository() contract.ProjectRepository
	SocialAccountRepository() contract.SocialAccountRepository
	ProductRepository() contract.ProductRepository
	BrandProfileRepository() contract.BrandProfileRepository
	KnowledgeRepository() contract.KnowledgeRepository
	ResearchRepository() contract.ResearchRepository
	CustomerRepository() contract.CustomerRepository
	ConversationRepository() contract.ConversationRepository
	OrderRepository() contract.OrderRepository
}
