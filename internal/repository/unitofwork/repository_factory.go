package unitofwork

import "context"

// RepositoryFactory hands out a UnitOfWork bound to the request context.
// Services depend on this instead of *gorm.DB so tests can swap in fakes.
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}
