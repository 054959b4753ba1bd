package category

import (
	"context"

	"makhzan/internal/core/tx"
	"makhzan/internal/domain"
)

// Repository defines the interface for Category persistence.
type Repository interface {
	domain.CatalogRepository[*Category]

	// FindByName retrieves a category by its unique name.
	FindByName(ctx context.Context, name string) (*Category, error)
}

// Service provides business logic for the Category catalog.
type Service struct {
	*domain.CatalogService[*Category]
	repo Repository
}

// NewService creates a new Category service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{
		CatalogService: domain.NewCatalogService[*Category](repo, txManager, "category"),
		repo:           repo,
	}
}

// FindByName retrieves a category by name.
func (s *Service) FindByName(ctx context.Context, name string) (*Category, error) {
	return s.repo.FindByName(ctx, name)
}
