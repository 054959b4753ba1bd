package company

import (
	"makhzan/internal/core/tx"
	"makhzan/internal/domain"
)

// Repository defines the interface for Company persistence.
type Repository interface {
	domain.CatalogRepository[*Company]
}

// Service provides business logic for the Company catalog.
type Service struct {
	*domain.CatalogService[*Company]
}

// NewService creates a new Company service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{
		CatalogService: domain.NewCatalogService[*Company](repo, txManager, "company"),
	}
}
