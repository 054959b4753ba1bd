package department

import (
	"makhzan/internal/core/tx"
	"makhzan/internal/domain"
)

// Repository defines the interface for Department persistence.
type Repository interface {
	domain.CatalogRepository[*Department]
}

// Service provides business logic for the Department catalog.
type Service struct {
	*domain.CatalogService[*Department]
}

// NewService creates a new Department service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{
		CatalogService: domain.NewCatalogService[*Department](repo, txManager, "department"),
	}
}
