package employee

import (
	"context"

	"makhzan/internal/core/tx"
	"makhzan/internal/domain"
)

// Repository defines the interface for Employee persistence.
type Repository interface {
	domain.CatalogRepository[*Employee]

	// ListByDepartment retrieves all employees of a department.
	ListByDepartment(ctx context.Context, departmentID int64) ([]*Employee, error)
}

// Service provides business logic for the Employee catalog.
type Service struct {
	*domain.CatalogService[*Employee]
	repo Repository
}

// NewService creates a new Employee service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{
		CatalogService: domain.NewCatalogService[*Employee](repo, txManager, "employee"),
		repo:           repo,
	}
}

// ListByDepartment retrieves employees of one department.
func (s *Service) ListByDepartment(ctx context.Context, departmentID int64) ([]*Employee, error) {
	return s.repo.ListByDepartment(ctx, departmentID)
}
