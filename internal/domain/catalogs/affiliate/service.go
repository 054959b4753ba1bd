package affiliate

import (
	"context"

	"makhzan/internal/core/tx"
	"makhzan/internal/domain"
)

// Repository defines the interface for Affiliate persistence.
type Repository interface {
	domain.CatalogRepository[*Affiliate]
}

// SubRepository defines the interface for SubAffiliate persistence.
type SubRepository interface {
	domain.CatalogRepository[*SubAffiliate]

	// ListByAffiliate retrieves subdivisions of one affiliate.
	ListByAffiliate(ctx context.Context, affiliateID int64) ([]*SubAffiliate, error)
}

// Service provides business logic for the Affiliate catalogs.
type Service struct {
	*domain.CatalogService[*Affiliate]
	subs    *domain.CatalogService[*SubAffiliate]
	subRepo SubRepository
}

// NewService creates a new Affiliate service.
func NewService(repo Repository, subRepo SubRepository, txManager tx.Manager) *Service {
	return &Service{
		CatalogService: domain.NewCatalogService[*Affiliate](repo, txManager, "affiliate"),
		subs:           domain.NewCatalogService[*SubAffiliate](subRepo, txManager, "sub_affiliate"),
		subRepo:        subRepo,
	}
}

// Subs returns the sub-affiliate catalog service.
func (s *Service) Subs() *domain.CatalogService[*SubAffiliate] {
	return s.subs
}

// ListSubs retrieves subdivisions of one affiliate.
func (s *Service) ListSubs(ctx context.Context, affiliateID int64) ([]*SubAffiliate, error) {
	return s.subRepo.ListByAffiliate(ctx, affiliateID)
}
