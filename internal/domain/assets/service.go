package assets

import (
	"context"

	"makhzan/internal/core/apperror"
	"makhzan/internal/core/tx"
	"makhzan/internal/core/types"
	"makhzan/internal/domain"
)

// Repository defines the interface for Asset persistence.
type Repository interface {
	domain.CatalogRepository[*Asset]

	// ListByCategory retrieves all assets of a category ordered by id.
	ListByCategory(ctx context.Context, categoryID int64) ([]*Asset, error)

	// AppendPrice appends price to the asset's price history.
	AppendPrice(ctx context.Context, assetID int64, price types.Money) error

	// AdjustStock atomically applies delta to the asset's stock counter.
	// The update is conditional on the result staying non-negative; a
	// would-be negative result returns (current stock, ErrInsufficient)
	// via apperror.NewInsufficientStock without modifying the row.
	AdjustStock(ctx context.Context, assetID int64, delta int64) error

	// GetStock reads the current stock counter.
	GetStock(ctx context.Context, assetID int64) (int64, error)
}

// Service provides business logic for the asset ledger.
type Service struct {
	*domain.CatalogService[*Asset]
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new asset service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{
		CatalogService: domain.NewCatalogService[*Asset](repo, txManager, "asset"),
		repo:           repo,
		txManager:      txManager,
	}
}

// ListByCategory retrieves assets of one category.
func (s *Service) ListByCategory(ctx context.Context, categoryID int64) ([]*Asset, error) {
	return s.repo.ListByCategory(ctx, categoryID)
}

// RecordPrice appends a purchase price to the asset's history.
// Called by the import document flow for every received item.
func (s *Service) RecordPrice(ctx context.Context, assetID int64, price types.Money) error {
	if price.IsNegative() {
		return apperror.NewValidation("price cannot be negative").
			WithDetail("asset_id", assetID).
			WithDetail("price", price.String())
	}
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.AppendPrice(ctx, assetID, price)
	})
}

// AveragePrice returns the asset's quarter-rounded average price.
// ok is false when the asset has no price history.
func (s *Service) AveragePrice(ctx context.Context, assetID int64) (types.Money, bool, error) {
	a, err := s.repo.GetByID(ctx, assetID)
	if err != nil {
		return types.Money{}, false, err
	}
	avg, ok := a.AveragePrice()
	return avg, ok, nil
}

// MedianPrice returns the asset's quarter-rounded median price.
// ok is false when the asset has no price history.
func (s *Service) MedianPrice(ctx context.Context, assetID int64) (types.Money, bool, error) {
	a, err := s.repo.GetByID(ctx, assetID)
	if err != nil {
		return types.Money{}, false, err
	}
	med, ok := a.MedianPrice()
	return med, ok, nil
}

// AdjustStock applies delta to the asset's stock inside a transaction.
// Positive deltas receive stock, negative deltas issue it. Issuing more
// than available fails with INSUFFICIENT_STOCK and leaves the counter
// unchanged.
func (s *Service) AdjustStock(ctx context.Context, assetID int64, delta int64) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.AdjustStock(ctx, assetID, delta)
	})
}
