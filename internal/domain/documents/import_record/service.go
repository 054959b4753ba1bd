package import_record

import (
	"context"
	"fmt"

	"makhzan/internal/core/apperror"
	"makhzan/internal/core/tx"
	"makhzan/internal/core/types"
	"makhzan/internal/domain"
	"makhzan/internal/domain/documents"
	"makhzan/pkg/logger"
)

// Repository defines the interface for import document persistence.
type Repository interface {
	// Create inserts the record and its items, filling generated IDs.
	Create(ctx context.Context, record *ImportRecord) error

	// GetByID retrieves the record with all its items.
	GetByID(ctx context.Context, id int64) (*ImportRecord, error)

	// List retrieves records matching the filter, items included.
	List(ctx context.Context, filter documents.ItemFilter) ([]*ImportRecord, error)

	// ListItems retrieves line items across records.
	ListItems(ctx context.Context, filter documents.ItemFilter) ([]*ImportItem, error)
}

// Ledger is the slice of the asset service the import flow needs.
type Ledger interface {
	Exists(ctx context.Context, assetID int64) (bool, error)
	RecordPrice(ctx context.Context, assetID int64, price types.Money) error
	AdjustStock(ctx context.Context, assetID int64, delta int64) error
}

// Service posts import documents to the transaction log.
type Service struct {
	repo      Repository
	ledger    Ledger
	txManager tx.Manager
}

// NewService creates a new import document service.
func NewService(repo Repository, ledger Ledger, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		ledger:    ledger,
		txManager: txManager,
	}
}

// Create posts an import document atomically: the record and items are
// inserted, then every item's price is appended to the asset's history and
// its quantity added to stock. Any failure rolls back the whole document.
func (s *Service) Create(ctx context.Context, record *ImportRecord) error {
	if err := record.Validate(ctx); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		for _, item := range record.Items {
			exists, err := s.ledger.Exists(ctx, item.AssetID)
			if err != nil {
				return fmt.Errorf("check asset %d: %w", item.AssetID, err)
			}
			if !exists {
				return apperror.NewNotFound("asset", item.AssetID)
			}
		}

		if err := s.repo.Create(ctx, record); err != nil {
			return fmt.Errorf("create import record: %w", err)
		}

		for _, item := range record.Items {
			if err := s.ledger.RecordPrice(ctx, item.AssetID, item.Price); err != nil {
				return fmt.Errorf("record price for asset %d: %w", item.AssetID, err)
			}
			if err := s.ledger.AdjustStock(ctx, item.AssetID, item.Quantity); err != nil {
				return fmt.Errorf("receive stock for asset %d: %w", item.AssetID, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "import record posted",
		"record_id", record.ID,
		"items", len(record.Items),
	)
	return nil
}

// GetByID retrieves an import record with its items.
func (s *Service) GetByID(ctx context.Context, id int64) (*ImportRecord, error) {
	return s.repo.GetByID(ctx, id)
}

// List retrieves import records matching the filter.
func (s *Service) List(ctx context.Context, filter documents.ItemFilter) ([]*ImportRecord, error) {
	return s.repo.List(ctx, filter)
}

// ListItems retrieves import line items across records.
func (s *Service) ListItems(ctx context.Context, filter documents.ItemFilter) ([]*ImportItem, error) {
	return s.repo.ListItems(ctx, filter)
}

var _ domain.Validatable = (*ImportRecord)(nil)
