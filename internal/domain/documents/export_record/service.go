package export_record

import (
	"context"
	"fmt"

	"makhzan/internal/core/apperror"
	"makhzan/internal/core/tx"
	"makhzan/internal/core/types"
	"makhzan/internal/domain"
	"makhzan/internal/domain/documents"
	"makhzan/internal/domain/recipients"
	"makhzan/pkg/logger"
)

// Repository defines the interface for export document persistence.
type Repository interface {
	// Create inserts the record and its items, filling generated IDs.
	Create(ctx context.Context, record *ExportRecord) error

	// GetByID retrieves the record with all its items.
	GetByID(ctx context.Context, id int64) (*ExportRecord, error)

	// List retrieves records matching the filter, items included.
	List(ctx context.Context, filter Filter) ([]*ExportRecord, error)

	// ListItems retrieves line items across records.
	ListItems(ctx context.Context, filter documents.ItemFilter) ([]*ExportItem, error)
}

// Filter extends the common item filter with the export type.
type Filter struct {
	documents.ItemFilter
	ExportType ExportType
}

// Ledger is the slice of the asset service the export flow needs.
type Ledger interface {
	AveragePrice(ctx context.Context, assetID int64) (types.Money, bool, error)
	AdjustStock(ctx context.Context, assetID int64, delta int64) error
}

// Service posts export documents to the transaction log.
type Service struct {
	repo      Repository
	ledger    Ledger
	directory recipients.Directory
	txManager tx.Manager
}

// NewService creates a new export document service.
func NewService(repo Repository, ledger Ledger, directory recipients.Directory, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		ledger:    ledger,
		directory: directory,
		txManager: txManager,
	}
}

// Create posts an export document atomically. The recipient reference is
// resolved against the catalogs, each item's unit price is derived from the
// asset's current average price, then stock is decreased per line. An asset
// without price history or with insufficient stock fails the whole document.
func (s *Service) Create(ctx context.Context, record *ExportRecord) error {
	if err := record.Validate(ctx); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		resolved, err := s.directory.Resolve(ctx, record.Recipient)
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewValidation("recipient does not exist").
					WithDetail("field", "recipient").
					WithDetail("recipient", record.Recipient.String()).
					WithCause(err)
			}
			return err
		}
		record.RecipientName = resolved.Name

		for _, item := range record.Items {
			price, ok, err := s.ledger.AveragePrice(ctx, item.AssetID)
			if err != nil {
				return fmt.Errorf("derive price for asset %d: %w", item.AssetID, err)
			}
			if !ok {
				return apperror.NewValidation("asset has no price history").
					WithDetail("field", "items").
					WithDetail("asset_id", item.AssetID)
			}
			item.Price = price
		}

		if err := s.repo.Create(ctx, record); err != nil {
			return fmt.Errorf("create export record: %w", err)
		}

		for _, item := range record.Items {
			if err := s.ledger.AdjustStock(ctx, item.AssetID, -item.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "export record posted",
		"record_id", record.ID,
		"export_type", record.ExportType,
		"recipient", record.Recipient.String(),
		"items", len(record.Items),
	)
	return nil
}

// GetByID retrieves an export record with its items and resolves the
// recipient name for display.
func (s *Service) GetByID(ctx context.Context, id int64) (*ExportRecord, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if resolved, err := s.directory.Resolve(ctx, record.Recipient); err == nil {
		record.RecipientName = resolved.Name
	}
	return record, nil
}

// List retrieves export records matching the filter.
func (s *Service) List(ctx context.Context, filter Filter) ([]*ExportRecord, error) {
	return s.repo.List(ctx, filter)
}

// ListItems retrieves export line items across records.
func (s *Service) ListItems(ctx context.Context, filter documents.ItemFilter) ([]*ExportItem, error) {
	return s.repo.ListItems(ctx, filter)
}

var _ domain.Validatable = (*ExportRecord)(nil)
