package returns

import (
	"context"
	"fmt"
	"time"

	"makhzan/internal/core/apperror"
	"makhzan/internal/core/tx"
	"makhzan/internal/domain/documents"
	"makhzan/pkg/logger"
)

// ReturnedItem is a listing row: the annotation joined with where it came
// from in the transaction log.
type ReturnedItem struct {
	Kind      Kind             `db:"kind" json:"kind"`
	ItemID    int64            `db:"item_id" json:"itemId"`
	RecordID  int64            `db:"record_id" json:"recordId"`
	AssetID   int64            `db:"asset_id" json:"assetId"`
	AssetName string           `db:"asset_name" json:"assetName"`
	Quantity  int64            `db:"quantity" json:"quantity"`
	Return    documents.Return `db:"-" json:"return"`
}

// Repository defines return persistence over both item tables.
type Repository interface {
	// NextReturnID computes max(return_id) across import and export items
	// plus one. Must run inside the batch transaction.
	NextReturnID(ctx context.Context) (int64, error)

	// ItemReturned reports whether the item exists and whether it already
	// carries a return annotation. A missing item yields NOT_FOUND.
	ItemReturned(ctx context.Context, kind Kind, itemID int64) (bool, error)

	// MarkReturned stamps the item with the annotation.
	MarkReturned(ctx context.Context, kind Kind, itemID int64, ret documents.Return) error

	// ListReturned retrieves returned items matching the filter.
	ListReturned(ctx context.Context, kind Kind, filter documents.ItemFilter) ([]*ReturnedItem, error)
}

// Service applies return batches to the transaction log.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new returns service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{repo: repo, txManager: txManager}
}

// Create applies a return batch atomically. Every item must exist and not
// already be returned; the whole batch is stamped with one shared return id
// computed inside the transaction. Stock counters are not re-adjusted:
// returned items stay part of the issued/received totals.
func (s *Service) Create(ctx context.Context, batch *Batch) (returnID int64, err error) {
	if err := batch.Validate(ctx); err != nil {
		return 0, err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		for _, item := range batch.Items {
			returned, err := s.repo.ItemReturned(ctx, batch.Kind, item.ItemID)
			if err != nil {
				return err
			}
			if returned {
				return apperror.NewAlreadyReturned(item.ItemID)
			}
		}

		returnID, err = s.repo.NextReturnID(ctx)
		if err != nil {
			return fmt.Errorf("next return id: %w", err)
		}

		for _, item := range batch.Items {
			ret := documents.Return{
				ReturnID:   returnID,
				ReturnedAt: batch.ReturnedAt,
				Purpose:    item.Purpose,
				Condition:  item.Condition,
				Notes:      item.Notes,
			}
			if err := s.repo.MarkReturned(ctx, batch.Kind, item.ItemID, ret); err != nil {
				return fmt.Errorf("mark item %d returned: %w", item.ItemID, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	logger.Info(ctx, "return batch applied",
		"return_id", returnID,
		"kind", batch.Kind,
		"items", len(batch.Items),
	)
	return returnID, nil
}

// ListReturned retrieves returned items of one kind. The filter's date
// range applies to the return date.
func (s *Service) ListReturned(ctx context.Context, kind Kind, filter documents.ItemFilter) ([]*ReturnedItem, error) {
	if kind != KindImport && kind != KindExport {
		return nil, apperror.NewValidation("invalid kind").
			WithDetail("value", string(kind))
	}
	filter.ReturnedOnly = true
	return s.repo.ListReturned(ctx, kind, filter)
}

// ListReturnedSince is a convenience for report screens.
func (s *Service) ListReturnedSince(ctx context.Context, kind Kind, since time.Time) ([]*ReturnedItem, error) {
	return s.ListReturned(ctx, kind, documents.ItemFilter{DateFrom: &since})
}
