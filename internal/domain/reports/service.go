package reports

import (
	"context"
	"fmt"
	"sort"
	"time"

	"makhzan/internal/core/apperror"
	"makhzan/internal/core/tx"
	"makhzan/internal/domain/assets"
)

// Repository defines the read side of the reconciliation engine plus
// committee persistence.
type Repository interface {
	// ListEvents fetches import and export movements of one asset whose
	// parent record date is on or before asOf, in no particular order.
	ListEvents(ctx context.Context, assetID int64, asOf time.Time) ([]Event, error)

	// ListAssets fetches all assets joined with their category name,
	// ordered by category name then asset id.
	ListAssets(ctx context.Context) ([]*assets.Asset, map[int64]string, error)

	// GetCommittee fetches the committee for a year, nil when absent.
	GetCommittee(ctx context.Context, year int) (*Committee, error)

	// SaveCommittee upserts the committee for its year.
	SaveCommittee(ctx context.Context, c *Committee) error
}

// Service runs reconciliations and annual reports. All report operations
// are read-only; SaveCommittee is the single write.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new reports service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{repo: repo, txManager: txManager}
}

// sortEvents orders the timeline deterministically: by date ascending,
// imports before exports on the same date, then by record id.
func sortEvents(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.Type != b.Type {
			return a.Type == EventImport
		}
		return a.RecordID < b.RecordID
	})
}

// replay folds sorted events into a timeline with running totals.
func replay(assetID int64, asOf time.Time, events []Event) Reconciliation {
	rec := Reconciliation{
		AssetID:  assetID,
		AsOf:     asOf,
		Timeline: make([]TimelineEntry, 0, len(events)),
	}

	var running int64
	for _, ev := range events {
		switch ev.Type {
		case EventImport:
			running += ev.Quantity
			rec.TotalIn += ev.Quantity
		case EventExport:
			running -= ev.Quantity
			rec.TotalOut += ev.Quantity
		}
		rec.Timeline = append(rec.Timeline, TimelineEntry{
			Date:         ev.Date,
			Type:         ev.Type,
			Quantity:     ev.Quantity,
			RunningTotal: running,
		})
	}
	rec.NetQuantity = rec.TotalIn - rec.TotalOut
	return rec
}

// Reconcile replays one asset's movements up to asOf.
func (s *Service) Reconcile(ctx context.Context, assetID int64, asOf time.Time) (Reconciliation, error) {
	events, err := s.repo.ListEvents(ctx, assetID, asOf)
	if err != nil {
		return Reconciliation{}, fmt.Errorf("list events for asset %d: %w", assetID, err)
	}
	sortEvents(events)
	return replay(assetID, asOf, events), nil
}

// ReconcileAll builds the full inventory report: every asset replayed up
// to asOf, enriched with category name and derived average price, ordered
// by category name then asset id.
func (s *Service) ReconcileAll(ctx context.Context, asOf time.Time) (*InventoryReport, error) {
	all, categoryNames, err := s.repo.ListAssets(ctx)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}

	report := &InventoryReport{
		AsOf:   asOf,
		Assets: make([]*AssetSummary, 0, len(all)),
	}

	for _, a := range all {
		rec, err := s.Reconcile(ctx, a.ID, asOf)
		if err != nil {
			return nil, err
		}

		summary := &AssetSummary{
			Asset:          a,
			CategoryName:   categoryNames[a.CategoryID],
			Reconciliation: rec,
		}
		if avg, ok := a.AveragePrice(); ok {
			summary.AveragePrice = &avg
		}
		report.Assets = append(report.Assets, summary)
	}

	sort.SliceStable(report.Assets, func(i, j int) bool {
		a, b := report.Assets[i], report.Assets[j]
		if a.CategoryName != b.CategoryName {
			return a.CategoryName < b.CategoryName
		}
		return a.Asset.ID < b.Asset.ID
	})

	return report, nil
}

// AnnualReport builds the inventory as of December 31 of year, with the
// committee appointed for that year when one exists.
func (s *Service) AnnualReport(ctx context.Context, year int) (*AnnualReport, error) {
	if year < 1900 || year > 3000 {
		return nil, apperror.NewValidation("invalid year").WithDetail("field", "year")
	}

	asOf := time.Date(year, time.December, 31, 23, 59, 59, 0, time.UTC)
	inventory, err := s.ReconcileAll(ctx, asOf)
	if err != nil {
		return nil, err
	}

	committee, err := s.repo.GetCommittee(ctx, year)
	if err != nil && !apperror.IsNotFound(err) {
		return nil, err
	}

	return &AnnualReport{
		Year:      year,
		Inventory: *inventory,
		Committee: committee,
	}, nil
}

// SaveCommittee appoints or replaces the committee for a year.
func (s *Service) SaveCommittee(ctx context.Context, c *Committee) error {
	if err := c.Validate(ctx); err != nil {
		return err
	}
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.SaveCommittee(ctx, c)
	})
}

// GetCommittee fetches the committee appointed for a year.
func (s *Service) GetCommittee(ctx context.Context, year int) (*Committee, error) {
	return s.repo.GetCommittee(ctx, year)
}
