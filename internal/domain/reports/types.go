// Package reports implements the reconciliation engine: it replays the
// transaction log into per-asset timelines with running totals, and builds
// the committee-signed annual inventory report.
package reports

import (
	"context"
	"time"

	"makhzan/internal/core/apperror"
	"makhzan/internal/core/types"
	"makhzan/internal/domain/assets"
)

// EventType distinguishes timeline entries.
type EventType string

const (
	EventImport EventType = "import"
	EventExport EventType = "export"
)

// Event is one movement of an asset taken from the transaction log.
type Event struct {
	Type     EventType `db:"event_type" json:"type"`
	Date     time.Time `db:"date" json:"date"`
	Quantity int64     `db:"quantity" json:"quantity"`
	RecordID int64     `db:"record_id" json:"recordId"`
}

// TimelineEntry is an event with the balance after applying it.
type TimelineEntry struct {
	Date         time.Time `json:"date"`
	Type         EventType `json:"type"`
	Quantity     int64     `json:"quantity"`
	RunningTotal int64     `json:"runningTotal"`
}

// Reconciliation is the replayed history of one asset up to a cut-off.
// NetQuantity is total imports minus total exports; it is computed from
// the log alone and never reads the live stock counter.
type Reconciliation struct {
	AssetID     int64           `json:"assetId"`
	AsOf        time.Time       `json:"asOf"`
	Timeline    []TimelineEntry `json:"timeline"`
	TotalIn     int64           `json:"totalIn"`
	TotalOut    int64           `json:"totalOut"`
	NetQuantity int64           `json:"netQuantity"`
}

// AssetSummary is one row of the full inventory report.
type AssetSummary struct {
	Asset        *assets.Asset `json:"asset"`
	CategoryName string        `json:"categoryName"`

	// AveragePrice is nil when the asset has no price history.
	AveragePrice *types.Money `json:"averagePrice"`

	Reconciliation Reconciliation `json:"reconciliation"`
}

// InventoryReport is the full reconciliation across all assets.
type InventoryReport struct {
	AsOf   time.Time       `json:"asOf"`
	Assets []*AssetSummary `json:"assets"`
}

// Committee signs off the annual report. One committee per year.
type Committee struct {
	Year        int     `db:"year" json:"year"`
	PresidentID int64   `db:"president_id" json:"presidentId"`
	MemberIDs   []int64 `db:"member_ids" json:"memberIds"`
}

// Validate implements domain.Validatable.
func (c *Committee) Validate(ctx context.Context) error {
	if c.Year < 1900 || c.Year > 3000 {
		return apperror.NewValidation("invalid year").
			WithDetail("field", "year")
	}
	if c.PresidentID == 0 {
		return apperror.NewValidation("president is required").
			WithDetail("field", "presidentId")
	}
	if len(c.MemberIDs) == 0 {
		return apperror.NewValidation("committee must have members").
			WithDetail("field", "memberIds")
	}
	for _, id := range c.MemberIDs {
		if id == c.PresidentID {
			return apperror.NewValidation("president cannot also be a member").
				WithDetail("field", "memberIds")
		}
	}
	return nil
}

// AnnualReport is the inventory as of Dec 31 plus the signing committee.
type AnnualReport struct {
	Year      int             `json:"year"`
	Inventory InventoryReport `json:"inventory"`

	// Committee is nil when none was appointed for the year.
	Committee *Committee `json:"committee"`
}
