// Package export_record implements the goods-issue side of the transaction
// log. Posting an export prices each item at the asset's current average
// price and decreases stock, rejecting the whole document when any line
// exceeds availability.
package export_record

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"makhzan/internal/core/apperror"
	"makhzan/internal/core/types"
	"makhzan/internal/domain/documents"
	"makhzan/internal/domain/recipients"
)

// ExportType describes why the assets leave the warehouse.
type ExportType string

const (
	TypeConsume    ExportType = "consume"
	TypePersonal   ExportType = "personal"
	TypeDepartment ExportType = "department"
	TypeLoan       ExportType = "loan"
)

// ExportRecord is the document header for a goods issue.
type ExportRecord struct {
	ID         int64          `db:"id" json:"id"`
	Date       time.Time      `db:"date" json:"date"`
	ExportType ExportType     `db:"export_type" json:"exportType"`
	Recipient  recipients.Ref `db:"-" json:"recipient"`
	Notes      string         `db:"notes" json:"notes,omitempty"`

	// RecipientName is resolved from the catalogs at read time.
	RecipientName string `db:"-" json:"recipientName,omitempty"`

	Items []*ExportItem `db:"-" json:"items"`
}

// ExportItem is one issued line. Price is derived from the asset's price
// history at posting time, never supplied by the caller.
type ExportItem struct {
	ID           int64       `db:"id" json:"id"`
	RecordID     int64       `db:"record_id" json:"recordId"`
	AssetID      int64       `db:"asset_id" json:"assetId"`
	Quantity     int64       `db:"quantity" json:"quantity"`
	SerialNumber string      `db:"serial_number" json:"serialNumber,omitempty"`
	Price        types.Money `db:"price" json:"price"`
	CreatedAt    time.Time   `db:"created_at" json:"createdAt"`

	Return *documents.Return `db:"-" json:"return,omitempty"`
}

// Total returns quantity times derived unit price for the line.
func (i *ExportItem) Total() types.Money {
	return i.Price.Mul(decimal.NewFromInt(i.Quantity))
}

// Validate implements domain.Validatable. Prices are not checked here
// because they are derived during posting.
func (r *ExportRecord) Validate(ctx context.Context) error {
	if r.Date.IsZero() {
		return apperror.NewValidation("date is required").
			WithDetail("field", "date")
	}
	switch r.ExportType {
	case TypeConsume, TypePersonal, TypeDepartment, TypeLoan:
	default:
		return apperror.NewValidation("invalid export type").
			WithDetail("field", "exportType").
			WithDetail("value", string(r.ExportType))
	}
	if err := r.Recipient.Validate(); err != nil {
		return err
	}
	if len(r.Items) == 0 {
		return apperror.NewValidation("document must have at least one item").
			WithDetail("field", "items")
	}
	for idx, item := range r.Items {
		if item.AssetID == 0 {
			return apperror.NewValidation("item asset is required").
				WithDetail("field", "items").
				WithDetail("index", idx)
		}
		if item.Quantity <= 0 {
			return apperror.NewValidation("item quantity must be positive").
				WithDetail("field", "items").
				WithDetail("index", idx)
		}
	}
	return nil
}

// GrandTotal sums the line totals of the document.
func (r *ExportRecord) GrandTotal() types.Money {
	sum := types.Zero()
	for _, item := range r.Items {
		sum = sum.Add(item.Total())
	}
	return sum
}
