// Package import_record implements the goods-receipt side of the
// transaction log. Posting an import appends each item's purchase price to
// the asset's history and increases its stock, all in one transaction.
package import_record

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"makhzan/internal/core/apperror"
	"makhzan/internal/core/types"
	"makhzan/internal/domain/documents"
)

// ImportRecord is the document header for a goods receipt from a supplier.
type ImportRecord struct {
	ID        int64      `db:"id" json:"id"`
	CompanyID int64      `db:"company_id" json:"companyId"`
	Date      time.Time  `db:"date" json:"date"`
	AssignNum string     `db:"assign_number" json:"assignNumber,omitempty"`
	AssignAt  *time.Time `db:"assign_date" json:"assignDate,omitempty"`
	Notes     string     `db:"notes" json:"notes,omitempty"`

	Items []*ImportItem `db:"-" json:"items"`
}

// ImportItem is one received line: an asset, a quantity and the purchase
// unit price that enters the asset's price history.
type ImportItem struct {
	ID        int64       `db:"id" json:"id"`
	RecordID  int64       `db:"record_id" json:"recordId"`
	AssetID   int64       `db:"asset_id" json:"assetId"`
	Quantity  int64       `db:"quantity" json:"quantity"`
	Price     types.Money `db:"price" json:"price"`
	CreatedAt time.Time   `db:"created_at" json:"createdAt"`

	Return *documents.Return `db:"-" json:"return,omitempty"`
}

// Total returns quantity times unit price for the line.
func (i *ImportItem) Total() types.Money {
	return i.Price.Mul(decimal.NewFromInt(i.Quantity))
}

// Validate implements domain.Validatable.
func (r *ImportRecord) Validate(ctx context.Context) error {
	if r.CompanyID == 0 {
		return apperror.NewValidation("company is required").
			WithDetail("field", "companyId")
	}
	if r.Date.IsZero() {
		return apperror.NewValidation("date is required").
			WithDetail("field", "date")
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
		if item.Price.IsNegative() {
			return apperror.NewValidation("item price cannot be negative").
				WithDetail("field", "items").
				WithDetail("index", idx)
		}
	}
	return nil
}

// GrandTotal sums the line totals of the document.
func (r *ImportRecord) GrandTotal() types.Money {
	sum := types.Zero()
	for _, item := range r.Items {
		sum = sum.Add(item.Total())
	}
	return sum
}
