// Package assets provides the asset ledger: the catalog of tracked items
// with their append-only price history and running stock counter.
package assets

import (
	"context"

	"makhzan/internal/core/apperror"
	"makhzan/internal/core/types"
)

// Unit defines how an asset is counted.
type Unit string

const (
	UnitPiece Unit = "piece"
	UnitBox   Unit = "box"
	UnitSet   Unit = "set"
)

// Asset represents one tracked item in the ledger.
//
// PriceHistory is append-only: every import of the asset appends the
// purchase unit price, and nothing ever removes or rewrites entries.
// Stock is the warehouse counter, adjusted only through AdjustStock.
type Asset struct {
	ID         int64  `db:"id" json:"id"`
	CategoryID int64  `db:"category_id" json:"categoryId"`
	Name       string `db:"name" json:"name"`
	Brand      string `db:"brand" json:"brand,omitempty"`
	BrandEN    string `db:"brand_en" json:"brandEn,omitempty"`
	Unit       Unit   `db:"unit" json:"unit"`

	// PriceHistory is stored as a JSONB array of decimal strings.
	PriceHistory []types.Money `db:"price_history" json:"priceHistory"`

	Stock int64 `db:"stock" json:"stock"`
}

// New creates an Asset with an empty price history and zero stock.
func New(categoryID int64, name string, unit Unit) *Asset {
	return &Asset{
		CategoryID:   categoryID,
		Name:         name,
		Unit:         unit,
		PriceHistory: []types.Money{},
	}
}

// Validate implements domain.Validatable.
func (a *Asset) Validate(ctx context.Context) error {
	if a.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	if a.CategoryID == 0 {
		return apperror.NewValidation("category is required").
			WithDetail("field", "categoryId")
	}
	switch a.Unit {
	case UnitPiece, UnitBox, UnitSet:
	default:
		return apperror.NewValidation("invalid unit").
			WithDetail("field", "unit").
			WithDetail("value", string(a.Unit))
	}
	if a.Stock < 0 {
		return apperror.NewNegativeStock(a.ID)
	}
	for _, p := range a.PriceHistory {
		if p.IsNegative() {
			return apperror.NewValidation("price history cannot contain negative prices").
				WithDetail("field", "priceHistory")
		}
	}
	return nil
}

// AveragePrice returns the quarter-rounded mean of the price history.
// ok is false when the asset was never imported.
func (a *Asset) AveragePrice() (types.Money, bool) {
	return types.AveragePrice(a.PriceHistory)
}

// MedianPrice returns the quarter-rounded median of the price history.
// ok is false when the asset was never imported.
func (a *Asset) MedianPrice() (types.Money, bool) {
	return types.MedianPrice(a.PriceHistory)
}
