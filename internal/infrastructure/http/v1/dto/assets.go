package dto

import (
	"makhzan/internal/core/types"
	"makhzan/internal/domain/assets"
)

// AssetRequest creates or updates an asset. Price history and stock are
// managed by the ledger, not the caller.
type AssetRequest struct {
	CategoryID int64  `json:"categoryId" binding:"required"`
	Name       string `json:"name" binding:"required"`
	Brand      string `json:"brand"`
	BrandEN    string `json:"brandEn"`
	Unit       string `json:"unit" binding:"required"`
}

// ToAsset converts the request to a domain asset.
func (r AssetRequest) ToAsset() *assets.Asset {
	a := assets.New(r.CategoryID, r.Name, assets.Unit(r.Unit))
	a.Brand = r.Brand
	a.BrandEN = r.BrandEN
	return a
}

// AssetListQuery extends the common list query with asset filters.
type AssetListQuery struct {
	ListQuery
	CategoryID int64 `form:"categoryId"`
	InStock    bool  `form:"inStock"`
}

// PriceStatsResponse carries derived price statistics. Null values mean
// the asset has no price history yet.
type PriceStatsResponse struct {
	AssetID int64        `json:"assetId"`
	Average *types.Money `json:"average"`
	Median  *types.Money `json:"median"`
}
