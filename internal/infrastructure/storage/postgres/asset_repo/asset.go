// Package asset_repo provides the PostgreSQL implementation of the asset
// ledger. Price history lives in a JSONB column appended in place; the
// stock counter is adjusted with a conditional UPDATE so concurrent issues
// can never drive it negative.
package asset_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"makhzan/internal/core/apperror"
	"makhzan/internal/core/types"
	"makhzan/internal/domain/assets"
	"makhzan/internal/infrastructure/storage/postgres"
	"makhzan/internal/infrastructure/storage/postgres/catalog_repo"
)

// AssetRepo implements assets.Repository.
type AssetRepo struct {
	*catalog_repo.BaseCatalogRepo[*assets.Asset]
}

// NewAssetRepo creates a new asset repository.
func NewAssetRepo(txManager *postgres.TxManager) *AssetRepo {
	return &AssetRepo{
		BaseCatalogRepo: catalog_repo.NewBaseCatalogRepo(
			txManager,
			"assets",
			postgres.ExtractDBColumns[assets.Asset](),
			[]string{"name", "brand", "brand_en"},
			func() *assets.Asset { return &assets.Asset{} },
		),
	}
}

// ListByCategory retrieves all assets of a category ordered by id.
func (r *AssetRepo) ListByCategory(ctx context.Context, categoryID int64) ([]*assets.Asset, error) {
	q := r.Builder().
		Select(postgres.ExtractDBColumns[assets.Asset]()...).
		From("assets").
		Where(squirrel.Eq{"category_id": categoryID}).
		OrderBy("id ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*assets.Asset
	if err := pgxscan.Select(ctx, r.Querier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list by category: %w", err)
	}
	return items, nil
}

// AppendPrice appends price to the asset's JSONB price history in place.
func (r *AssetRepo) AppendPrice(ctx context.Context, assetID int64, price types.Money) error {
	const sql = `
		UPDATE assets
		SET price_history = price_history || to_jsonb($2::numeric)
		WHERE id = $1`

	result, err := r.Querier(ctx).Exec(ctx, sql, assetID, price)
	if err != nil {
		return fmt.Errorf("append price: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("asset", assetID)
	}
	return nil
}

// AdjustStock applies delta conditionally on the result staying
// non-negative. The condition runs against the live row, so two concurrent
// exports cannot both pass a stale check.
func (r *AssetRepo) AdjustStock(ctx context.Context, assetID int64, delta int64) error {
	const sql = `
		UPDATE assets
		SET stock = stock + $2
		WHERE id = $1 AND stock + $2 >= 0`

	result, err := r.Querier(ctx).Exec(ctx, sql, assetID, delta)
	if err != nil {
		return fmt.Errorf("adjust stock: %w", err)
	}
	if result.RowsAffected() > 0 {
		return nil
	}

	// Zero rows: either the asset is missing or the delta would go negative.
	stock, err := r.GetStock(ctx, assetID)
	if err != nil {
		return err
	}
	return apperror.NewInsufficientStock(assetID, -delta, stock)
}

// GetStock reads the current stock counter.
func (r *AssetRepo) GetStock(ctx context.Context, assetID int64) (int64, error) {
	var stock int64
	err := r.Querier(ctx).QueryRow(ctx, `SELECT stock FROM assets WHERE id = $1`, assetID).Scan(&stock)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, apperror.NewNotFound("asset", assetID)
	}
	if err != nil {
		return 0, fmt.Errorf("get stock: %w", err)
	}
	return stock, nil
}

var _ assets.Repository = (*AssetRepo)(nil)
