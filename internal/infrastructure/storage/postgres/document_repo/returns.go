package document_repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"makhzan/internal/core/apperror"
	"makhzan/internal/domain/documents"
	"makhzan/internal/domain/documents/returns"
	"makhzan/internal/infrastructure/storage/postgres"
)

// ReturnsRepo implements returns.Repository over both item tables.
type ReturnsRepo struct {
	txManager *postgres.TxManager
}

// NewReturnsRepo creates a new returns repository.
func NewReturnsRepo(txManager *postgres.TxManager) *ReturnsRepo {
	return &ReturnsRepo{txManager: txManager}
}

func (r *ReturnsRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func itemsTable(kind returns.Kind) string {
	if kind == returns.KindImport {
		return "import_items"
	}
	return "export_items"
}

// NextReturnID computes max(return_id) across import and export items plus
// one. The counter is global so a batch id never repeats on either side.
func (r *ReturnsRepo) NextReturnID(ctx context.Context) (int64, error) {
	const sql = `
		SELECT COALESCE(MAX(return_id), 0) + 1 FROM (
			SELECT return_id FROM import_items WHERE return_id IS NOT NULL
			UNION ALL
			SELECT return_id FROM export_items WHERE return_id IS NOT NULL
		) ids`

	var next int64
	if err := r.txManager.GetQuerier(ctx).QueryRow(ctx, sql).Scan(&next); err != nil {
		return 0, fmt.Errorf("next return id: %w", err)
	}
	return next, nil
}

// ItemReturned reports whether the item already carries a return
// annotation. A missing item yields NOT_FOUND.
func (r *ReturnsRepo) ItemReturned(ctx context.Context, kind returns.Kind, itemID int64) (bool, error) {
	sql := fmt.Sprintf(`SELECT return_id IS NOT NULL FROM %s WHERE id = $1`, itemsTable(kind))

	var returned bool
	err := r.txManager.GetQuerier(ctx).QueryRow(ctx, sql, itemID).Scan(&returned)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, apperror.NewNotFound("item", itemID)
	}
	if err != nil {
		return false, fmt.Errorf("check item returned: %w", err)
	}
	return returned, nil
}

// MarkReturned stamps the item with the annotation. The guard on
// return_id keeps a concurrent double return from overwriting the first.
func (r *ReturnsRepo) MarkReturned(ctx context.Context, kind returns.Kind, itemID int64, ret documents.Return) error {
	sql := fmt.Sprintf(`
		UPDATE %s
		SET return_id = $2, returned_at = $3, return_purpose = $4,
		    return_condition = $5, return_notes = $6
		WHERE id = $1 AND return_id IS NULL`, itemsTable(kind))

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql,
		itemID, ret.ReturnID, ret.ReturnedAt, ret.Purpose, ret.Condition, ret.Notes)
	if err != nil {
		return fmt.Errorf("mark returned: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewAlreadyReturned(itemID)
	}
	return nil
}

// returnedItemRow joins the annotation with item and asset context.
type returnedItemRow struct {
	ItemID    int64  `db:"item_id"`
	RecordID  int64  `db:"record_id"`
	AssetID   int64  `db:"asset_id"`
	AssetName string `db:"asset_name"`
	Quantity  int64  `db:"quantity"`

	ReturnID        int64     `db:"return_id"`
	ReturnedAt      time.Time `db:"returned_at"`
	ReturnPurpose   string    `db:"return_purpose"`
	ReturnCondition string    `db:"return_condition"`
	ReturnNotes     *string   `db:"return_notes"`
}

// ListReturned retrieves returned items matching the filter.
func (r *ReturnsRepo) ListReturned(ctx context.Context, kind returns.Kind, filter documents.ItemFilter) ([]*returns.ReturnedItem, error) {
	recordsTable := "import_records"
	if kind == returns.KindExport {
		recordsTable = "export_records"
	}

	q := r.builder().
		Select(
			"i.id AS item_id", "i.record_id", "i.asset_id", "a.name AS asset_name", "i.quantity",
			"i.return_id", "i.returned_at", "i.return_purpose", "i.return_condition", "i.return_notes",
		).
		From(itemsTable(kind) + " i").
		Join(recordsTable + " r ON r.id = i.record_id").
		Join("assets a ON a.id = i.asset_id")

	filter.ReturnedOnly = true
	q = applyItemFilter(q, filter)
	q = q.OrderBy("i.returned_at DESC", "i.id ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []*returnedItemRow
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list returned items: %w", err)
	}

	items := make([]*returns.ReturnedItem, len(rows))
	for i, row := range rows {
		item := &returns.ReturnedItem{
			Kind:      kind,
			ItemID:    row.ItemID,
			RecordID:  row.RecordID,
			AssetID:   row.AssetID,
			AssetName: row.AssetName,
			Quantity:  row.Quantity,
			Return: documents.Return{
				ReturnID:   row.ReturnID,
				ReturnedAt: row.ReturnedAt,
				Purpose:    row.ReturnPurpose,
				Condition:  documents.Condition(row.ReturnCondition),
			},
		}
		if row.ReturnNotes != nil {
			item.Return.Notes = *row.ReturnNotes
		}
		items[i] = item
	}
	return items, nil
}

var _ returns.Repository = (*ReturnsRepo)(nil)
