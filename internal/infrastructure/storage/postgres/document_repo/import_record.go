// Package document_repo provides PostgreSQL implementations for the
// transaction log documents. Records and their line items live in separate
// tables; return annotations are nullable columns on the item rows.
package document_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"makhzan/internal/core/apperror"
	"makhzan/internal/core/types"
	"makhzan/internal/domain/documents"
	"makhzan/internal/domain/documents/import_record"
	"makhzan/internal/infrastructure/storage/postgres"
)

// ImportRecordRepo implements import_record.Repository.
type ImportRecordRepo struct {
	txManager *postgres.TxManager
}

// NewImportRecordRepo creates a new import record repository.
func NewImportRecordRepo(txManager *postgres.TxManager) *ImportRecordRepo {
	return &ImportRecordRepo{txManager: txManager}
}

func (r *ImportRecordRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// importItemRow mirrors the import_items table including the nullable
// return annotation columns.
type importItemRow struct {
	ID        int64       `db:"id"`
	RecordID  int64       `db:"record_id"`
	AssetID   int64       `db:"asset_id"`
	Quantity  int64       `db:"quantity"`
	Price     types.Money `db:"price"`
	CreatedAt time.Time   `db:"created_at"`

	ReturnID        *int64     `db:"return_id"`
	ReturnedAt      *time.Time `db:"returned_at"`
	ReturnPurpose   *string    `db:"return_purpose"`
	ReturnCondition *string    `db:"return_condition"`
	ReturnNotes     *string    `db:"return_notes"`
}

func (row *importItemRow) toItem() *import_record.ImportItem {
	item := &import_record.ImportItem{
		ID:        row.ID,
		RecordID:  row.RecordID,
		AssetID:   row.AssetID,
		Quantity:  row.Quantity,
		Price:     row.Price,
		CreatedAt: row.CreatedAt,
	}
	if row.ReturnID != nil {
		item.Return = &documents.Return{
			ReturnID:   *row.ReturnID,
			ReturnedAt: *row.ReturnedAt,
			Purpose:    *row.ReturnPurpose,
			Condition:  documents.Condition(*row.ReturnCondition),
		}
		if row.ReturnNotes != nil {
			item.Return.Notes = *row.ReturnNotes
		}
	}
	return item
}

var importItemCols = []string{
	"i.id", "i.record_id", "i.asset_id", "i.quantity", "i.price", "i.created_at",
	"i.return_id", "i.returned_at", "i.return_purpose", "i.return_condition", "i.return_notes",
}

// Create inserts the record and its items, filling generated IDs.
func (r *ImportRecordRepo) Create(ctx context.Context, record *import_record.ImportRecord) error {
	querier := r.txManager.GetQuerier(ctx)

	q := r.builder().
		Insert("import_records").
		Columns("company_id", "date", "assign_number", "assign_date", "notes").
		Values(record.CompanyID, record.Date, record.AssignNum, record.AssignAt, record.Notes).
		Suffix("RETURNING id")

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert record: %w", err)
	}
	if err := querier.QueryRow(ctx, sql, args...).Scan(&record.ID); err != nil {
		return fmt.Errorf("insert import record: %w", err)
	}

	for _, item := range record.Items {
		item.RecordID = record.ID

		iq := r.builder().
			Insert("import_items").
			Columns("record_id", "asset_id", "quantity", "price").
			Values(item.RecordID, item.AssetID, item.Quantity, item.Price).
			Suffix("RETURNING id, created_at")

		sql, args, err := iq.ToSql()
		if err != nil {
			return fmt.Errorf("build insert item: %w", err)
		}
		if err := querier.QueryRow(ctx, sql, args...).Scan(&item.ID, &item.CreatedAt); err != nil {
			return fmt.Errorf("insert import item: %w", err)
		}
	}
	return nil
}

// GetByID retrieves the record with all its items.
func (r *ImportRecordRepo) GetByID(ctx context.Context, id int64) (*import_record.ImportRecord, error) {
	querier := r.txManager.GetQuerier(ctx)

	record := &import_record.ImportRecord{}
	q := r.builder().
		Select("id", "company_id", "date", "assign_number", "assign_date", "notes").
		From("import_records").
		Where(squirrel.Eq{"id": id})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	if err := pgxscan.Get(ctx, querier, record, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("import_record", id)
		}
		return nil, fmt.Errorf("get import record: %w", err)
	}

	items, err := r.itemsForRecords(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	record.Items = items[id]
	return record, nil
}

func (r *ImportRecordRepo) itemsForRecords(ctx context.Context, recordIDs []int64) (map[int64][]*import_record.ImportItem, error) {
	q := r.builder().
		Select(importItemCols...).
		From("import_items i").
		Where(squirrel.Eq{"i.record_id": recordIDs}).
		OrderBy("i.id ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build items query: %w", err)
	}

	var rows []*importItemRow
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("select import items: %w", err)
	}

	out := make(map[int64][]*import_record.ImportItem, len(recordIDs))
	for _, row := range rows {
		out[row.RecordID] = append(out[row.RecordID], row.toItem())
	}
	return out, nil
}

// List retrieves records matching the filter, items included.
func (r *ImportRecordRepo) List(ctx context.Context, filter documents.ItemFilter) ([]*import_record.ImportRecord, error) {
	q := r.builder().
		Select("DISTINCT r.id", "r.company_id", "r.date", "r.assign_number", "r.assign_date", "r.notes").
		From("import_records r")

	q = applyRecordFilter(q, filter, "import_items")

	q = q.OrderBy("r.id DESC")
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	var records []*import_record.ImportRecord
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &records, sql, args...); err != nil {
		return nil, fmt.Errorf("list import records: %w", err)
	}
	if len(records) == 0 {
		return records, nil
	}

	ids := make([]int64, len(records))
	for i, rec := range records {
		ids[i] = rec.ID
	}
	itemsByRecord, err := r.itemsForRecords(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		rec.Items = itemsByRecord[rec.ID]
	}
	return records, nil
}

// ListItems retrieves line items across records.
func (r *ImportRecordRepo) ListItems(ctx context.Context, filter documents.ItemFilter) ([]*import_record.ImportItem, error) {
	q := r.builder().
		Select(importItemCols...).
		From("import_items i").
		Join("import_records r ON r.id = i.record_id")

	q = applyItemFilter(q, filter)
	q = q.OrderBy("i.id ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build items query: %w", err)
	}

	var rows []*importItemRow
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list import items: %w", err)
	}

	items := make([]*import_record.ImportItem, len(rows))
	for i, row := range rows {
		items[i] = row.toItem()
	}
	return items, nil
}

var _ import_record.Repository = (*ImportRecordRepo)(nil)
