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
	"makhzan/internal/domain/documents/export_record"
	"makhzan/internal/domain/recipients"
	"makhzan/internal/infrastructure/storage/postgres"
)

// ExportRecordRepo implements export_record.Repository.
type ExportRecordRepo struct {
	txManager *postgres.TxManager
}

// NewExportRecordRepo creates a new export record repository.
func NewExportRecordRepo(txManager *postgres.TxManager) *ExportRecordRepo {
	return &ExportRecordRepo{txManager: txManager}
}

func (r *ExportRecordRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// exportRecordRow mirrors the export_records table. The recipient tagged
// union is stored as a kind column plus an id column.
type exportRecordRow struct {
	ID            int64     `db:"id"`
	Date          time.Time `db:"date"`
	ExportType    string    `db:"export_type"`
	RecipientKind string    `db:"recipient_kind"`
	RecipientID   int64     `db:"recipient_id"`
	Notes         string    `db:"notes"`
}

func (row *exportRecordRow) toRecord() *export_record.ExportRecord {
	return &export_record.ExportRecord{
		ID:         row.ID,
		Date:       row.Date,
		ExportType: export_record.ExportType(row.ExportType),
		Recipient: recipients.Ref{
			Kind: recipients.Kind(row.RecipientKind),
			ID:   row.RecipientID,
		},
		Notes: row.Notes,
	}
}

// exportItemRow mirrors the export_items table including the nullable
// return annotation columns.
type exportItemRow struct {
	ID           int64       `db:"id"`
	RecordID     int64       `db:"record_id"`
	AssetID      int64       `db:"asset_id"`
	Quantity     int64       `db:"quantity"`
	SerialNumber string      `db:"serial_number"`
	Price        types.Money `db:"price"`
	CreatedAt    time.Time   `db:"created_at"`

	ReturnID        *int64     `db:"return_id"`
	ReturnedAt      *time.Time `db:"returned_at"`
	ReturnPurpose   *string    `db:"return_purpose"`
	ReturnCondition *string    `db:"return_condition"`
	ReturnNotes     *string    `db:"return_notes"`
}

func (row *exportItemRow) toItem() *export_record.ExportItem {
	item := &export_record.ExportItem{
		ID:           row.ID,
		RecordID:     row.RecordID,
		AssetID:      row.AssetID,
		Quantity:     row.Quantity,
		SerialNumber: row.SerialNumber,
		Price:        row.Price,
		CreatedAt:    row.CreatedAt,
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

var exportItemCols = []string{
	"i.id", "i.record_id", "i.asset_id", "i.quantity", "i.serial_number", "i.price", "i.created_at",
	"i.return_id", "i.returned_at", "i.return_purpose", "i.return_condition", "i.return_notes",
}

// Create inserts the record and its items, filling generated IDs.
func (r *ExportRecordRepo) Create(ctx context.Context, record *export_record.ExportRecord) error {
	querier := r.txManager.GetQuerier(ctx)

	q := r.builder().
		Insert("export_records").
		Columns("date", "export_type", "recipient_kind", "recipient_id", "notes").
		Values(record.Date, record.ExportType, record.Recipient.Kind, record.Recipient.ID, record.Notes).
		Suffix("RETURNING id")

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert record: %w", err)
	}
	if err := querier.QueryRow(ctx, sql, args...).Scan(&record.ID); err != nil {
		return fmt.Errorf("insert export record: %w", err)
	}

	for _, item := range record.Items {
		item.RecordID = record.ID

		iq := r.builder().
			Insert("export_items").
			Columns("record_id", "asset_id", "quantity", "serial_number", "price").
			Values(item.RecordID, item.AssetID, item.Quantity, item.SerialNumber, item.Price).
			Suffix("RETURNING id, created_at")

		sql, args, err := iq.ToSql()
		if err != nil {
			return fmt.Errorf("build insert item: %w", err)
		}
		if err := querier.QueryRow(ctx, sql, args...).Scan(&item.ID, &item.CreatedAt); err != nil {
			return fmt.Errorf("insert export item: %w", err)
		}
	}
	return nil
}

// GetByID retrieves the record with all its items.
func (r *ExportRecordRepo) GetByID(ctx context.Context, id int64) (*export_record.ExportRecord, error) {
	row := &exportRecordRow{}
	q := r.builder().
		Select("id", "date", "export_type", "recipient_kind", "recipient_id", "notes").
		From("export_records").
		Where(squirrel.Eq{"id": id})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("export_record", id)
		}
		return nil, fmt.Errorf("get export record: %w", err)
	}

	record := row.toRecord()
	items, err := r.itemsForRecords(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	record.Items = items[id]
	return record, nil
}

func (r *ExportRecordRepo) itemsForRecords(ctx context.Context, recordIDs []int64) (map[int64][]*export_record.ExportItem, error) {
	q := r.builder().
		Select(exportItemCols...).
		From("export_items i").
		Where(squirrel.Eq{"i.record_id": recordIDs}).
		OrderBy("i.id ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build items query: %w", err)
	}

	var rows []*exportItemRow
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("select export items: %w", err)
	}

	out := make(map[int64][]*export_record.ExportItem, len(recordIDs))
	for _, row := range rows {
		out[row.RecordID] = append(out[row.RecordID], row.toItem())
	}
	return out, nil
}

// List retrieves records matching the filter, items included.
func (r *ExportRecordRepo) List(ctx context.Context, filter export_record.Filter) ([]*export_record.ExportRecord, error) {
	q := r.builder().
		Select("DISTINCT r.id", "r.date", "r.export_type", "r.recipient_kind", "r.recipient_id", "r.notes").
		From("export_records r")

	q = applyRecordFilter(q, filter.ItemFilter, "export_items")
	if filter.ExportType != "" {
		q = q.Where(squirrel.Eq{"r.export_type": filter.ExportType})
	}

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

	var rows []*exportRecordRow
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list export records: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	records := make([]*export_record.ExportRecord, len(rows))
	ids := make([]int64, len(rows))
	for i, row := range rows {
		records[i] = row.toRecord()
		ids[i] = row.ID
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
func (r *ExportRecordRepo) ListItems(ctx context.Context, filter documents.ItemFilter) ([]*export_record.ExportItem, error) {
	q := r.builder().
		Select(exportItemCols...).
		From("export_items i").
		Join("export_records r ON r.id = i.record_id")

	q = applyItemFilter(q, filter)
	q = q.OrderBy("i.id ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build items query: %w", err)
	}

	var rows []*exportItemRow
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list export items: %w", err)
	}

	items := make([]*export_record.ExportItem, len(rows))
	for i, row := range rows {
		items[i] = row.toItem()
	}
	return items, nil
}

var _ export_record.Repository = (*ExportRecordRepo)(nil)
