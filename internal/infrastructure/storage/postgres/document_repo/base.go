package document_repo

import (
	"fmt"

	"github.com/Masterminds/squirrel"

	"makhzan/internal/domain/documents"
)

// applyRecordFilter narrows a record query (aliased "r") by id, record
// date range and asset name across the record's items.
func applyRecordFilter(q squirrel.SelectBuilder, f documents.ItemFilter, itemsTable string) squirrel.SelectBuilder {
	if f.RecordID != 0 {
		q = q.Where(squirrel.Eq{"r.id": f.RecordID})
	}
	if f.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"r.date": *f.DateFrom})
	}
	if f.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"r.date": *f.DateTo})
	}
	if f.AssetName != "" {
		sub := fmt.Sprintf(
			"EXISTS (SELECT 1 FROM %s it JOIN assets a ON a.id = it.asset_id WHERE it.record_id = r.id AND a.name ILIKE ?)",
			itemsTable,
		)
		q = q.Where(squirrel.Expr(sub, "%"+f.AssetName+"%"))
	}
	return q
}

// applyItemFilter narrows an item query (items aliased "i", joined records
// aliased "r"). With ReturnedOnly the date range applies to the return
// date instead of the record date.
func applyItemFilter(q squirrel.SelectBuilder, f documents.ItemFilter) squirrel.SelectBuilder {
	if f.RecordID != 0 {
		q = q.Where(squirrel.Eq{"i.record_id": f.RecordID})
	}

	dateCol := "r.date"
	if f.ReturnedOnly {
		q = q.Where("i.return_id IS NOT NULL")
		dateCol = "i.returned_at"
	}
	if f.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{dateCol: *f.DateFrom})
	}
	if f.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{dateCol: *f.DateTo})
	}

	if f.AssetName != "" {
		q = q.Where(squirrel.Expr(
			"EXISTS (SELECT 1 FROM assets a WHERE a.id = i.asset_id AND a.name ILIKE ?)",
			"%"+f.AssetName+"%",
		))
	}

	if f.Limit > 0 {
		q = q.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		q = q.Offset(uint64(f.Offset))
	}
	return q
}
