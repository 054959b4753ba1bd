// Package report_repo provides the read side of the reconciliation engine
// plus committee persistence.
package report_repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"makhzan/internal/core/apperror"
	"makhzan/internal/domain/assets"
	"makhzan/internal/domain/reports"
	"makhzan/internal/infrastructure/storage/postgres"
)

// ReportRepo implements reports.Repository.
type ReportRepo struct {
	txManager *postgres.TxManager
}

// NewReportRepo creates a new report repository.
func NewReportRepo(txManager *postgres.TxManager) *ReportRepo {
	return &ReportRepo{txManager: txManager}
}

// ListEvents fetches both movement kinds of one asset with parent record
// date on or before asOf. Ordering is left to the reconciliation engine.
func (r *ReportRepo) ListEvents(ctx context.Context, assetID int64, asOf time.Time) ([]reports.Event, error) {
	const sql = `
		SELECT 'import' AS event_type, r.date, i.quantity, r.id AS record_id
		FROM import_items i
		JOIN import_records r ON r.id = i.record_id
		WHERE i.asset_id = $1 AND r.date <= $2
		UNION ALL
		SELECT 'export' AS event_type, r.date, i.quantity, r.id AS record_id
		FROM export_items i
		JOIN export_records r ON r.id = i.record_id
		WHERE i.asset_id = $1 AND r.date <= $2`

	var events []reports.Event
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &events, sql, assetID, asOf); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// ListAssets fetches all assets with their category names, ordered by
// category name then asset id.
func (r *ReportRepo) ListAssets(ctx context.Context) ([]*assets.Asset, map[int64]string, error) {
	const assetSQL = `
		SELECT a.id, a.category_id, a.name, a.brand, a.brand_en, a.unit,
		       a.price_history, a.stock
		FROM assets a
		JOIN categories c ON c.id = a.category_id
		ORDER BY c.name ASC, a.id ASC`

	var all []*assets.Asset
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &all, assetSQL); err != nil {
		return nil, nil, fmt.Errorf("list assets: %w", err)
	}

	type categoryRow struct {
		ID   int64  `db:"id"`
		Name string `db:"name"`
	}
	var cats []categoryRow
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &cats, `SELECT id, name FROM categories`); err != nil {
		return nil, nil, fmt.Errorf("list categories: %w", err)
	}

	names := make(map[int64]string, len(cats))
	for _, c := range cats {
		names[c.ID] = c.Name
	}
	return all, names, nil
}

// GetCommittee fetches the committee for a year, NOT_FOUND when absent.
func (r *ReportRepo) GetCommittee(ctx context.Context, year int) (*reports.Committee, error) {
	const sql = `SELECT year, president_id, member_ids FROM committees WHERE year = $1`

	c := &reports.Committee{}
	err := r.txManager.GetQuerier(ctx).QueryRow(ctx, sql, year).
		Scan(&c.Year, &c.PresidentID, &c.MemberIDs)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.NewNotFound("committee", year)
	}
	if err != nil {
		return nil, fmt.Errorf("get committee: %w", err)
	}
	return c, nil
}

// SaveCommittee upserts the committee for its year.
func (r *ReportRepo) SaveCommittee(ctx context.Context, c *reports.Committee) error {
	const sql = `
		INSERT INTO committees (year, president_id, member_ids)
		VALUES ($1, $2, $3)
		ON CONFLICT (year) DO UPDATE
		SET president_id = EXCLUDED.president_id,
		    member_ids = EXCLUDED.member_ids`

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, c.Year, c.PresidentID, c.MemberIDs); err != nil {
		return fmt.Errorf("save committee: %w", err)
	}
	return nil
}

var _ reports.Repository = (*ReportRepo)(nil)
