package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"makhzan/internal/domain/catalogs/affiliate"
	"makhzan/internal/infrastructure/storage/postgres"
)

// AffiliateRepo implements affiliate.Repository.
type AffiliateRepo struct {
	*BaseCatalogRepo[*affiliate.Affiliate]
}

// NewAffiliateRepo creates a new affiliate repository.
func NewAffiliateRepo(txManager *postgres.TxManager) *AffiliateRepo {
	return &AffiliateRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			"affiliates",
			postgres.ExtractDBColumns[affiliate.Affiliate](),
			[]string{"name", "address"},
			func() *affiliate.Affiliate { return &affiliate.Affiliate{} },
		),
	}
}

var _ affiliate.Repository = (*AffiliateRepo)(nil)

// SubAffiliateRepo implements affiliate.SubRepository.
type SubAffiliateRepo struct {
	*BaseCatalogRepo[*affiliate.SubAffiliate]
}

// NewSubAffiliateRepo creates a new sub-affiliate repository.
func NewSubAffiliateRepo(txManager *postgres.TxManager) *SubAffiliateRepo {
	return &SubAffiliateRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			"sub_affiliates",
			postgres.ExtractDBColumns[affiliate.SubAffiliate](),
			[]string{"name"},
			func() *affiliate.SubAffiliate { return &affiliate.SubAffiliate{} },
		),
	}
}

// ListByAffiliate retrieves subdivisions of one affiliate.
func (r *SubAffiliateRepo) ListByAffiliate(ctx context.Context, affiliateID int64) ([]*affiliate.SubAffiliate, error) {
	q := r.Builder().
		Select(postgres.ExtractDBColumns[affiliate.SubAffiliate]()...).
		From("sub_affiliates").
		Where(squirrel.Eq{"affiliate_id": affiliateID}).
		OrderBy("name ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*affiliate.SubAffiliate
	if err := pgxscan.Select(ctx, r.Querier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list by affiliate: %w", err)
	}
	return items, nil
}

var _ affiliate.SubRepository = (*SubAffiliateRepo)(nil)
