package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"makhzan/internal/domain/catalogs/category"
	"makhzan/internal/infrastructure/storage/postgres"
)

// CategoryRepo implements category.Repository.
type CategoryRepo struct {
	*BaseCatalogRepo[*category.Category]
}

// NewCategoryRepo creates a new category repository.
func NewCategoryRepo(txManager *postgres.TxManager) *CategoryRepo {
	return &CategoryRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			"categories",
			postgres.ExtractDBColumns[category.Category](),
			[]string{"name"},
			func() *category.Category { return &category.Category{} },
		),
	}
}

// FindByName retrieves a category by its exact name.
func (r *CategoryRepo) FindByName(ctx context.Context, name string) (*category.Category, error) {
	q := r.Builder().
		Select(postgres.ExtractDBColumns[category.Category]()...).
		From("categories").
		Where(squirrel.Eq{"name": name}).
		Limit(1)
	return r.FindOne(ctx, q)
}

var _ category.Repository = (*CategoryRepo)(nil)
