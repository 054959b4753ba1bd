package catalog_repo

import (
	"makhzan/internal/domain/catalogs/company"
	"makhzan/internal/infrastructure/storage/postgres"
)

// CompanyRepo implements company.Repository.
type CompanyRepo struct {
	*BaseCatalogRepo[*company.Company]
}

// NewCompanyRepo creates a new company repository.
func NewCompanyRepo(txManager *postgres.TxManager) *CompanyRepo {
	return &CompanyRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			"companies",
			postgres.ExtractDBColumns[company.Company](),
			[]string{"name", "address"},
			func() *company.Company { return &company.Company{} },
		),
	}
}

var _ company.Repository = (*CompanyRepo)(nil)
