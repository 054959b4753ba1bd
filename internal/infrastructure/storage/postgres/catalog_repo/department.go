package catalog_repo

import (
	"makhzan/internal/domain/catalogs/department"
	"makhzan/internal/infrastructure/storage/postgres"
)

// DepartmentRepo implements department.Repository.
type DepartmentRepo struct {
	*BaseCatalogRepo[*department.Department]
}

// NewDepartmentRepo creates a new department repository.
func NewDepartmentRepo(txManager *postgres.TxManager) *DepartmentRepo {
	return &DepartmentRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			"departments",
			postgres.ExtractDBColumns[department.Department](),
			[]string{"name"},
			func() *department.Department { return &department.Department{} },
		),
	}
}

var _ department.Repository = (*DepartmentRepo)(nil)
