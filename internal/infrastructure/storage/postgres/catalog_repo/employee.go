package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"makhzan/internal/domain/catalogs/employee"
	"makhzan/internal/infrastructure/storage/postgres"
)

// EmployeeRepo implements employee.Repository.
type EmployeeRepo struct {
	*BaseCatalogRepo[*employee.Employee]
}

// NewEmployeeRepo creates a new employee repository.
func NewEmployeeRepo(txManager *postgres.TxManager) *EmployeeRepo {
	return &EmployeeRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			"employees",
			postgres.ExtractDBColumns[employee.Employee](),
			[]string{"name", "email"},
			func() *employee.Employee { return &employee.Employee{} },
		),
	}
}

// ListByDepartment retrieves all employees of a department.
func (r *EmployeeRepo) ListByDepartment(ctx context.Context, departmentID int64) ([]*employee.Employee, error) {
	q := r.Builder().
		Select(postgres.ExtractDBColumns[employee.Employee]()...).
		From("employees").
		Where(squirrel.Eq{"department_id": departmentID}).
		OrderBy("name ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*employee.Employee
	if err := pgxscan.Select(ctx, r.Querier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list by department: %w", err)
	}
	return items, nil
}

var _ employee.Repository = (*EmployeeRepo)(nil)
