// Package recipients resolves export destinations. An exported asset goes
// to exactly one of: an internal department, an employee's personal custody,
// or an external sub-affiliate.
package recipients

import (
	"context"
	"fmt"

	"makhzan/internal/core/apperror"
	"makhzan/internal/domain/catalogs/affiliate"
	"makhzan/internal/domain/catalogs/department"
	"makhzan/internal/domain/catalogs/employee"
)

// Kind identifies the recipient catalog.
type Kind string

const (
	KindDepartment   Kind = "department"
	KindEmployee     Kind = "employee"
	KindSubAffiliate Kind = "sub_affiliate"
)

// Ref points at a single recipient in one of the recipient catalogs.
type Ref struct {
	Kind Kind  `db:"recipient_kind" json:"kind"`
	ID   int64 `db:"recipient_id" json:"id"`
}

// Validate checks that the reference is structurally sound.
func (r Ref) Validate() error {
	switch r.Kind {
	case KindDepartment, KindEmployee, KindSubAffiliate:
	default:
		return apperror.NewValidation("invalid recipient kind").
			WithDetail("field", "recipient.kind").
			WithDetail("value", string(r.Kind))
	}
	if r.ID == 0 {
		return apperror.NewValidation("recipient id is required").
			WithDetail("field", "recipient.id")
	}
	return nil
}

func (r Ref) String() string {
	return fmt.Sprintf("%s:%d", r.Kind, r.ID)
}

// Resolved carries the recipient's display name alongside the reference.
type Resolved struct {
	Ref  Ref    `json:"ref"`
	Name string `json:"name"`
}

// Directory resolves recipient references against the catalogs.
type Directory interface {
	// Resolve verifies the referenced recipient exists and returns its name.
	// A dangling reference yields NOT_FOUND.
	Resolve(ctx context.Context, ref Ref) (Resolved, error)
}

type directory struct {
	departments *department.Service
	employees   *employee.Service
	affiliates  *affiliate.Service
}

// NewDirectory creates a Directory backed by the recipient catalogs.
func NewDirectory(departments *department.Service, employees *employee.Service, affiliates *affiliate.Service) Directory {
	return &directory{
		departments: departments,
		employees:   employees,
		affiliates:  affiliates,
	}
}

func (d *directory) Resolve(ctx context.Context, ref Ref) (Resolved, error) {
	if err := ref.Validate(); err != nil {
		return Resolved{}, err
	}

	switch ref.Kind {
	case KindDepartment:
		dep, err := d.departments.GetByID(ctx, ref.ID)
		if err != nil {
			return Resolved{}, err
		}
		return Resolved{Ref: ref, Name: dep.Name}, nil

	case KindEmployee:
		emp, err := d.employees.GetByID(ctx, ref.ID)
		if err != nil {
			return Resolved{}, err
		}
		return Resolved{Ref: ref, Name: emp.Name}, nil

	case KindSubAffiliate:
		sub, err := d.affiliates.Subs().GetByID(ctx, ref.ID)
		if err != nil {
			return Resolved{}, err
		}
		return Resolved{Ref: ref, Name: sub.Name}, nil
	}

	return Resolved{}, apperror.NewValidation("invalid recipient kind")
}
