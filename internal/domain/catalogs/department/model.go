// Package department provides the Department catalog.
// Departments receive exported assets as departmental custody.
package department

import (
	"context"

	"makhzan/internal/core/apperror"
)

// Kind defines the administrative subdivision level.
type Kind string

const (
	KindDepartment Kind = "department"
	KindOffice     Kind = "office"
	KindSection    Kind = "section"
	KindUnit       Kind = "unit"
)

// Department represents an administrative subdivision.
type Department struct {
	ID   int64  `db:"id" json:"id"`
	Kind Kind   `db:"kind" json:"kind"`
	Name string `db:"name" json:"name"`
}

// New creates a new Department.
func New(kind Kind, name string) *Department {
	return &Department{Kind: kind, Name: name}
}

// Validate implements domain.Validatable.
func (d *Department) Validate(ctx context.Context) error {
	if d.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	if !isValidKind(d.Kind) {
		return apperror.NewValidation("invalid department kind").
			WithDetail("field", "kind").
			WithDetail("value", string(d.Kind))
	}
	return nil
}

func isValidKind(k Kind) bool {
	switch k {
	case KindDepartment, KindOffice, KindSection, KindUnit:
		return true
	}
	return false
}
