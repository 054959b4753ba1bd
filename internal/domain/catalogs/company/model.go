// Package company provides the Company catalog (supplier directory).
// Companies are the source side of import receipts.
package company

import (
	"context"

	"makhzan/internal/core/apperror"
)

// Company represents a supplier company.
type Company struct {
	ID      int64  `db:"id" json:"id"`
	Name    string `db:"name" json:"name"`
	Address string `db:"address" json:"address,omitempty"`
	Phone   string `db:"phone" json:"phone,omitempty"`
}

// New creates a new Company.
func New(name string) *Company {
	return &Company{Name: name}
}

// Validate implements domain.Validatable.
func (c *Company) Validate(ctx context.Context) error {
	if c.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	return nil
}
