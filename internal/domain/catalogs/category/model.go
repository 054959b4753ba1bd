// Package category provides the AssetCategory catalog.
// Categories group assets for browsing and report ordering.
package category

import (
	"context"

	"makhzan/internal/core/apperror"
)

// Category represents an asset category.
type Category struct {
	ID int64 `db:"id" json:"id"`

	// Name is unique across all categories
	Name string `db:"name" json:"name"`

	// Description is a free-form note
	Description string `db:"description" json:"description,omitempty"`
}

// New creates a new Category.
func New(name, description string) *Category {
	return &Category{
		Name:        name,
		Description: description,
	}
}

// Validate implements domain.Validatable.
func (c *Category) Validate(ctx context.Context) error {
	if c.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	return nil
}
