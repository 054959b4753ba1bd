// Package dto defines request and response shapes for the v1 API.
package dto

import (
	"makhzan/internal/domain"
)

// IDResponse is returned by create operations.
type IDResponse struct {
	ID int64 `json:"id"`
}

// SuccessResponse is a generic acknowledgement.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ListQuery binds common list parameters.
type ListQuery struct {
	Search  string `form:"search"`
	OrderBy string `form:"orderBy"`
	Limit   int    `form:"limit"`
	Offset  int    `form:"offset"`
}

// ToFilter converts the query into a domain filter with defaults applied.
func (q ListQuery) ToFilter() domain.ListFilter {
	filter := domain.DefaultListFilter()
	filter.Search = q.Search
	if q.OrderBy != "" {
		filter.OrderBy = q.OrderBy
	}
	if q.Limit > 0 {
		filter.Limit = q.Limit
	}
	if q.Offset > 0 {
		filter.Offset = q.Offset
	}
	return filter
}

// DateRangeQuery binds inclusive date bounds, RFC 3339 or YYYY-MM-DD.
type DateRangeQuery struct {
	From string `form:"from"`
	To   string `form:"to"`
}
