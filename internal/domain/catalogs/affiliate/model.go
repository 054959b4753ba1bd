// Package affiliate provides the Affiliate and SubAffiliate catalogs.
// Affiliates are external bodies (ministries, authorities, projects);
// their subdivisions can receive exported assets, typically as loans.
package affiliate

import (
	"context"

	"makhzan/internal/core/apperror"
)

// Kind defines the external body type.
type Kind string

const (
	KindMinistry  Kind = "ministry"
	KindAuthority Kind = "authority"
	KindCenter    Kind = "center"
	KindMonitor   Kind = "monitor"
	KindProject   Kind = "project"
)

// SubKind defines the subdivision level inside an affiliate.
type SubKind string

const (
	SubKindDepartment SubKind = "department"
	SubKindOffice     SubKind = "office"
	SubKindSection    SubKind = "section"
)

// Affiliate represents an external body.
type Affiliate struct {
	ID      int64  `db:"id" json:"id"`
	Kind    Kind   `db:"kind" json:"kind"`
	Name    string `db:"name" json:"name"`
	Address string `db:"address" json:"address,omitempty"`
}

// SubAffiliate represents a subdivision of an external body.
type SubAffiliate struct {
	ID          int64   `db:"id" json:"id"`
	AffiliateID int64   `db:"affiliate_id" json:"affiliateId"`
	Name        string  `db:"name" json:"name"`
	Kind        SubKind `db:"kind" json:"kind"`
}

// Validate implements domain.Validatable.
func (a *Affiliate) Validate(ctx context.Context) error {
	if a.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	switch a.Kind {
	case KindMinistry, KindAuthority, KindCenter, KindMonitor, KindProject:
	default:
		return apperror.NewValidation("invalid affiliate kind").
			WithDetail("field", "kind").
			WithDetail("value", string(a.Kind))
	}
	return nil
}

// Validate implements domain.Validatable.
func (s *SubAffiliate) Validate(ctx context.Context) error {
	if s.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	if s.AffiliateID == 0 {
		return apperror.NewValidation("affiliate is required").
			WithDetail("field", "affiliateId")
	}
	switch s.Kind {
	case SubKindDepartment, SubKindOffice, SubKindSection:
	default:
		return apperror.NewValidation("invalid sub-affiliate kind").
			WithDetail("field", "kind").
			WithDetail("value", string(s.Kind))
	}
	return nil
}
