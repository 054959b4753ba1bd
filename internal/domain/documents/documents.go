// Package documents provides types shared by the transaction documents.
// Import and export records are the append-only transaction log; their
// line items may later be annotated as returned.
package documents

import (
	"time"
)

// Condition describes the physical state of a returned item.
type Condition string

const (
	ConditionGood Condition = "good"
	ConditionBad  Condition = "bad"
)

// ValidCondition reports whether c is a known condition.
func ValidCondition(c Condition) bool {
	return c == ConditionGood || c == ConditionBad
}

// Return annotates a line item as returned. An item carries at most one
// annotation; once set it is never cleared (Active -> Returned is terminal).
//
// ReturnID groups the items returned together in one batch. It is assigned
// from a single counter spanning both import and export items.
type Return struct {
	ReturnID   int64     `db:"return_id" json:"returnId"`
	ReturnedAt time.Time `db:"returned_at" json:"returnedAt"`
	Purpose    string    `db:"return_purpose" json:"purpose"`
	Condition  Condition `db:"return_condition" json:"condition"`
	Notes      string    `db:"return_notes" json:"notes,omitempty"`
}

// ItemFilter narrows line-item listings.
type ItemFilter struct {
	RecordID  int64
	AssetName string

	// Date range on the parent record date (inclusive).
	DateFrom *time.Time
	DateTo   *time.Time

	// ReturnedOnly keeps only items with a return annotation; the range
	// then applies to the return date instead of the record date.
	ReturnedOnly bool

	Limit  int
	Offset int
}
