// Package returns tracks items coming back to the warehouse. A batch
// annotates previously exported or imported line items as returned; every
// item of one batch shares a single return id drawn from a counter that
// spans both item kinds.
package returns

import (
	"context"
	"time"

	"makhzan/internal/core/apperror"
	"makhzan/internal/domain/documents"
)

// Kind selects which side of the transaction log the batch annotates.
type Kind string

const (
	KindImport Kind = "import"
	KindExport Kind = "export"
)

// Purposes for returning imported items to the supplier.
const (
	PurposeDamaged = "damaged"
	PurposeReplace = "replace"
)

// Purposes for items coming back from an export recipient.
const (
	PurposeEndJob = "end_job"
	PurposeStolen = "stolen"
	PurposeDead   = "dead"
	PurposeOther  = "other"
)

var importPurposes = map[string]bool{
	PurposeDamaged: true,
	PurposeReplace: true,
}

var exportPurposes = map[string]bool{
	PurposeEndJob: true,
	PurposeStolen: true,
	PurposeDead:   true,
	PurposeOther:  true,
}

// BatchItem is one line of a return batch.
type BatchItem struct {
	ItemID    int64               `json:"itemId"`
	Purpose   string              `json:"purpose"`
	Condition documents.Condition `json:"condition"`
	Notes     string              `json:"notes,omitempty"`
}

// Batch is a request to mark a set of items as returned together.
type Batch struct {
	Kind       Kind        `json:"kind"`
	ReturnedAt time.Time   `json:"returnedAt"`
	Items      []BatchItem `json:"items"`
}

// Validate implements domain.Validatable.
func (b *Batch) Validate(ctx context.Context) error {
	if b.Kind != KindImport && b.Kind != KindExport {
		return apperror.NewValidation("invalid batch kind").
			WithDetail("field", "kind").
			WithDetail("value", string(b.Kind))
	}
	if b.ReturnedAt.IsZero() {
		return apperror.NewValidation("return date is required").
			WithDetail("field", "returnedAt")
	}
	if len(b.Items) == 0 {
		return apperror.NewValidation("batch must have at least one item").
			WithDetail("field", "items")
	}

	purposes := exportPurposes
	if b.Kind == KindImport {
		purposes = importPurposes
	}

	seen := make(map[int64]bool, len(b.Items))
	for idx, item := range b.Items {
		if item.ItemID == 0 {
			return apperror.NewValidation("item id is required").
				WithDetail("field", "items").
				WithDetail("index", idx)
		}
		if seen[item.ItemID] {
			return apperror.NewValidation("duplicate item in batch").
				WithDetail("field", "items").
				WithDetail("item_id", item.ItemID)
		}
		seen[item.ItemID] = true
		if !purposes[item.Purpose] {
			return apperror.NewValidation("invalid return purpose").
				WithDetail("field", "items").
				WithDetail("index", idx).
				WithDetail("value", item.Purpose)
		}
		if !documents.ValidCondition(item.Condition) {
			return apperror.NewValidation("invalid return condition").
				WithDetail("field", "items").
				WithDetail("index", idx).
				WithDetail("value", string(item.Condition))
		}
	}
	return nil
}
