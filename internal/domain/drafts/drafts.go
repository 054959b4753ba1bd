// Package drafts holds in-progress documents while the user assembles
// them line by line. Drafts live in an expiring store keyed per owner and
// document kind; the document services only ever see the final submitted
// item list.
package drafts

import (
	"context"
	"time"

	"makhzan/internal/core/apperror"
	"makhzan/internal/core/types"
)

// Kind selects which document a draft assembles.
type Kind string

const (
	KindImport Kind = "import"
	KindExport Kind = "export"
	KindReturn Kind = "return"
)

// ValidKind reports whether k is a known draft kind.
func ValidKind(k Kind) bool {
	return k == KindImport || k == KindExport || k == KindReturn
}

// Item is one pending line of a draft.
type Item struct {
	Line int `json:"line"`

	// Import and export lines.
	AssetID  int64 `json:"assetId,omitempty"`
	Quantity int64 `json:"quantity,omitempty"`

	// Price is the purchase price on import lines and the snapshot of the
	// asset's average price on export lines.
	Price *types.Money `json:"price,omitempty"`

	SerialNumber string `json:"serialNumber,omitempty"`

	// Return lines reference an existing document item instead.
	ItemID    int64  `json:"itemId,omitempty"`
	Purpose   string `json:"purpose,omitempty"`
	Condition string `json:"condition,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// Draft is the assembled state for one (owner, kind) pair.
type Draft struct {
	Owner     string    `json:"owner"`
	Kind      Kind      `json:"kind"`
	NextLine  int       `json:"nextLine"`
	Items     []Item    `json:"items"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Store persists drafts with a TTL. Reading a missing draft returns an
// empty one, not an error.
type Store interface {
	Get(ctx context.Context, owner string, kind Kind) (*Draft, error)
	Save(ctx context.Context, draft *Draft) error
	Delete(ctx context.Context, owner string, kind Kind) error
}

// Pricer derives the average price snapshot for export draft lines.
type Pricer interface {
	AveragePrice(ctx context.Context, assetID int64) (types.Money, bool, error)
}

// Service manages draft assembly.
type Service struct {
	store  Store
	pricer Pricer
}

// NewService creates a new drafts service.
func NewService(store Store, pricer Pricer) *Service {
	return &Service{store: store, pricer: pricer}
}

// Get fetches the draft, empty when none exists.
func (s *Service) Get(ctx context.Context, owner string, kind Kind) (*Draft, error) {
	if !ValidKind(kind) {
		return nil, apperror.NewValidation("invalid draft kind").
			WithDetail("value", string(kind))
	}
	return s.store.Get(ctx, owner, kind)
}

// AddItem appends a line to the draft and returns the updated draft.
// Export lines get the asset's current average price snapshotted in, the
// way the final document will price them.
func (s *Service) AddItem(ctx context.Context, owner string, kind Kind, item Item) (*Draft, error) {
	if !ValidKind(kind) {
		return nil, apperror.NewValidation("invalid draft kind").
			WithDetail("value", string(kind))
	}
	if err := validateItem(kind, item); err != nil {
		return nil, err
	}

	if kind == KindExport {
		price, ok, err := s.pricer.AveragePrice(ctx, item.AssetID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperror.NewValidation("asset has no price history").
				WithDetail("asset_id", item.AssetID)
		}
		item.Price = &price
	}

	draft, err := s.store.Get(ctx, owner, kind)
	if err != nil {
		return nil, err
	}

	item.Line = draft.NextLine
	draft.NextLine++
	draft.Items = append(draft.Items, item)
	draft.UpdatedAt = time.Now().UTC()

	if err := s.store.Save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// RemoveItem deletes one line from the draft.
func (s *Service) RemoveItem(ctx context.Context, owner string, kind Kind, line int) (*Draft, error) {
	draft, err := s.store.Get(ctx, owner, kind)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, item := range draft.Items {
		if item.Line == line {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, apperror.NewNotFound("draft item", line)
	}
	draft.Items = append(draft.Items[:idx], draft.Items[idx+1:]...)
	draft.UpdatedAt = time.Now().UTC()

	if err := s.store.Save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Clear drops the draft entirely.
func (s *Service) Clear(ctx context.Context, owner string, kind Kind) error {
	if !ValidKind(kind) {
		return apperror.NewValidation("invalid draft kind").
			WithDetail("value", string(kind))
	}
	return s.store.Delete(ctx, owner, kind)
}

func validateItem(kind Kind, item Item) error {
	switch kind {
	case KindImport:
		if item.AssetID == 0 {
			return apperror.NewValidation("asset is required").WithDetail("field", "assetId")
		}
		if item.Quantity <= 0 {
			return apperror.NewValidation("quantity must be positive").WithDetail("field", "quantity")
		}
		if item.Price == nil || item.Price.IsNegative() {
			return apperror.NewValidation("price is required and cannot be negative").
				WithDetail("field", "price")
		}
	case KindExport:
		if item.AssetID == 0 {
			return apperror.NewValidation("asset is required").WithDetail("field", "assetId")
		}
		if item.Quantity <= 0 {
			return apperror.NewValidation("quantity must be positive").WithDetail("field", "quantity")
		}
	case KindReturn:
		if item.ItemID == 0 {
			return apperror.NewValidation("item is required").WithDetail("field", "itemId")
		}
	}
	return nil
}
