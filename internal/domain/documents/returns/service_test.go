package returns

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"makhzan/internal/core/apperror"
	"makhzan/internal/domain/documents"
)

type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type itemKey struct {
	kind Kind
	id   int64
}

type fakeRepo struct {
	maxReturnID int64
	items       map[itemKey]*documents.Return
}

func newFakeRepo(maxID int64, keys ...itemKey) *fakeRepo {
	r := &fakeRepo{maxReturnID: maxID, items: map[itemKey]*documents.Return{}}
	for _, k := range keys {
		r.items[k] = nil
	}
	return r
}

func (f *fakeRepo) NextReturnID(ctx context.Context) (int64, error) {
	return f.maxReturnID + 1, nil
}

func (f *fakeRepo) ItemReturned(ctx context.Context, kind Kind, itemID int64) (bool, error) {
	ret, ok := f.items[itemKey{kind, itemID}]
	if !ok {
		return false, apperror.NewNotFound("item", itemID)
	}
	return ret != nil, nil
}

func (f *fakeRepo) MarkReturned(ctx context.Context, kind Kind, itemID int64, ret documents.Return) error {
	f.items[itemKey{kind, itemID}] = &ret
	return nil
}

func (f *fakeRepo) ListReturned(ctx context.Context, kind Kind, filter documents.ItemFilter) ([]*ReturnedItem, error) {
	return nil, nil
}

func exportBatch(items ...BatchItem) *Batch {
	return &Batch{
		Kind:       KindExport,
		ReturnedAt: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		Items:      items,
	}
}

func TestCreateReturnBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("batch shares one return id above prior max", func(t *testing.T) {
		repo := newFakeRepo(41,
			itemKey{KindExport, 10},
			itemKey{KindExport, 11},
		)
		svc := NewService(repo, fakeTxManager{})

		id, err := svc.Create(ctx, exportBatch(
			BatchItem{ItemID: 10, Purpose: PurposeEndJob, Condition: documents.ConditionGood},
			BatchItem{ItemID: 11, Purpose: PurposeDead, Condition: documents.ConditionBad},
		))
		require.NoError(t, err)
		assert.EqualValues(t, 42, id)

		for _, itemID := range []int64{10, 11} {
			ret := repo.items[itemKey{KindExport, itemID}]
			require.NotNil(t, ret)
			assert.EqualValues(t, 42, ret.ReturnID)
		}
	})

	t.Run("already returned item fails the whole batch", func(t *testing.T) {
		repo := newFakeRepo(0,
			itemKey{KindExport, 10},
			itemKey{KindExport, 11},
		)
		repo.items[itemKey{KindExport, 11}] = &documents.Return{ReturnID: 1}
		svc := NewService(repo, fakeTxManager{})

		_, err := svc.Create(ctx, exportBatch(
			BatchItem{ItemID: 10, Purpose: PurposeOther, Condition: documents.ConditionGood},
			BatchItem{ItemID: 11, Purpose: PurposeOther, Condition: documents.ConditionGood},
		))
		require.Error(t, err)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeAlreadyReturned, appErr.Code)

		// Item 10 was not stamped.
		assert.Nil(t, repo.items[itemKey{KindExport, 10}])
	})

	t.Run("missing item yields not found", func(t *testing.T) {
		svc := NewService(newFakeRepo(0), fakeTxManager{})

		_, err := svc.Create(ctx, exportBatch(
			BatchItem{ItemID: 99, Purpose: PurposeOther, Condition: documents.ConditionGood},
		))
		require.Error(t, err)
		assert.True(t, apperror.IsNotFound(err))
	})

	t.Run("import purposes rejected on export batches", func(t *testing.T) {
		svc := NewService(newFakeRepo(0, itemKey{KindExport, 10}), fakeTxManager{})

		_, err := svc.Create(ctx, exportBatch(
			BatchItem{ItemID: 10, Purpose: PurposeDamaged, Condition: documents.ConditionGood},
		))
		require.Error(t, err)
		appErr, _ := apperror.AsAppError(err)
		assert.Equal(t, apperror.CodeValidation, appErr.Code)
	})

	t.Run("duplicate items rejected", func(t *testing.T) {
		svc := NewService(newFakeRepo(0, itemKey{KindExport, 10}), fakeTxManager{})

		_, err := svc.Create(ctx, exportBatch(
			BatchItem{ItemID: 10, Purpose: PurposeOther, Condition: documents.ConditionGood},
			BatchItem{ItemID: 10, Purpose: PurposeOther, Condition: documents.ConditionGood},
		))
		require.Error(t, err)
	})
}
