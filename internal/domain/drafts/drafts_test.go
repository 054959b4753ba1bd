package drafts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"makhzan/internal/core/apperror"
	"makhzan/internal/core/types"
)

type memStore struct {
	drafts map[string]*Draft
}

func newMemStore() *memStore {
	return &memStore{drafts: make(map[string]*Draft)}
}

func (s *memStore) key(owner string, kind Kind) string {
	return owner + ":" + string(kind)
}

func (s *memStore) Get(ctx context.Context, owner string, kind Kind) (*Draft, error) {
	if d, ok := s.drafts[s.key(owner, kind)]; ok {
		return d, nil
	}
	return &Draft{Owner: owner, Kind: kind}, nil
}

func (s *memStore) Save(ctx context.Context, draft *Draft) error {
	s.drafts[s.key(draft.Owner, draft.Kind)] = draft
	return nil
}

func (s *memStore) Delete(ctx context.Context, owner string, kind Kind) error {
	delete(s.drafts, s.key(owner, kind))
	return nil
}

type fakePricer struct {
	prices map[int64]types.Money
}

func (p fakePricer) AveragePrice(ctx context.Context, assetID int64) (types.Money, bool, error) {
	price, ok := p.prices[assetID]
	return price, ok, nil
}

func TestService_AddItem(t *testing.T) {
	ctx := context.Background()
	pricer := fakePricer{prices: map[int64]types.Money{
		7: types.MustMoney("10.50"),
	}}

	t.Run("import lines keep the submitted price", func(t *testing.T) {
		svc := NewService(newMemStore(), pricer)
		price := types.MustMoney("99.75")

		draft, err := svc.AddItem(ctx, "u1", KindImport, Item{AssetID: 1, Quantity: 3, Price: &price})
		require.NoError(t, err)
		require.Len(t, draft.Items, 1)
		assert.Equal(t, 0, draft.Items[0].Line)
		assert.True(t, draft.Items[0].Price.Equal(price))
	})

	t.Run("export lines snapshot the average price", func(t *testing.T) {
		svc := NewService(newMemStore(), pricer)

		draft, err := svc.AddItem(ctx, "u1", KindExport, Item{AssetID: 7, Quantity: 2})
		require.NoError(t, err)
		require.NotNil(t, draft.Items[0].Price)
		assert.True(t, draft.Items[0].Price.Equal(types.MustMoney("10.50")))
	})

	t.Run("export of unpriced asset is rejected", func(t *testing.T) {
		svc := NewService(newMemStore(), pricer)

		_, err := svc.AddItem(ctx, "u1", KindExport, Item{AssetID: 99, Quantity: 2})
		require.Error(t, err)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeValidation, appErr.Code)
	})

	t.Run("lines are numbered sequentially", func(t *testing.T) {
		svc := NewService(newMemStore(), pricer)
		price := types.MustMoney("1.00")

		for i := 0; i < 3; i++ {
			_, err := svc.AddItem(ctx, "u1", KindImport, Item{AssetID: 1, Quantity: 1, Price: &price})
			require.NoError(t, err)
		}
		draft, err := svc.Get(ctx, "u1", KindImport)
		require.NoError(t, err)
		require.Len(t, draft.Items, 3)
		assert.Equal(t, 2, draft.Items[2].Line)
	})

	t.Run("invalid kind is rejected", func(t *testing.T) {
		svc := NewService(newMemStore(), pricer)

		_, err := svc.AddItem(ctx, "u1", Kind("bogus"), Item{AssetID: 1, Quantity: 1})
		require.Error(t, err)
	})
}

func TestService_RemoveItem(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemStore(), fakePricer{})
	price := types.MustMoney("5.00")

	_, err := svc.AddItem(ctx, "u1", KindImport, Item{AssetID: 1, Quantity: 1, Price: &price})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "u1", KindImport, Item{AssetID: 2, Quantity: 1, Price: &price})
	require.NoError(t, err)

	draft, err := svc.RemoveItem(ctx, "u1", KindImport, 0)
	require.NoError(t, err)
	require.Len(t, draft.Items, 1)
	assert.EqualValues(t, 2, draft.Items[0].AssetID)

	// removed line numbers are not reused
	_, err = svc.AddItem(ctx, "u1", KindImport, Item{AssetID: 3, Quantity: 1, Price: &price})
	require.NoError(t, err)
	draft, err = svc.Get(ctx, "u1", KindImport)
	require.NoError(t, err)
	assert.Equal(t, 2, draft.Items[1].Line)

	_, err = svc.RemoveItem(ctx, "u1", KindImport, 99)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestService_Clear(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemStore(), fakePricer{})
	price := types.MustMoney("5.00")

	_, err := svc.AddItem(ctx, "u1", KindImport, Item{AssetID: 1, Quantity: 1, Price: &price})
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx, "u1", KindImport))

	draft, err := svc.Get(ctx, "u1", KindImport)
	require.NoError(t, err)
	assert.Empty(t, draft.Items)
}
