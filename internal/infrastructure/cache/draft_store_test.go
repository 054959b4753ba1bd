package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"makhzan/internal/core/types"
	"makhzan/internal/domain/drafts"
)

func newTestStore(t *testing.T) (*DraftStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewDraftStore(client, time.Hour), mr
}

func TestDraftStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	price := types.MustMoney("12.25")
	draft := &drafts.Draft{
		Owner:    "u1",
		Kind:     drafts.KindImport,
		NextLine: 1,
		Items: []drafts.Item{
			{Line: 0, AssetID: 3, Quantity: 2, Price: &price},
		},
	}
	require.NoError(t, store.Save(ctx, draft))

	got, err := store.Get(ctx, "u1", drafts.KindImport)
	require.NoError(t, err)
	assert.Equal(t, draft.Owner, got.Owner)
	require.Len(t, got.Items, 1)
	assert.EqualValues(t, 3, got.Items[0].AssetID)
	require.NotNil(t, got.Items[0].Price)
	assert.True(t, price.Equal(*got.Items[0].Price))
}

func TestDraftStoreMissingIsEmpty(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	got, err := store.Get(ctx, "u1", drafts.KindExport)
	require.NoError(t, err)
	assert.Empty(t, got.Items)
	assert.Equal(t, drafts.KindExport, got.Kind)
}

func TestDraftStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t)

	draft := &drafts.Draft{Owner: "u1", Kind: drafts.KindReturn, NextLine: 1,
		Items: []drafts.Item{{Line: 0, ItemID: 5, Purpose: "other", Condition: "good"}}}
	require.NoError(t, store.Save(ctx, draft))

	mr.FastForward(2 * time.Hour)

	got, err := store.Get(ctx, "u1", drafts.KindReturn)
	require.NoError(t, err)
	assert.Empty(t, got.Items)
}

func TestDraftStoreOwnersIsolated(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	draft := &drafts.Draft{Owner: "u1", Kind: drafts.KindImport, NextLine: 1,
		Items: []drafts.Item{{Line: 0, AssetID: 1, Quantity: 1}}}
	require.NoError(t, store.Save(ctx, draft))

	other, err := store.Get(ctx, "u2", drafts.KindImport)
	require.NoError(t, err)
	assert.Empty(t, other.Items)

	require.NoError(t, store.Delete(ctx, "u1", drafts.KindImport))
	got, err := store.Get(ctx, "u1", drafts.KindImport)
	require.NoError(t, err)
	assert.Empty(t, got.Items)
}
