package assets

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"makhzan/internal/core/apperror"
	"makhzan/internal/core/types"
	"makhzan/internal/domain"
)

type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRepo struct {
	assets map[int64]*Asset
}

func newFakeRepo(assets ...*Asset) *fakeRepo {
	r := &fakeRepo{assets: map[int64]*Asset{}}
	for _, a := range assets {
		r.assets[a.ID] = a
	}
	return r
}

func (f *fakeRepo) Create(ctx context.Context, a *Asset) error {
	a.ID = int64(len(f.assets) + 1)
	f.assets[a.ID] = a
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id int64) (*Asset, error) {
	a, ok := f.assets[id]
	if !ok {
		return nil, apperror.NewNotFound("asset", id)
	}
	return a, nil
}

func (f *fakeRepo) Update(ctx context.Context, a *Asset) error { return nil }
func (f *fakeRepo) Delete(ctx context.Context, id int64) error { return nil }

func (f *fakeRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Asset], error) {
	return domain.ListResult[*Asset]{}, nil
}

func (f *fakeRepo) Exists(ctx context.Context, id int64) (bool, error) {
	_, ok := f.assets[id]
	return ok, nil
}

func (f *fakeRepo) ListByCategory(ctx context.Context, categoryID int64) ([]*Asset, error) {
	return nil, nil
}

func (f *fakeRepo) AppendPrice(ctx context.Context, assetID int64, price types.Money) error {
	a, err := f.GetByID(ctx, assetID)
	if err != nil {
		return err
	}
	a.PriceHistory = append(a.PriceHistory, price)
	return nil
}

func (f *fakeRepo) AdjustStock(ctx context.Context, assetID int64, delta int64) error {
	a, err := f.GetByID(ctx, assetID)
	if err != nil {
		return err
	}
	if a.Stock+delta < 0 {
		return apperror.NewInsufficientStock(assetID, -delta, a.Stock)
	}
	a.Stock += delta
	return nil
}

func (f *fakeRepo) GetStock(ctx context.Context, assetID int64) (int64, error) {
	a, err := f.GetByID(ctx, assetID)
	if err != nil {
		return 0, err
	}
	return a.Stock, nil
}

func TestService_RecordPrice(t *testing.T) {
	ctx := context.Background()

	t.Run("appends to history", func(t *testing.T) {
		repo := newFakeRepo(&Asset{ID: 1})
		svc := NewService(repo, fakeTxManager{})

		require.NoError(t, svc.RecordPrice(ctx, 1, types.MustMoney("20.00")))
		require.Len(t, repo.assets[1].PriceHistory, 1)
		assert.True(t, repo.assets[1].PriceHistory[0].Equal(types.MustMoney("20")))
	})

	t.Run("negative price is a validation error", func(t *testing.T) {
		repo := newFakeRepo(&Asset{ID: 1})
		svc := NewService(repo, fakeTxManager{})

		err := svc.RecordPrice(ctx, 1, types.MustMoney("-1.00"))
		require.Error(t, err)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeValidation, appErr.Code)
		assert.Empty(t, repo.assets[1].PriceHistory)
	})
}

func TestService_AveragePrice(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo(&Asset{
		ID:           1,
		PriceHistory: []types.Money{types.MustMoney("10"), types.MustMoney("11")},
	})
	svc := NewService(repo, fakeTxManager{})

	avg, ok, err := svc.AveragePrice(ctx, 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, avg.Equal(types.MustMoney("10.5")), "got %s", avg)

	_, _, err = svc.AveragePrice(ctx, 99)
	assert.True(t, apperror.IsNotFound(err))
}
