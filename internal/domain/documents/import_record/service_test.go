package import_record

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"makhzan/internal/core/apperror"
	"makhzan/internal/core/types"
	"makhzan/internal/domain/documents"
)

type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRepo struct {
	created *ImportRecord
}

func (f *fakeRepo) Create(ctx context.Context, record *ImportRecord) error {
	record.ID = 1
	f.created = record
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id int64) (*ImportRecord, error) {
	return f.created, nil
}

func (f *fakeRepo) List(ctx context.Context, filter documents.ItemFilter) ([]*ImportRecord, error) {
	return nil, nil
}

func (f *fakeRepo) ListItems(ctx context.Context, filter documents.ItemFilter) ([]*ImportItem, error) {
	return nil, nil
}

type fakeLedger struct {
	known   map[int64]bool
	prices  map[int64][]types.Money
	stock   map[int64]int64
	failAll bool
}

func newFakeLedger(ids ...int64) *fakeLedger {
	l := &fakeLedger{
		known:  map[int64]bool{},
		prices: map[int64][]types.Money{},
		stock:  map[int64]int64{},
	}
	for _, id := range ids {
		l.known[id] = true
	}
	return l
}

func (f *fakeLedger) Exists(ctx context.Context, assetID int64) (bool, error) {
	return f.known[assetID], nil
}

func (f *fakeLedger) RecordPrice(ctx context.Context, assetID int64, price types.Money) error {
	f.prices[assetID] = append(f.prices[assetID], price)
	return nil
}

func (f *fakeLedger) AdjustStock(ctx context.Context, assetID int64, delta int64) error {
	if f.failAll {
		return apperror.NewInsufficientStock(assetID, delta, 0)
	}
	f.stock[assetID] += delta
	return nil
}

func validRecord() *ImportRecord {
	return &ImportRecord{
		CompanyID: 7,
		Date:      time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		Items: []*ImportItem{
			{AssetID: 1, Quantity: 5, Price: types.MustMoney("20.00")},
			{AssetID: 2, Quantity: 2, Price: types.MustMoney("10.50")},
		},
	}
}

func TestCreateImportRecord(t *testing.T) {
	ctx := context.Background()

	t.Run("posts record and updates ledger", func(t *testing.T) {
		repo := &fakeRepo{}
		ledger := newFakeLedger(1, 2)
		svc := NewService(repo, ledger, fakeTxManager{})

		record := validRecord()
		require.NoError(t, svc.Create(ctx, record))

		require.NotNil(t, repo.created)
		assert.EqualValues(t, 1, record.ID)

		require.Len(t, ledger.prices[1], 1)
		assert.True(t, types.MustMoney("20.00").Equal(ledger.prices[1][0]))
		assert.EqualValues(t, 5, ledger.stock[1])
		assert.EqualValues(t, 2, ledger.stock[2])
	})

	t.Run("rejects empty item list", func(t *testing.T) {
		svc := NewService(&fakeRepo{}, newFakeLedger(), fakeTxManager{})

		record := validRecord()
		record.Items = nil
		err := svc.Create(ctx, record)
		require.Error(t, err)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeValidation, appErr.Code)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		svc := NewService(&fakeRepo{}, newFakeLedger(1, 2), fakeTxManager{})

		record := validRecord()
		record.Items[1].Quantity = 0
		err := svc.Create(ctx, record)
		require.Error(t, err)
		appErr, _ := apperror.AsAppError(err)
		assert.Equal(t, 1, appErr.Details["index"])
	})

	t.Run("rejects negative price", func(t *testing.T) {
		svc := NewService(&fakeRepo{}, newFakeLedger(1, 2), fakeTxManager{})

		record := validRecord()
		record.Items[0].Price = types.MustMoney("-5")
		require.Error(t, svc.Create(ctx, record))
	})

	t.Run("unknown asset yields not found before any write", func(t *testing.T) {
		repo := &fakeRepo{}
		ledger := newFakeLedger(1) // asset 2 missing
		svc := NewService(repo, ledger, fakeTxManager{})

		err := svc.Create(ctx, validRecord())
		require.Error(t, err)
		assert.True(t, apperror.IsNotFound(err))
		assert.Nil(t, repo.created)
		assert.Empty(t, ledger.prices)
	})
}

func TestImportRecordTotals(t *testing.T) {
	record := validRecord()

	assert.True(t, types.MustMoney("100.00").Equal(record.Items[0].Total()))
	assert.True(t, types.MustMoney("121.00").Equal(record.GrandTotal()))
}
