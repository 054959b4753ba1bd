package export_record

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"makhzan/internal/core/apperror"
	"makhzan/internal/core/types"
	"makhzan/internal/domain/documents"
	"makhzan/internal/domain/recipients"
)

type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRepo struct {
	created *ExportRecord
}

func (f *fakeRepo) Create(ctx context.Context, record *ExportRecord) error {
	record.ID = 1
	f.created = record
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id int64) (*ExportRecord, error) {
	return f.created, nil
}

func (f *fakeRepo) List(ctx context.Context, filter Filter) ([]*ExportRecord, error) {
	return nil, nil
}

func (f *fakeRepo) ListItems(ctx context.Context, filter documents.ItemFilter) ([]*ExportItem, error) {
	return nil, nil
}

type fakeLedger struct {
	avg   map[int64]types.Money
	stock map[int64]int64
}

func (f *fakeLedger) AveragePrice(ctx context.Context, assetID int64) (types.Money, bool, error) {
	p, ok := f.avg[assetID]
	return p, ok, nil
}

func (f *fakeLedger) AdjustStock(ctx context.Context, assetID int64, delta int64) error {
	next := f.stock[assetID] + delta
	if next < 0 {
		return apperror.NewInsufficientStock(assetID, -delta, f.stock[assetID])
	}
	f.stock[assetID] = next
	return nil
}

type fakeDirectory struct {
	names map[recipients.Ref]string
}

func (f *fakeDirectory) Resolve(ctx context.Context, ref recipients.Ref) (recipients.Resolved, error) {
	if err := ref.Validate(); err != nil {
		return recipients.Resolved{}, err
	}
	name, ok := f.names[ref]
	if !ok {
		return recipients.Resolved{}, apperror.NewNotFound(string(ref.Kind), ref.ID)
	}
	return recipients.Resolved{Ref: ref, Name: name}, nil
}

func deptRef() recipients.Ref {
	return recipients.Ref{Kind: recipients.KindDepartment, ID: 3}
}

func validRecord() *ExportRecord {
	return &ExportRecord{
		Date:       time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC),
		ExportType: TypeDepartment,
		Recipient:  deptRef(),
		Items: []*ExportItem{
			{AssetID: 1, Quantity: 5},
		},
	}
}

func newFixture() (*Service, *fakeRepo, *fakeLedger) {
	repo := &fakeRepo{}
	ledger := &fakeLedger{
		avg:   map[int64]types.Money{1: types.MustMoney("20.00")},
		stock: map[int64]int64{1: 5},
	}
	dir := &fakeDirectory{names: map[recipients.Ref]string{deptRef(): "IT Department"}}
	return NewService(repo, ledger, dir, fakeTxManager{}), repo, ledger
}

func TestCreateExportRecord(t *testing.T) {
	ctx := context.Background()

	t.Run("derives price and issues stock", func(t *testing.T) {
		svc, repo, ledger := newFixture()

		record := validRecord()
		require.NoError(t, svc.Create(ctx, record))

		require.NotNil(t, repo.created)
		assert.True(t, types.MustMoney("20.00").Equal(record.Items[0].Price))
		assert.EqualValues(t, 0, ledger.stock[1])
		assert.Equal(t, "IT Department", record.RecipientName)
	})

	t.Run("over-export fails and keeps stock", func(t *testing.T) {
		svc, _, ledger := newFixture()
		ledger.stock[1] = 3

		record := validRecord()
		err := svc.Create(ctx, record)
		require.Error(t, err)
		assert.True(t, apperror.IsInsufficientStock(err))
		assert.EqualValues(t, 3, ledger.stock[1])
	})

	t.Run("asset without history is rejected", func(t *testing.T) {
		svc, repo, ledger := newFixture()
		delete(ledger.avg, 1)

		err := svc.Create(ctx, validRecord())
		require.Error(t, err)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeValidation, appErr.Code)
		assert.Nil(t, repo.created)
	})

	t.Run("dangling recipient is a validation error", func(t *testing.T) {
		svc, _, _ := newFixture()

		record := validRecord()
		record.Recipient = recipients.Ref{Kind: recipients.KindEmployee, ID: 99}
		err := svc.Create(ctx, record)
		require.Error(t, err)
		appErr, _ := apperror.AsAppError(err)
		assert.Equal(t, apperror.CodeValidation, appErr.Code)
	})

	t.Run("invalid export type", func(t *testing.T) {
		svc, _, _ := newFixture()

		record := validRecord()
		record.ExportType = ExportType("gift")
		require.Error(t, svc.Create(ctx, record))
	})
}
