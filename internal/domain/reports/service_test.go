package reports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"makhzan/internal/core/types"
	"makhzan/internal/domain/assets"
)

type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRepo struct {
	events        map[int64][]Event
	assets        []*assets.Asset
	categoryNames map[int64]string
	committees    map[int]*Committee
}

func (f *fakeRepo) ListEvents(ctx context.Context, assetID int64, asOf time.Time) ([]Event, error) {
	var out []Event
	for _, ev := range f.events[assetID] {
		if !ev.Date.After(asOf) {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListAssets(ctx context.Context) ([]*assets.Asset, map[int64]string, error) {
	return f.assets, f.categoryNames, nil
}

func (f *fakeRepo) GetCommittee(ctx context.Context, year int) (*Committee, error) {
	return f.committees[year], nil
}

func (f *fakeRepo) SaveCommittee(ctx context.Context, c *Committee) error {
	if f.committees == nil {
		f.committees = map[int]*Committee{}
	}
	f.committees[c.Year] = c
	return nil
}

func day(d int) time.Time {
	return time.Date(2026, 5, d, 0, 0, 0, 0, time.UTC)
}

func TestReconcile(t *testing.T) {
	ctx := context.Background()

	repo := &fakeRepo{events: map[int64][]Event{
		1: {
			{Type: EventExport, Date: day(10), Quantity: 3, RecordID: 5},
			{Type: EventImport, Date: day(1), Quantity: 10, RecordID: 1},
			{Type: EventExport, Date: day(10), Quantity: 2, RecordID: 4},
			{Type: EventImport, Date: day(10), Quantity: 4, RecordID: 2},
		},
	}}
	svc := NewService(repo, fakeTxManager{})

	t.Run("replays ordered timeline with running totals", func(t *testing.T) {
		rec, err := svc.Reconcile(ctx, 1, day(31))
		require.NoError(t, err)

		require.Len(t, rec.Timeline, 4)

		// Same-day: the import precedes both exports, exports ordered by record id.
		assert.Equal(t, EventImport, rec.Timeline[1].Type)
		assert.Equal(t, EventExport, rec.Timeline[2].Type)
		assert.EqualValues(t, 2, rec.Timeline[2].Quantity) // record 4 before record 5
		assert.EqualValues(t, 3, rec.Timeline[3].Quantity)
		totals := []int64{10, 14, 12, 9}
		for i, want := range totals {
			assert.EqualValues(t, want, rec.Timeline[i].RunningTotal)
		}

		assert.EqualValues(t, 14, rec.TotalIn)
		assert.EqualValues(t, 5, rec.TotalOut)
		assert.EqualValues(t, 9, rec.NetQuantity)
	})

	t.Run("asOf cuts the timeline", func(t *testing.T) {
		rec, err := svc.Reconcile(ctx, 1, day(5))
		require.NoError(t, err)

		require.Len(t, rec.Timeline, 1)
		assert.EqualValues(t, 10, rec.NetQuantity)
	})

	t.Run("net quantity is monotone in asOf for import-only prefix", func(t *testing.T) {
		early, err := svc.Reconcile(ctx, 1, day(5))
		require.NoError(t, err)
		late, err := svc.Reconcile(ctx, 1, day(31))
		require.NoError(t, err)
		assert.LessOrEqual(t, early.TotalIn, late.TotalIn)
		assert.LessOrEqual(t, early.TotalOut, late.TotalOut)
	})

	t.Run("unknown asset yields empty reconciliation", func(t *testing.T) {
		rec, err := svc.Reconcile(ctx, 99, day(31))
		require.NoError(t, err)
		assert.Empty(t, rec.Timeline)
		assert.EqualValues(t, 0, rec.NetQuantity)
	})
}

func TestReconcileAll(t *testing.T) {
	ctx := context.Background()

	tools := assets.New(2, "Hammer", assets.UnitPiece)
	tools.ID = 1
	laptop := assets.New(1, "Laptop", assets.UnitPiece)
	laptop.ID = 2
	laptop.PriceHistory = []types.Money{types.MustMoney("10"), types.MustMoney("11")}
	mouse := assets.New(1, "Mouse", assets.UnitPiece)
	mouse.ID = 3

	repo := &fakeRepo{
		events: map[int64][]Event{
			2: {{Type: EventImport, Date: day(1), Quantity: 7, RecordID: 1}},
		},
		assets:        []*assets.Asset{tools, laptop, mouse},
		categoryNames: map[int64]string{1: "Electronics", 2: "Tools"},
	}
	svc := NewService(repo, fakeTxManager{})

	report, err := svc.ReconcileAll(ctx, day(31))
	require.NoError(t, err)
	require.Len(t, report.Assets, 3)

	// Ordered by category name, then asset id.
	assert.Equal(t, "Electronics", report.Assets[0].CategoryName)
	assert.EqualValues(t, 2, report.Assets[0].Asset.ID)
	assert.EqualValues(t, 3, report.Assets[1].Asset.ID)
	assert.Equal(t, "Tools", report.Assets[2].CategoryName)

	// Average price present only with history, quarter rounded.
	require.NotNil(t, report.Assets[0].AveragePrice)
	assert.True(t, types.MustMoney("10.50").Equal(*report.Assets[0].AveragePrice))
	assert.Nil(t, report.Assets[1].AveragePrice)

	assert.EqualValues(t, 7, report.Assets[0].Reconciliation.NetQuantity)
}

func TestCommittee(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{}
	svc := NewService(repo, fakeTxManager{})

	t.Run("save and fetch", func(t *testing.T) {
		c := &Committee{Year: 2026, PresidentID: 1, MemberIDs: []int64{2, 3}}
		require.NoError(t, svc.SaveCommittee(ctx, c))

		got, err := svc.GetCommittee(ctx, 2026)
		require.NoError(t, err)
		assert.Equal(t, c, got)
	})

	t.Run("president cannot be a member", func(t *testing.T) {
		c := &Committee{Year: 2026, PresidentID: 1, MemberIDs: []int64{1}}
		require.Error(t, svc.SaveCommittee(ctx, c))
	})

	t.Run("annual report carries the committee", func(t *testing.T) {
		repo.assets = nil
		report, err := svc.AnnualReport(ctx, 2026)
		require.NoError(t, err)
		require.NotNil(t, report.Committee)
		assert.EqualValues(t, 1, report.Committee.PresidentID)
	})
}
