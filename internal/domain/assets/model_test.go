package assets

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"makhzan/internal/core/apperror"
	"makhzan/internal/core/types"
)

func TestAssetValidate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid asset", func(t *testing.T) {
		a := New(1, "Laptop", UnitPiece)
		require.NoError(t, a.Validate(ctx))
	})

	t.Run("missing name", func(t *testing.T) {
		a := New(1, "", UnitPiece)
		err := a.Validate(ctx)
		require.Error(t, err)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeValidation, appErr.Code)
		assert.Equal(t, "name", appErr.Details["field"])
	})

	t.Run("missing category", func(t *testing.T) {
		a := New(0, "Laptop", UnitPiece)
		err := a.Validate(ctx)
		require.Error(t, err)
	})

	t.Run("invalid unit", func(t *testing.T) {
		a := New(1, "Laptop", Unit("pallet"))
		err := a.Validate(ctx)
		require.Error(t, err)
		appErr, _ := apperror.AsAppError(err)
		assert.Equal(t, "unit", appErr.Details["field"])
	})

	t.Run("negative price in history", func(t *testing.T) {
		a := New(1, "Laptop", UnitPiece)
		a.PriceHistory = []types.Money{types.MustMoney("-1")}
		require.Error(t, a.Validate(ctx))
	})
}

func TestAssetPriceStats(t *testing.T) {
	t.Run("no history means no value", func(t *testing.T) {
		a := New(1, "Laptop", UnitPiece)

		_, ok := a.AveragePrice()
		assert.False(t, ok)
		_, ok = a.MedianPrice()
		assert.False(t, ok)
	})

	t.Run("average and median are quarter rounded", func(t *testing.T) {
		a := New(1, "Laptop", UnitPiece)
		a.PriceHistory = []types.Money{
			types.MustMoney("10.00"),
			types.MustMoney("11.00"),
			types.MustMoney("10.10"),
		}

		avg, ok := a.AveragePrice()
		require.True(t, ok)
		assert.True(t, types.MustMoney("10.25").Equal(avg), "got %s", avg)

		med, ok := a.MedianPrice()
		require.True(t, ok)
		assert.True(t, types.MustMoney("10.00").Equal(med), "got %s", med)
	})
}
