package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundToQuarter(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"10.00", "10"},
		{"10.05", "10"},    // 10.05*4 = 40.2 -> 40 -> 10.00
		{"10.13", "10.25"}, // 40.52 -> 41 -> 10.25
		{"10.25", "10.25"},
		{"10.40", "10.5"},
		{"10.50", "10.5"},
		{"10.125", "10"},   // 40.5 tie -> even 40 -> 10.00
		{"10.375", "10.5"}, // 41.5 tie -> even 42 -> 10.50
		{"10.625", "10.5"}, // 42.5 tie -> even 42 -> 10.50
		{"10.875", "11"},   // 43.5 tie -> even 44 -> 11.00
		{"0.10", "0"},
		{"0.13", "0.25"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := RoundToQuarter(MustMoney(tt.in))
			assert.True(t, got.Equal(MustMoney(tt.want)), "RoundToQuarter(%s) = %s, want %s", tt.in, got, tt.want)
		})
	}
}

func TestAveragePrice(t *testing.T) {
	t.Run("empty history has no value", func(t *testing.T) {
		_, ok := AveragePrice(nil)
		assert.False(t, ok)
	})

	t.Run("10 and 11 average to 10.50", func(t *testing.T) {
		avg, ok := AveragePrice([]Money{MustMoney("10"), MustMoney("11")})
		require.True(t, ok)
		assert.True(t, avg.Equal(MustMoney("10.5")), "got %s", avg)
	})

	t.Run("10 and 10.10 round down to 10.00", func(t *testing.T) {
		// mean 10.05 is closer to 10.00 than 10.25
		avg, ok := AveragePrice([]Money{MustMoney("10"), MustMoney("10.10")})
		require.True(t, ok)
		assert.True(t, avg.Equal(MustMoney("10")), "got %s", avg)
	})

	t.Run("single price is its own average", func(t *testing.T) {
		avg, ok := AveragePrice([]Money{MustMoney("20.00")})
		require.True(t, ok)
		assert.True(t, avg.Equal(MustMoney("20")))
	})
}

func TestMedianPrice(t *testing.T) {
	t.Run("empty history has no value", func(t *testing.T) {
		_, ok := MedianPrice(nil)
		assert.False(t, ok)
	})

	t.Run("odd length takes middle value", func(t *testing.T) {
		med, ok := MedianPrice([]Money{MustMoney("30"), MustMoney("10"), MustMoney("20")})
		require.True(t, ok)
		assert.True(t, med.Equal(MustMoney("20")), "got %s", med)
	})

	t.Run("even length averages the middle pair", func(t *testing.T) {
		med, ok := MedianPrice([]Money{MustMoney("10"), MustMoney("40"), MustMoney("20"), MustMoney("30")})
		require.True(t, ok)
		assert.True(t, med.Equal(MustMoney("25")), "got %s", med)
	})

	t.Run("median is quarter rounded", func(t *testing.T) {
		med, ok := MedianPrice([]Money{MustMoney("10"), MustMoney("10.10")})
		require.True(t, ok)
		assert.True(t, med.Equal(MustMoney("10")), "got %s", med)
	})

	t.Run("input slice is not reordered", func(t *testing.T) {
		history := []Money{MustMoney("3"), MustMoney("1"), MustMoney("2")}
		_, _ = MedianPrice(history)
		assert.True(t, history[0].Equal(MustMoney("3")))
	})
}
