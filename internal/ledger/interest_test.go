package ledger

import (
	"testing"
	"time"

	"lever/core"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newTestMarket(t time.Time) *core.Market {
	return &core.Market{
		AssetID:              "a9e26c94-0e29-4a83-b413-94ca6ef5c563",
		Symbol:               "BTC",
		Active:               true,
		SupplyRatePerSecond:  RatePerSecond(decimal.NewFromFloat(0.05)),
		BorrowRatePerSecond:  RatePerSecond(decimal.NewFromFloat(0.08)),
		CollateralFactor:     decimal.NewFromFloat(0.8),
		LiquidationThreshold: decimal.NewFromFloat(0.85),
		Price:                decimal.NewFromInt(1),
		SupplyIndex:          One,
		BorrowIndex:          One,
		LastUpdateTime:       t,
	}
}

func TestAccrueOneYear(t *testing.T) {
	genesis := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	market := newTestMarket(genesis)
	market.TotalBorrowed = decimal.NewFromInt(1000)

	Accrue(market, genesis.Add(31536000*time.Second))

	// 8% annual borrow rate over exactly one year
	want := decimal.NewFromFloat(1.08)
	diff := market.BorrowIndex.Sub(want).Abs()
	require.True(t, diff.LessThan(decimal.NewFromFloat(0.000001)),
		"borrow index %s, want ~%s", market.BorrowIndex, want)
	require.True(t, market.SupplyIndex.Equal(One), "no supply, supply index untouched")
}

func TestAccrueZeroElapsedIdempotent(t *testing.T) {
	genesis := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	market := newTestMarket(genesis)
	market.TotalSupplied = decimal.NewFromInt(500)
	market.TotalBorrowed = decimal.NewFromInt(100)

	now := genesis.Add(3600 * time.Second)
	Accrue(market, now)

	supplyIndex := market.SupplyIndex
	borrowIndex := market.BorrowIndex

	Accrue(market, now)
	require.True(t, market.SupplyIndex.Equal(supplyIndex))
	require.True(t, market.BorrowIndex.Equal(borrowIndex))
}

func TestAccrueMonotonic(t *testing.T) {
	genesis := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	market := newTestMarket(genesis)
	market.TotalSupplied = decimal.NewFromInt(1000)
	market.TotalBorrowed = decimal.NewFromInt(600)

	prevSupply := market.SupplyIndex
	prevBorrow := market.BorrowIndex

	steps := []int64{1, 1, 15, 0, 60, 3600, 3600, 86400, 0, 31536000}
	now := genesis
	for _, step := range steps {
		now = now.Add(time.Duration(step) * time.Second)
		Accrue(market, now)

		require.True(t, market.SupplyIndex.GreaterThanOrEqual(prevSupply))
		require.True(t, market.BorrowIndex.GreaterThanOrEqual(prevBorrow))
		prevSupply = market.SupplyIndex
		prevBorrow = market.BorrowIndex
	}
}

func TestAccrueBackwardsClockNoop(t *testing.T) {
	genesis := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	market := newTestMarket(genesis)
	market.TotalBorrowed = decimal.NewFromInt(1000)

	Accrue(market, genesis.Add(-time.Hour))
	require.True(t, market.BorrowIndex.Equal(One))
	require.Equal(t, genesis, market.LastUpdateTime)
}

func TestProjectIndexesDoesNotMutate(t *testing.T) {
	genesis := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	market := newTestMarket(genesis)
	market.TotalSupplied = decimal.NewFromInt(1000)
	market.TotalBorrowed = decimal.NewFromInt(400)

	now := genesis.Add(30 * 24 * time.Hour)
	supplyIndex, borrowIndex := ProjectIndexes(market, now)

	require.True(t, market.SupplyIndex.Equal(One))
	require.True(t, market.BorrowIndex.Equal(One))
	require.Equal(t, genesis, market.LastUpdateTime)

	Accrue(market, now)
	require.True(t, supplyIndex.Equal(market.SupplyIndex))
	require.True(t, borrowIndex.Equal(market.BorrowIndex))
}

func TestUtilizationRate(t *testing.T) {
	require.True(t, UtilizationRate(decimal.Zero, decimal.Zero).IsZero())
	require.True(t, UtilizationRate(decimal.NewFromInt(1000), decimal.NewFromInt(250)).
		Equal(decimal.NewFromFloat(0.25)))
}
