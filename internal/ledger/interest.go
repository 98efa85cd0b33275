package ledger

import (
	"time"

	"lever/core"

	"github.com/shopspring/decimal"
)

// Accrue folds the interval since the market's last update into both
// indices and stamps the market with now. Idempotent for a given now, and
// a no-op when no time has elapsed.
//
// Each call is linear in elapsed time against the totals at call time, so
// interest compounds across calls, not within one. Frequent accrual
// converges toward continuous compounding; this approximation is relied on
// by the solvency math and must not be replaced with a per-second
// compounding formula.
func Accrue(market *core.Market, now time.Time) {
	now = now.UTC()
	elapsed := now.Unix() - market.LastUpdateTime.UTC().Unix()
	if elapsed <= 0 {
		return
	}

	normalizeIndexes(market)
	elapsedDec := decimal.NewFromInt(elapsed)

	if market.TotalBorrowed.IsPositive() {
		interest := market.TotalBorrowed.
			Mul(market.BorrowRatePerSecond).
			Mul(elapsedDec).
			Truncate(MaxPrecision)
		market.BorrowIndex = market.BorrowIndex.Add(
			interest.Div(market.TotalBorrowed).Truncate(MaxPrecision))
	}

	if market.TotalSupplied.IsPositive() {
		interest := market.TotalSupplied.
			Mul(market.SupplyRatePerSecond).
			Mul(elapsedDec).
			Truncate(MaxPrecision)
		market.SupplyIndex = market.SupplyIndex.Add(
			interest.Div(market.TotalSupplied).Truncate(MaxPrecision))
	}

	market.LastUpdateTime = now
}

// ProjectIndexes returns the supply and borrow index the market would carry
// after Accrue(market, now), without mutating it. Read paths use this to
// mimic accrual without writing it.
func ProjectIndexes(market *core.Market, now time.Time) (supplyIndex, borrowIndex decimal.Decimal) {
	projected := *market
	normalizeIndexes(&projected)
	Accrue(&projected, now)
	return projected.SupplyIndex, projected.BorrowIndex
}

// indices start at one for the lifetime of the market
func normalizeIndexes(market *core.Market) {
	if !market.SupplyIndex.IsPositive() {
		market.SupplyIndex = One
	}
	if !market.BorrowIndex.IsPositive() {
		market.BorrowIndex = One
	}
}

// UtilizationRate borrow utilization of the market
// utilization = total_borrowed / total_supplied
func UtilizationRate(totalSupplied, totalBorrowed decimal.Decimal) decimal.Decimal {
	if !totalSupplied.IsPositive() {
		return decimal.Zero
	}
	return totalBorrowed.Div(totalSupplied).Truncate(MaxPrecision)
}
