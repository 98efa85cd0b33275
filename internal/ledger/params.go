package ledger

import (
	"github.com/shopspring/decimal"
)

var (
	// SecondsPerYear seconds per year
	SecondsPerYear = decimal.NewFromInt(31536000)
	// CloseFactor max fraction of one asset's debt a single liquidation may repay
	CloseFactor = decimal.NewFromFloat(0.5)
	// LiquidationIncentive premium multiplier applied to the seized collateral
	LiquidationIncentive = decimal.NewFromFloat(1.08)
	// One the unit scale, 1.0
	One = decimal.New(1, 0)
	// MaxHealthFactor sentinel health factor for accounts with zero debt
	MaxHealthFactor = decimal.New(1, 12)
	// MaxPrecision max precision
	MaxPrecision int32 = 16
)

// RatePerSecond derive the per-second rate from an annual rate
func RatePerSecond(annualRate decimal.Decimal) decimal.Decimal {
	return annualRate.Div(SecondsPerYear).Truncate(20)
}
