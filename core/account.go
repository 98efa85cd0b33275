package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// AccountLiquidity aggregated exposure of one user across all touched assets.
// CollateralValue is collateral-factor weighted and backs the borrow ceiling;
// LiquidationValue is liquidation-threshold weighted and backs the health
// factor. The two are distinct risk views and never derived from each other.
type AccountLiquidity struct {
	UserID           string          `json:"user_id"`
	CollateralValue  decimal.Decimal `json:"collateral_value"`
	LiquidationValue decimal.Decimal `json:"liquidation_value"`
	BorrowValue      decimal.Decimal `json:"borrow_value"`
	HealthFactor     decimal.Decimal `json:"health_factor"`
	Liquidatable     bool            `json:"liquidatable"`
}

// IAccountService solvency evaluator. Balances are reconciled on the fly
// against read-only projected indices, so results are never stale.
type IAccountService interface {
	EvaluateAccount(ctx context.Context, userID string, at time.Time) (*AccountLiquidity, error)
	// CanBorrow reports whether borrowing amount of market's asset keeps the
	// account within its collateral-factor-weighted borrow ceiling
	CanBorrow(ctx context.Context, userID string, market *Market, amount decimal.Decimal, at time.Time) (bool, error)
	// RemainsSolventAfterWithdraw re-evaluates with amount of the market's
	// collateral removed
	RemainsSolventAfterWithdraw(ctx context.Context, userID string, market *Market, amount decimal.Decimal, at time.Time) (bool, error)
	// RemainsSolventWithoutCollateral re-evaluates with the market's
	// collateral weight zeroed out
	RemainsSolventWithoutCollateral(ctx context.Context, userID string, market *Market, at time.Time) (bool, error)
}
