package core

import (
	"context"

	"github.com/shopspring/decimal"
)

// ILedgerService the balance-mutating engine. Every operation accrues the
// target market first, runs under exclusive locks on the touched markets and
// users, and applies all state changes and custody transfers in one
// transaction.
type ILedgerService interface {
	Supply(ctx context.Context, userID, assetID string, amount decimal.Decimal) (*Transaction, error)
	Withdraw(ctx context.Context, userID, assetID string, amount decimal.Decimal) (*Transaction, error)
	Borrow(ctx context.Context, userID, assetID string, amount decimal.Decimal) (*Transaction, error)
	// Repay caps the requested amount at the outstanding debt
	Repay(ctx context.Context, userID, assetID string, amount decimal.Decimal) (*Transaction, error)
	SetCollateral(ctx context.Context, userID, assetID string, enabled bool) (*Transaction, error)
	// Liquidate repays up to the close-factor share of the borrower's debt on
	// borrowAssetID and seizes incentive-priced collateral on collateralAssetID
	Liquidate(ctx context.Context, liquidatorID, borrowerID, borrowAssetID, collateralAssetID string, repayAmount decimal.Decimal) (*Transaction, error)
}
