package ledger

import (
	"github.com/shopspring/decimal"

	"lever/core"
)

// ReconcileSupply rolls the supplied principal forward to the market's
// current supply index and re-snapshots. The market must already be
// accrued. A position touched for the first time initializes its snapshot
// with zero accrued delta.
func ReconcileSupply(position *core.Position, market *core.Market) {
	if position.SuppliedAmount.IsPositive() && position.SupplyIndexSnapshot.IsPositive() {
		position.SuppliedAmount = position.SuppliedAmount.
			Mul(market.SupplyIndex).
			Div(position.SupplyIndexSnapshot).
			Truncate(MaxPrecision)
	}
	position.SupplyIndexSnapshot = market.SupplyIndex
}

// ReconcileBorrow borrow-side counterpart of ReconcileSupply
func ReconcileBorrow(position *core.Position, market *core.Market) {
	if position.BorrowedAmount.IsPositive() && position.BorrowIndexSnapshot.IsPositive() {
		position.BorrowedAmount = position.BorrowedAmount.
			Mul(market.BorrowIndex).
			Div(position.BorrowIndexSnapshot).
			Truncate(MaxPrecision)
	}
	position.BorrowIndexSnapshot = market.BorrowIndex
}

// SupplyBalance current supply balance against a projected index, without
// touching the stored snapshot
// balance = principal * index / snapshot
func SupplyBalance(position *core.Position, supplyIndex decimal.Decimal) decimal.Decimal {
	if !position.SuppliedAmount.IsPositive() {
		return decimal.Zero
	}
	if !position.SupplyIndexSnapshot.IsPositive() {
		return position.SuppliedAmount
	}
	return position.SuppliedAmount.
		Mul(supplyIndex).
		Div(position.SupplyIndexSnapshot).
		Truncate(MaxPrecision)
}

// BorrowBalance borrow-side counterpart of SupplyBalance
func BorrowBalance(position *core.Position, borrowIndex decimal.Decimal) decimal.Decimal {
	if !position.BorrowedAmount.IsPositive() {
		return decimal.Zero
	}
	if !position.BorrowIndexSnapshot.IsPositive() {
		return position.BorrowedAmount
	}
	return position.BorrowedAmount.
		Mul(borrowIndex).
		Div(position.BorrowIndexSnapshot).
		Truncate(MaxPrecision)
}

// MaxRepay close-factor cap on a single liquidation repay
func MaxRepay(debt decimal.Decimal) decimal.Decimal {
	return debt.Mul(CloseFactor).Truncate(MaxPrecision)
}

// SeizeAmount collateral quantity owed to a liquidator for repaying
// actualRepay of debt, including the liquidation incentive
// seize = repay * borrow_price * incentive / collateral_price
func SeizeAmount(actualRepay, borrowPrice, collateralPrice decimal.Decimal) decimal.Decimal {
	return actualRepay.
		Mul(borrowPrice).
		Mul(LiquidationIncentive).
		Div(collateralPrice).
		Truncate(MaxPrecision)
}

// SubClamped aggregate debit clamped at zero; reconciled principals grow
// while aggregates stay principal-equivalent, the clamp conserves the
// non-negativity invariant
func SubClamped(total, amount decimal.Decimal) decimal.Decimal {
	out := total.Sub(amount)
	if out.IsNegative() {
		return decimal.Zero
	}
	return out
}
