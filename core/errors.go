package core

import "strconv"

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unknown
	ErrUnknown ErrorCode = 100000
	// ErrOperationForbidden operation forbidden, the ledger is paused
	ErrOperationForbidden ErrorCode = 100001

	// ErrMarketNotFound no market
	ErrMarketNotFound ErrorCode = 100100
	// ErrInvalidAmount invalid amount
	ErrInvalidAmount ErrorCode = 100101
	// ErrAssetNotActive market exists but is not active
	ErrAssetNotActive ErrorCode = 100102
	// ErrAssetAlreadyRegistered market already registered
	ErrAssetAlreadyRegistered ErrorCode = 100103
	// ErrInvalidRiskParameters risk parameters out of range
	ErrInvalidRiskParameters ErrorCode = 100104
	// ErrInvalidPrice invalid market price
	ErrInvalidPrice ErrorCode = 100105

	// ErrInsufficientBalance withdraw or repay exceeds the reconciled principal
	ErrInsufficientBalance ErrorCode = 100200
	// ErrInsufficientCollateral borrow or withdraw would break the solvency check
	ErrInsufficientCollateral ErrorCode = 100201
	// ErrNoCollateral the position lacks the expected collateral balance
	ErrNoCollateral ErrorCode = 100202
	// ErrNoDebt the position lacks the expected debt balance
	ErrNoDebt ErrorCode = 100203

	// ErrSelfLiquidationDisallowed liquidator and borrower are the same user
	ErrSelfLiquidationDisallowed ErrorCode = 100300
	// ErrNotLiquidatable health factor is above the liquidation boundary
	ErrNotLiquidatable ErrorCode = 100301
	// ErrSeizeExceedsCollateral seize amount larger than the available collateral
	ErrSeizeExceedsCollateral ErrorCode = 100302

	// ErrTransferFailed asset transfer collaborator rejected the transfer
	ErrTransferFailed ErrorCode = 100400
)

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	switch e {
	case ErrOperationForbidden:
		return "operation forbidden"
	case ErrMarketNotFound:
		return "market not found"
	case ErrInvalidAmount:
		return "invalid amount"
	case ErrAssetNotActive:
		return "asset not active"
	case ErrAssetAlreadyRegistered:
		return "asset already registered"
	case ErrInvalidRiskParameters:
		return "invalid risk parameters"
	case ErrInvalidPrice:
		return "invalid price"
	case ErrInsufficientBalance:
		return "insufficient balance"
	case ErrInsufficientCollateral:
		return "insufficient collateral"
	case ErrNoCollateral:
		return "no collateral"
	case ErrNoDebt:
		return "no debt"
	case ErrSelfLiquidationDisallowed:
		return "self liquidation disallowed"
	case ErrNotLiquidatable:
		return "not liquidatable"
	case ErrSeizeExceedsCollateral:
		return "seize exceeds collateral"
	case ErrTransferFailed:
		return "transfer failed"
	default:
		return "unknown error " + e.String()
	}
}
