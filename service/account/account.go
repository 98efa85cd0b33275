package account

import (
	"context"
	"time"

	"lever/core"
	"lever/internal/ledger"

	"github.com/shopspring/decimal"
)

type accountService struct {
	marketStore   core.IMarketStore
	positionStore core.IPositionStore
	userStore     core.IUserStore
	priceService  core.IPriceOracleService
}

// New new account service
func New(
	marketStore core.IMarketStore,
	positionStore core.IPositionStore,
	userStore core.IUserStore,
	priceService core.IPriceOracleService,
) core.IAccountService {
	return &accountService{
		marketStore:   marketStore,
		positionStore: positionStore,
		userStore:     userStore,
		priceService:  priceService,
	}
}

// EvaluateAccount walks the user's touched assets, projects every market's
// indices to `at` and aggregates the three exposure values. Collateral
// value is collateral-factor weighted, liquidation value is
// threshold weighted; the health factor compares the latter against the
// borrow value.
func (s *accountService) EvaluateAccount(ctx context.Context, userID string, at time.Time) (*core.AccountLiquidity, error) {
	liquidity := &core.AccountLiquidity{
		UserID:           userID,
		CollateralValue:  decimal.Zero,
		LiquidationValue: decimal.Zero,
		BorrowValue:      decimal.Zero,
	}

	user, err := s.userStore.Find(ctx, userID)
	if err != nil {
		return nil, err
	}

	markets, err := s.marketStore.AllAsMap(ctx)
	if err != nil {
		return nil, err
	}

	for _, assetID := range user.TouchedAssets {
		market, ok := markets[assetID]
		if !ok {
			continue
		}

		position, err := s.positionStore.Find(ctx, userID, assetID)
		if err != nil {
			return nil, err
		}

		price, err := s.priceService.GetUnderlyingPrice(ctx, market)
		if err != nil {
			return nil, err
		}

		supplyIndex, borrowIndex := ledger.ProjectIndexes(market, at)

		if position.IsCollateral && position.SuppliedAmount.IsPositive() {
			value := ledger.SupplyBalance(position, supplyIndex).Mul(price)
			liquidity.CollateralValue = liquidity.CollateralValue.
				Add(value.Mul(market.CollateralFactor).Truncate(ledger.MaxPrecision))
			liquidity.LiquidationValue = liquidity.LiquidationValue.
				Add(value.Mul(market.LiquidationThreshold).Truncate(ledger.MaxPrecision))
		}

		if position.BorrowedAmount.IsPositive() {
			value := ledger.BorrowBalance(position, borrowIndex).Mul(price).Truncate(ledger.MaxPrecision)
			liquidity.BorrowValue = liquidity.BorrowValue.Add(value)
		}
	}

	if liquidity.BorrowValue.IsPositive() {
		liquidity.HealthFactor = liquidity.LiquidationValue.
			Div(liquidity.BorrowValue).
			Truncate(ledger.MaxPrecision)
	} else {
		liquidity.HealthFactor = ledger.MaxHealthFactor
	}

	liquidity.Liquidatable = liquidity.HealthFactor.LessThan(ledger.One)

	return liquidity, nil
}

func (s *accountService) CanBorrow(ctx context.Context, userID string, market *core.Market, amount decimal.Decimal, at time.Time) (bool, error) {
	liquidity, err := s.EvaluateAccount(ctx, userID, at)
	if err != nil {
		return false, err
	}

	price, err := s.priceService.GetUnderlyingPrice(ctx, market)
	if err != nil {
		return false, err
	}

	newBorrowValue := liquidity.BorrowValue.Add(amount.Mul(price))
	return liquidity.CollateralValue.GreaterThanOrEqual(newBorrowValue), nil
}

func (s *accountService) RemainsSolventAfterWithdraw(ctx context.Context, userID string, market *core.Market, amount decimal.Decimal, at time.Time) (bool, error) {
	liquidity, err := s.EvaluateAccount(ctx, userID, at)
	if err != nil {
		return false, err
	}

	price, err := s.priceService.GetUnderlyingPrice(ctx, market)
	if err != nil {
		return false, err
	}

	removed := amount.Mul(price).Mul(market.CollateralFactor).Truncate(ledger.MaxPrecision)
	remaining := liquidity.CollateralValue.Sub(removed)
	return remaining.GreaterThanOrEqual(liquidity.BorrowValue), nil
}

func (s *accountService) RemainsSolventWithoutCollateral(ctx context.Context, userID string, market *core.Market, at time.Time) (bool, error) {
	liquidity, err := s.EvaluateAccount(ctx, userID, at)
	if err != nil {
		return false, err
	}

	position, err := s.positionStore.Find(ctx, userID, market.AssetID)
	if err != nil {
		return false, err
	}

	if !position.IsCollateral || !position.SuppliedAmount.IsPositive() {
		return true, nil
	}

	price, err := s.priceService.GetUnderlyingPrice(ctx, market)
	if err != nil {
		return false, err
	}

	supplyIndex, _ := ledger.ProjectIndexes(market, at)
	removed := ledger.SupplyBalance(position, supplyIndex).
		Mul(price).
		Mul(market.CollateralFactor).
		Truncate(ledger.MaxPrecision)

	remaining := liquidity.CollateralValue.Sub(removed)
	return remaining.GreaterThanOrEqual(liquidity.BorrowValue), nil
}
