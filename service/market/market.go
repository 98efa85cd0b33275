package market

import (
	"context"
	"time"

	"lever/core"
	"lever/internal/ledger"

	"github.com/asaskevich/govalidator"
	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

type service struct {
	db          *db.DB
	marketStore core.IMarketStore
	priceStore  core.IPriceStore
}

// New new market service
func New(db *db.DB, marketStore core.IMarketStore, priceStore core.IPriceStore) core.IMarketService {
	return &service{
		db:          db,
		marketStore: marketStore,
		priceStore:  priceStore,
	}
}

func (s *service) CreateMarket(ctx context.Context, req *core.CreateMarketReq) (*core.Market, error) {
	log := logger.FromContext(ctx).WithField("service", "market")

	if _, err := govalidator.ValidateStruct(req); err != nil {
		log.WithError(err).Infoln("invalid market request")
		return nil, core.ErrInvalidRiskParameters
	}

	if err := validateRiskParameters(req); err != nil {
		return nil, err
	}

	existing, err := s.marketStore.Find(ctx, req.AssetID)
	if err != nil {
		return nil, err
	}
	if existing.ID > 0 {
		return nil, core.ErrAssetAlreadyRegistered
	}

	now := time.Now().UTC()
	market := &core.Market{
		AssetID:              req.AssetID,
		Symbol:               req.Symbol,
		Active:               true,
		SupplyRatePerSecond:  ledger.RatePerSecond(req.AnnualSupplyRate),
		BorrowRatePerSecond:  ledger.RatePerSecond(req.AnnualBorrowRate),
		ReserveFactor:        req.ReserveFactor,
		CollateralFactor:     req.CollateralFactor,
		LiquidationThreshold: req.LiquidationThreshold,
		Price:                req.InitialPrice,
		SupplyIndex:          ledger.One,
		BorrowIndex:          ledger.One,
		LastUpdateTime:       now,
	}

	if err := s.db.Tx(func(tx *db.DB) error {
		if err := s.marketStore.Save(ctx, tx, market); err != nil {
			return err
		}

		return s.priceStore.Create(ctx, tx, &core.Price{
			AssetID: req.AssetID,
			Price:   req.InitialPrice,
		})
	}); err != nil {
		return nil, err
	}

	log.Infoln("market created:", market.Symbol)
	return market, nil
}

// AccrueInterest advances the indices to t and persists; used by the
// accrual worker between user operations
func (s *service) AccrueInterest(ctx context.Context, market *core.Market, t time.Time) error {
	ledger.Accrue(market, t)

	return s.db.Tx(func(tx *db.DB) error {
		return s.marketStore.Update(ctx, tx, market)
	})
}

func (s *service) CurUtilizationRate(ctx context.Context, market *core.Market) decimal.Decimal {
	return ledger.UtilizationRate(market.TotalSupplied, market.TotalBorrowed)
}

func (s *service) CurSupplyAPY(ctx context.Context, market *core.Market) decimal.Decimal {
	return market.SupplyRatePerSecond.Mul(ledger.SecondsPerYear).Truncate(ledger.MaxPrecision)
}

func (s *service) CurBorrowAPY(ctx context.Context, market *core.Market) decimal.Decimal {
	return market.BorrowRatePerSecond.Mul(ledger.SecondsPerYear).Truncate(ledger.MaxPrecision)
}

// 0 <= reserveFactor <= 1, 0 <= collateralFactor < liquidationThreshold <= 1
func validateRiskParameters(req *core.CreateMarketReq) error {
	if req.AnnualSupplyRate.IsNegative() || req.AnnualBorrowRate.IsNegative() {
		return core.ErrInvalidRiskParameters
	}

	if req.ReserveFactor.IsNegative() || req.ReserveFactor.GreaterThan(ledger.One) {
		return core.ErrInvalidRiskParameters
	}

	if req.CollateralFactor.IsNegative() ||
		req.CollateralFactor.GreaterThanOrEqual(req.LiquidationThreshold) ||
		req.LiquidationThreshold.GreaterThan(ledger.One) {
		return core.ErrInvalidRiskParameters
	}

	if !req.InitialPrice.IsPositive() {
		return core.ErrInvalidPrice
	}

	return nil
}
