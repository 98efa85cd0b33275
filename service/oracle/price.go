package oracle

import (
	"context"
	"fmt"
	"time"

	"lever/core"
	"lever/pkg/resthttp"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

type priceService struct {
	config      *core.Config
	db          *db.DB
	marketStore core.IMarketStore
	priceStore  core.IPriceStore
}

// New new price oracle service
func New(config *core.Config, db *db.DB, marketStore core.IMarketStore, priceStore core.IPriceStore) core.IPriceOracleService {
	return &priceService{
		config:      config,
		db:          db,
		marketStore: marketStore,
		priceStore:  priceStore,
	}
}

func (s *priceService) GetUnderlyingPrice(ctx context.Context, market *core.Market) (decimal.Decimal, error) {
	if !market.Price.IsPositive() {
		return decimal.Zero, core.ErrInvalidPrice
	}

	return market.Price, nil
}

func (s *priceService) SetPrice(ctx context.Context, assetID string, price decimal.Decimal, updatedBy string) error {
	log := logger.FromContext(ctx).WithField("service", "oracle")

	if !price.IsPositive() {
		return core.ErrInvalidPrice
	}

	found, err := s.marketStore.Find(ctx, assetID)
	if err != nil {
		return err
	}
	if found.ID == 0 {
		return core.ErrMarketNotFound
	}

	// private copy, Find may serve a shared cached row
	market := *found

	if err := s.db.Tx(func(tx *db.DB) error {
		market.Price = price
		if err := s.marketStore.Update(ctx, tx, &market); err != nil {
			return err
		}

		return s.priceStore.Create(ctx, tx, &core.Price{
			AssetID:   assetID,
			Price:     price,
			UpdatedBy: updatedBy,
		})
	}); err != nil {
		return err
	}

	log.Infoln("price updated:", market.Symbol, price)
	return nil
}

func (s *priceService) PullPriceTicker(ctx context.Context, assetID string, t time.Time) (*core.PriceTicker, error) {
	url := fmt.Sprintf("%s/api/tickers/%s?ts=%d", s.config.PriceOracle.EndPoint, assetID, t.UTC().Unix())
	resp, err := resthttp.Request(ctx).Get(url)
	if err != nil {
		return nil, err
	}

	var ticker core.PriceTicker
	if err := resthttp.ParseResponse(resp, &ticker); err != nil {
		return nil, err
	}

	return &ticker, nil
}
