package priceoracle

import (
	"context"
	"time"

	"lever/core"
	"lever/worker"

	"github.com/fox-one/pkg/logger"
)

// Worker price feed worker, polls the oracle endpoint for every market
type Worker struct {
	worker.TickWorker
	config       *core.Config
	marketStore  core.IMarketStore
	priceService core.IPriceOracleService
}

// New new price feed worker
func New(config *core.Config, marketStore core.IMarketStore, priceService core.IPriceOracleService) *Worker {
	return &Worker{
		TickWorker: worker.TickWorker{
			Delay:    config.Worker.PriceInterval,
			ErrDelay: time.Minute,
		},
		config:       config,
		marketStore:  marketStore,
		priceService: priceService,
	}
}

// Run run worker
func (w *Worker) Run(ctx context.Context) error {
	if w.config.PriceOracle.EndPoint == "" {
		logger.FromContext(ctx).Infoln("no price oracle endpoint, prices stay administrative")
		<-ctx.Done()
		return ctx.Err()
	}

	return w.StartTick(ctx, func(ctx context.Context) error {
		return w.onWork(ctx)
	})
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "priceoracle")

	markets, err := w.marketStore.All(ctx)
	if err != nil {
		log.WithError(err).Errorln("fetch markets")
		return err
	}

	for _, market := range markets {
		ticker, err := w.priceService.PullPriceTicker(ctx, market.AssetID, time.Now())
		if err != nil {
			log.WithError(err).Errorln("pull price ticker", market.Symbol)
			continue
		}

		if !ticker.Price.IsPositive() {
			log.Errorln("invalid ticker price", ticker.Symbol, ticker.Price)
			continue
		}

		if err := w.priceService.SetPrice(ctx, market.AssetID, ticker.Price, "oracle"); err != nil {
			log.WithError(err).Errorln("set price", market.Symbol)
		}
	}

	return nil
}
