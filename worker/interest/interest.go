package interest

import (
	"context"
	"time"

	"lever/core"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/robfig/cron/v3"
)

// Worker accrual worker, advances every market's indices on a cron spec
type Worker struct {
	cron          *cron.Cron
	spec          string
	marketStore   core.IMarketStore
	marketService core.IMarketService
}

// New new accrual worker
func New(spec string, marketStore core.IMarketStore, marketService core.IMarketService) *Worker {
	if spec == "" {
		spec = "@every 10s"
	}

	return &Worker{
		cron:          cron.New(),
		spec:          spec,
		marketStore:   marketStore,
		marketService: marketService,
	}
}

// Run run worker
func (w *Worker) Run(ctx context.Context) error {
	if _, err := w.cron.AddFunc(w.spec, func() {
		_ = w.onWork(ctx)
	}); err != nil {
		return err
	}

	w.cron.Start()
	<-ctx.Done()
	<-w.cron.Stop().Done()
	return ctx.Err()
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "interest")

	markets, err := w.marketStore.All(ctx)
	if err != nil {
		log.WithError(err).Errorln("fetch markets")
		return err
	}

	now := time.Now()
	for _, market := range markets {
		if err := w.marketService.AccrueInterest(ctx, market, now); err != nil {
			// a concurrent ledger write already advanced the market, skip
			if err == db.ErrOptimisticLock {
				continue
			}

			log.WithError(err).Errorln("accrue", market.Symbol)
			return err
		}
	}

	return nil
}
