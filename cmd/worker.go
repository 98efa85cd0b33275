package cmd

import (
	"lever/core"
	"lever/worker"
	"lever/worker/interest"
	"lever/worker/priceoracle"
	"lever/worker/sentinel"

	"github.com/drone/signal"
	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "lever background workers",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		log := logger.FromContext(ctx)
		ctx = logger.WithContext(ctx, log)

		database := provideDatabase()
		defer database.Close()

		propertyStore := providePropertyStore(database)
		if err := core.CheckSysVersion(ctx, propertyStore); err != nil {
			log.WithError(err).Fatal("check sys version")
		}

		marketStore := provideMarketStore(database)
		positionStore := providePositionStore(database)
		userStore := provideUserStore(database)
		priceStore := providePriceStore(database)

		marketService := provideMarketService(database, marketStore, priceStore)
		priceService := providePriceService(database, marketStore, priceStore)
		accountService := provideAccountService(marketStore, positionStore, userStore, priceService)

		workers := []worker.Worker{
			interest.New(cfg.Worker.AccrualSpec, marketStore, marketService),
			priceoracle.New(provideConfig(), marketStore, priceService),
			sentinel.New(cfg.Worker.SentinelInterval, userStore, accountService),
		}

		g, ctx := errgroup.WithContext(ctx)
		ctx = signal.WithContext(ctx)

		for _, w := range workers {
			w := w
			g.Go(func() error {
				return w.Run(ctx)
			})
		}

		if err := g.Wait(); err != nil {
			log.WithError(err).Infoln("workers stopped")
		}
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
