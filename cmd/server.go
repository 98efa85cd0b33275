package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"lever/core"
	"lever/handler/hc"
	"lever/handler/rest"

	"github.com/drone/signal"
	"github.com/fox-one/pkg/logger"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "run lever api server",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		propertyStore := providePropertyStore(database)
		if err := core.CheckSysVersion(ctx, propertyStore); err != nil {
			logrus.WithError(err).Fatal("check sys version")
		}

		marketStore := provideMarketStore(database)
		positionStore := providePositionStore(database)
		userStore := provideUserStore(database)
		priceStore := providePriceStore(database)
		walletStore := provideWalletStore(database)
		transactionStore := provideTransactionStore(database)

		marketService := provideMarketService(database, marketStore, priceStore)
		priceService := providePriceService(database, marketStore, priceStore)
		walletService := provideWalletService(database, walletStore)
		accountService := provideAccountService(marketStore, positionStore, userStore, priceService)
		ledgerService := provideLedgerService(
			database,
			propertyStore,
			marketStore,
			positionStore,
			userStore,
			transactionStore,
			walletService,
			priceService,
			accountService,
		)

		mux := chi.NewMux()
		mux.Use(middleware.Recoverer)
		mux.Use(middleware.StripSlashes)
		mux.Use(cors.AllowAll().Handler)
		mux.Use(logger.WithRequestID)
		mux.Use(middleware.Logger)
		mux.Use(middleware.NewCompressor(5).Handler)

		mux.Mount("/hc", hc.Handle(rootCmd.Version))
		mux.Mount("/api", rest.Handle(
			provideConfig(),
			provideMarketCache(marketStore),
			positionStore,
			priceStore,
			walletStore,
			transactionStore,
			marketService,
			priceService,
			accountService,
			ledgerService,
		))

		port, _ := cmd.Flags().GetInt("port")
		if port == 0 {
			port = cfg.API.Port
		}
		addr := fmt.Sprintf(":%d", port)

		server := &http.Server{
			Addr:    addr,
			Handler: mux,
		}

		ctx, quit := context.WithCancel(ctx)
		done := make(chan struct{}, 1)
		signal.WithContextFunc(ctx, func() {
			quit()

			ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
			defer cancel()

			if err := server.Shutdown(ctx); err != nil {
				logrus.WithError(err).Error("graceful shutdown server failed")
			}

			close(done)
		})

		logrus.Infoln("serve at", addr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("server aborted")
		}

		<-done
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
	serverCmd.Flags().IntP("port", "p", 0, "server port, default from config")
}
