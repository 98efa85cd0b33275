package rest

import (
	"errors"
	"net/http"

	"lever/core"
	"lever/handler/render"

	"github.com/go-chi/chi"
)

// Handle handle rest api request
func Handle(
	config *core.Config,
	marketStore core.IMarketStore,
	positionStore core.IPositionStore,
	priceStore core.IPriceStore,
	walletStore core.IWalletStore,
	transactionStore core.ITransactionStore,
	marketService core.IMarketService,
	priceService core.IPriceOracleService,
	accountService core.IAccountService,
	ledgerService core.ILedgerService,
) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, errors.New("not found"))
	})

	router.Get("/markets", allMarketsHandler(marketStore, marketService))
	router.Get("/markets/{symbol}", marketHandler(marketStore, marketService))
	router.Get("/accounts/{user}", accountHandler(marketStore, positionStore, accountService))
	router.Get("/prices/{asset}", latestPriceHandler(priceStore))
	router.Get("/transactions", transactionsHandler(transactionStore))
	router.Get("/transactions/{trace}", transactionHandler(transactionStore))
	router.Get("/transfers/{user}", transfersHandler(walletStore))

	router.Post("/supply", supplyHandler(ledgerService))
	router.Post("/withdraw", withdrawHandler(ledgerService))
	router.Post("/borrow", borrowHandler(ledgerService))
	router.Post("/repay", repayHandler(ledgerService))
	router.Post("/collateral", setCollateralHandler(ledgerService))
	router.Post("/liquidate", liquidateHandler(ledgerService))

	// admin surface, user must be listed in config admins
	router.Post("/markets", createMarketHandler(config, marketService))
	router.Post("/prices", setPriceHandler(config, priceService))

	return router
}
