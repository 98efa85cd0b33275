package cmd

import (
	"time"

	"lever/core"
	"lever/store/market"
	"lever/store/position"
	"lever/store/price"
	"lever/store/transaction"
	"lever/store/user"
	"lever/store/wallet"

	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	propertystore "github.com/fox-one/pkg/store/property"
)

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

func provideConfig() *core.Config {
	return &cfg
}

func providePropertyStore(db *db.DB) property.Store {
	return propertystore.New(db)
}

func provideMarketStore(db *db.DB) core.IMarketStore {
	return market.New(db)
}

// provideMarketCache read cache for the api views only; the ledger write
// path stays on the raw store so a rolled back accrual can never leave a
// stale row cached
func provideMarketCache(marketStore core.IMarketStore) core.IMarketStore {
	return market.Cache(marketStore, time.Second)
}

func providePositionStore(db *db.DB) core.IPositionStore {
	return position.New(db)
}

func provideUserStore(db *db.DB) core.IUserStore {
	return user.New(db)
}

func providePriceStore(db *db.DB) core.IPriceStore {
	return price.New(db)
}

func provideWalletStore(db *db.DB) core.IWalletStore {
	return wallet.New(db)
}

func provideTransactionStore(db *db.DB) core.ITransactionStore {
	return transaction.New(db)
}
