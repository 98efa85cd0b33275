package cmd

import (
	"lever/core"
	accountservice "lever/service/account"
	ledgerservice "lever/service/ledger"
	marketservice "lever/service/market"
	oracleservice "lever/service/oracle"
	walletservice "lever/service/wallet"

	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
)

func provideMarketService(db *db.DB, marketStore core.IMarketStore, priceStore core.IPriceStore) core.IMarketService {
	return marketservice.New(db, marketStore, priceStore)
}

func providePriceService(db *db.DB, marketStore core.IMarketStore, priceStore core.IPriceStore) core.IPriceOracleService {
	return oracleservice.New(provideConfig(), db, marketStore, priceStore)
}

func provideWalletService(db *db.DB, walletStore core.IWalletStore) core.IWalletService {
	return walletservice.New(db, walletStore)
}

func provideAccountService(
	marketStore core.IMarketStore,
	positionStore core.IPositionStore,
	userStore core.IUserStore,
	priceService core.IPriceOracleService,
) core.IAccountService {
	return accountservice.New(marketStore, positionStore, userStore, priceService)
}

func provideLedgerService(
	db *db.DB,
	propertyStore property.Store,
	marketStore core.IMarketStore,
	positionStore core.IPositionStore,
	userStore core.IUserStore,
	transactionStore core.ITransactionStore,
	walletService core.IWalletService,
	priceService core.IPriceOracleService,
	accountService core.IAccountService,
) core.ILedgerService {
	return ledgerservice.New(
		db,
		propertyStore,
		marketStore,
		positionStore,
		userStore,
		transactionStore,
		walletService,
		priceService,
		accountService,
	)
}
