package ledger

import (
	"context"

	"lever/core"
	"lever/pkg/locker"

	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
)

type service struct {
	db               *db.DB
	propertyStore    property.Store
	locker           *locker.Locker
	marketStore      core.IMarketStore
	positionStore    core.IPositionStore
	userStore        core.IUserStore
	transactionStore core.ITransactionStore
	walletService    core.IWalletService
	priceService     core.IPriceOracleService
	accountService   core.IAccountService
}

// New new ledger service
func New(
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
	return &service{
		db:               db,
		propertyStore:    propertyStore,
		locker:           locker.New(),
		marketStore:      marketStore,
		positionStore:    positionStore,
		userStore:        userStore,
		transactionStore: transactionStore,
		walletService:    walletService,
		priceService:     priceService,
		accountService:   accountService,
	}
}

func (s *service) checkPaused(ctx context.Context) error {
	paused, err := core.ReadPaused(ctx, s.propertyStore)
	if err != nil {
		return err
	}
	if paused {
		return core.ErrOperationForbidden
	}
	return nil
}

// mustGetMarket find the market, requiring it to exist. Returns a private
// copy; Find may serve a shared cached row and accrual mutates in place.
func (s *service) mustGetMarket(ctx context.Context, assetID string) (*core.Market, error) {
	market, err := s.marketStore.Find(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if market.ID == 0 {
		return nil, core.ErrMarketNotFound
	}

	m := *market
	return &m, nil
}

func (s *service) savePosition(ctx context.Context, tx *db.DB, position *core.Position) error {
	if position.ID == 0 {
		return s.positionStore.Create(ctx, tx, position)
	}
	return s.positionStore.Update(ctx, tx, position)
}

func marketLockKey(assetID string) string {
	return "market:" + assetID
}

func userLockKey(userID string) string {
	return "user:" + userID
}
