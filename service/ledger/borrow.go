package ledger

import (
	"context"
	"time"

	"lever/core"
	"lever/internal/ledger"
	"lever/pkg/number"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	foxuuid "github.com/fox-one/pkg/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

func (s *service) Borrow(ctx context.Context, userID, assetID string, amount decimal.Decimal) (*core.Transaction, error) {
	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"action": core.ActionBorrow,
		"user":   userID,
		"asset":  assetID,
	})

	if !amount.IsPositive() {
		return nil, core.ErrInvalidAmount
	}

	if err := s.checkPaused(ctx); err != nil {
		return nil, err
	}

	unlock := s.locker.Lock(marketLockKey(assetID), userLockKey(userID))
	defer unlock()

	market, err := s.mustGetMarket(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if !market.Active {
		return nil, core.ErrAssetNotActive
	}

	now := time.Now()
	traceID := foxuuid.New()
	var transaction *core.Transaction

	if err := s.db.Tx(func(tx *db.DB) error {
		ledger.Accrue(market, now)

		ok, err := s.accountService.CanBorrow(ctx, userID, market, amount, now)
		if err != nil {
			return err
		}
		if !ok {
			return core.ErrInsufficientCollateral
		}

		position, err := s.positionStore.Find(ctx, userID, assetID)
		if err != nil {
			return err
		}
		ledger.ReconcileBorrow(position, market)

		position.BorrowedAmount = position.BorrowedAmount.Add(amount)
		market.TotalBorrowed = market.TotalBorrowed.Add(amount)

		if err := s.savePosition(ctx, tx, position); err != nil {
			return err
		}
		if err := s.marketStore.Update(ctx, tx, market); err != nil {
			return err
		}
		if err := s.userStore.Touch(ctx, tx, userID, assetID); err != nil {
			return err
		}

		if err := s.walletService.Push(ctx, tx, assetID, userID, amount, foxuuid.Modify(traceID, "push")); err != nil {
			return err
		}

		extra := core.NewTransactionExtra()
		extra.Put("borrow_index", market.BorrowIndex)
		extra.Put("borrowed_amount", position.BorrowedAmount)
		transaction = core.BuildTransaction(traceID, core.ActionBorrow, userID, assetID, amount, extra)
		return s.transactionStore.Create(ctx, tx, transaction)
	}); err != nil {
		log.WithError(err).Errorln("borrow aborted")
		return nil, err
	}

	log.Infoln("borrowed", amount)
	return transaction, nil
}

func (s *service) Repay(ctx context.Context, userID, assetID string, amount decimal.Decimal) (*core.Transaction, error) {
	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"action": core.ActionRepay,
		"user":   userID,
		"asset":  assetID,
	})

	if !amount.IsPositive() {
		return nil, core.ErrInvalidAmount
	}

	if err := s.checkPaused(ctx); err != nil {
		return nil, err
	}

	unlock := s.locker.Lock(marketLockKey(assetID), userLockKey(userID))
	defer unlock()

	market, err := s.mustGetMarket(ctx, assetID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	traceID := foxuuid.New()
	var transaction *core.Transaction

	if err := s.db.Tx(func(tx *db.DB) error {
		ledger.Accrue(market, now)

		position, err := s.positionStore.Find(ctx, userID, assetID)
		if err != nil {
			return err
		}
		ledger.ReconcileBorrow(position, market)

		if !position.BorrowedAmount.IsPositive() {
			return core.ErrNoDebt
		}

		// never pull more than the outstanding debt
		actual := number.Min(amount, position.BorrowedAmount)

		if err := s.walletService.Pull(ctx, tx, assetID, userID, actual, foxuuid.Modify(traceID, "pull")); err != nil {
			return err
		}

		position.BorrowedAmount = position.BorrowedAmount.Sub(actual)
		market.TotalBorrowed = ledger.SubClamped(market.TotalBorrowed, actual)

		if err := s.savePosition(ctx, tx, position); err != nil {
			return err
		}
		if err := s.marketStore.Update(ctx, tx, market); err != nil {
			return err
		}

		extra := core.NewTransactionExtra()
		extra.Put("borrow_index", market.BorrowIndex)
		extra.Put("borrowed_amount", position.BorrowedAmount)
		extra.Put("requested_amount", amount)
		transaction = core.BuildTransaction(traceID, core.ActionRepay, userID, assetID, actual, extra)
		return s.transactionStore.Create(ctx, tx, transaction)
	}); err != nil {
		log.WithError(err).Errorln("repay aborted")
		return nil, err
	}

	log.Infoln("repaid", amount)
	return transaction, nil
}
