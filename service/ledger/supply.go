package ledger

import (
	"context"
	"time"

	"lever/core"
	"lever/internal/ledger"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	foxuuid "github.com/fox-one/pkg/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

func (s *service) Supply(ctx context.Context, userID, assetID string, amount decimal.Decimal) (*core.Transaction, error) {
	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"action": core.ActionSupply,
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

		position, err := s.positionStore.Find(ctx, userID, assetID)
		if err != nil {
			return err
		}
		ledger.ReconcileSupply(position, market)

		if err := s.walletService.Pull(ctx, tx, assetID, userID, amount, foxuuid.Modify(traceID, "pull")); err != nil {
			return err
		}

		position.SuppliedAmount = position.SuppliedAmount.Add(amount)
		market.TotalSupplied = market.TotalSupplied.Add(amount)

		if err := s.savePosition(ctx, tx, position); err != nil {
			return err
		}
		if err := s.marketStore.Update(ctx, tx, market); err != nil {
			return err
		}
		if err := s.userStore.Touch(ctx, tx, userID, assetID); err != nil {
			return err
		}

		extra := core.NewTransactionExtra()
		extra.Put("supply_index", market.SupplyIndex)
		extra.Put("supplied_amount", position.SuppliedAmount)
		transaction = core.BuildTransaction(traceID, core.ActionSupply, userID, assetID, amount, extra)
		return s.transactionStore.Create(ctx, tx, transaction)
	}); err != nil {
		log.WithError(err).Errorln("supply aborted")
		return nil, err
	}

	log.Infoln("supplied", amount)
	return transaction, nil
}

func (s *service) Withdraw(ctx context.Context, userID, assetID string, amount decimal.Decimal) (*core.Transaction, error) {
	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"action": core.ActionWithdraw,
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
		ledger.ReconcileSupply(position, market)

		if position.SuppliedAmount.LessThan(amount) {
			return core.ErrInsufficientBalance
		}

		// solvency is evaluated against the stored state; the projection
		// inside the evaluator lands on the same indices as the accrual above
		if position.IsCollateral {
			ok, err := s.accountService.RemainsSolventAfterWithdraw(ctx, userID, market, amount, now)
			if err != nil {
				return err
			}
			if !ok {
				return core.ErrInsufficientCollateral
			}
		}

		position.SuppliedAmount = position.SuppliedAmount.Sub(amount)
		market.TotalSupplied = ledger.SubClamped(market.TotalSupplied, amount)

		if err := s.savePosition(ctx, tx, position); err != nil {
			return err
		}
		if err := s.marketStore.Update(ctx, tx, market); err != nil {
			return err
		}

		if err := s.walletService.Push(ctx, tx, assetID, userID, amount, foxuuid.Modify(traceID, "push")); err != nil {
			return err
		}

		extra := core.NewTransactionExtra()
		extra.Put("supply_index", market.SupplyIndex)
		extra.Put("supplied_amount", position.SuppliedAmount)
		transaction = core.BuildTransaction(traceID, core.ActionWithdraw, userID, assetID, amount, extra)
		return s.transactionStore.Create(ctx, tx, transaction)
	}); err != nil {
		log.WithError(err).Errorln("withdraw aborted")
		return nil, err
	}

	log.Infoln("withdrew", amount)
	return transaction, nil
}

func (s *service) SetCollateral(ctx context.Context, userID, assetID string, enabled bool) (*core.Transaction, error) {
	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"action": core.ActionSetCollateral,
		"user":   userID,
		"asset":  assetID,
	})

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
		ledger.ReconcileSupply(position, market)

		if enabled {
			if !position.SuppliedAmount.IsPositive() {
				return core.ErrNoCollateral
			}
		} else if position.IsCollateral {
			ok, err := s.accountService.RemainsSolventWithoutCollateral(ctx, userID, market, now)
			if err != nil {
				return err
			}
			if !ok {
				return core.ErrInsufficientCollateral
			}
		}

		position.IsCollateral = enabled

		if err := s.savePosition(ctx, tx, position); err != nil {
			return err
		}
		if err := s.marketStore.Update(ctx, tx, market); err != nil {
			return err
		}
		if err := s.userStore.Touch(ctx, tx, userID, assetID); err != nil {
			return err
		}

		extra := core.NewTransactionExtra()
		extra.Put("is_collateral", enabled)
		transaction = core.BuildTransaction(traceID, core.ActionSetCollateral, userID, assetID, decimal.Zero, extra)
		return s.transactionStore.Create(ctx, tx, transaction)
	}); err != nil {
		log.WithError(err).Errorln("set collateral aborted")
		return nil, err
	}

	log.Infoln("collateral set to", enabled)
	return transaction, nil
}
