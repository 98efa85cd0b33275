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

func (s *service) Liquidate(ctx context.Context, liquidatorID, borrowerID, borrowAssetID, collateralAssetID string, repayAmount decimal.Decimal) (*core.Transaction, error) {
	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"action":     core.ActionLiquidate,
		"liquidator": liquidatorID,
		"borrower":   borrowerID,
	})

	if liquidatorID == borrowerID {
		return nil, core.ErrSelfLiquidationDisallowed
	}

	if !repayAmount.IsPositive() {
		return nil, core.ErrInvalidAmount
	}

	if err := s.checkPaused(ctx); err != nil {
		return nil, err
	}

	unlock := s.locker.Lock(
		marketLockKey(borrowAssetID),
		marketLockKey(collateralAssetID),
		userLockKey(liquidatorID),
		userLockKey(borrowerID),
	)
	defer unlock()

	borrowMarket, err := s.mustGetMarket(ctx, borrowAssetID)
	if err != nil {
		return nil, err
	}

	collateralMarket := borrowMarket
	if collateralAssetID != borrowAssetID {
		collateralMarket, err = s.mustGetMarket(ctx, collateralAssetID)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now()
	traceID := foxuuid.New()
	var transaction *core.Transaction

	if err := s.db.Tx(func(tx *db.DB) error {
		ledger.Accrue(borrowMarket, now)
		if collateralMarket != borrowMarket {
			ledger.Accrue(collateralMarket, now)
		}

		liquidity, err := s.accountService.EvaluateAccount(ctx, borrowerID, now)
		if err != nil {
			return err
		}
		if !liquidity.Liquidatable {
			return core.ErrNotLiquidatable
		}

		debtPosition, err := s.positionStore.Find(ctx, borrowerID, borrowAssetID)
		if err != nil {
			return err
		}
		ledger.ReconcileBorrow(debtPosition, borrowMarket)

		if !debtPosition.BorrowedAmount.IsPositive() {
			return core.ErrNoDebt
		}

		collateralPosition := debtPosition
		if collateralAssetID != borrowAssetID {
			collateralPosition, err = s.positionStore.Find(ctx, borrowerID, collateralAssetID)
			if err != nil {
				return err
			}
		}
		ledger.ReconcileSupply(collateralPosition, collateralMarket)

		if !collateralPosition.IsCollateral || !collateralPosition.SuppliedAmount.IsPositive() {
			return core.ErrNoCollateral
		}

		// the close factor silently caps the repay, it never rejects
		actualRepay := number.Min(repayAmount, ledger.MaxRepay(debtPosition.BorrowedAmount))

		borrowPrice, err := s.priceService.GetUnderlyingPrice(ctx, borrowMarket)
		if err != nil {
			return err
		}
		collateralPrice, err := s.priceService.GetUnderlyingPrice(ctx, collateralMarket)
		if err != nil {
			return err
		}

		seize := ledger.SeizeAmount(actualRepay, borrowPrice, collateralPrice)
		if seize.GreaterThan(collateralPosition.SuppliedAmount) {
			return core.ErrSeizeExceedsCollateral
		}

		if err := s.walletService.Pull(ctx, tx, borrowAssetID, liquidatorID, actualRepay, foxuuid.Modify(traceID, "pull")); err != nil {
			return err
		}

		debtPosition.BorrowedAmount = debtPosition.BorrowedAmount.Sub(actualRepay)
		borrowMarket.TotalBorrowed = ledger.SubClamped(borrowMarket.TotalBorrowed, actualRepay)

		collateralPosition.SuppliedAmount = collateralPosition.SuppliedAmount.Sub(seize)
		collateralMarket.TotalSupplied = ledger.SubClamped(collateralMarket.TotalSupplied, seize)

		if err := s.savePosition(ctx, tx, debtPosition); err != nil {
			return err
		}
		if collateralPosition != debtPosition {
			if err := s.savePosition(ctx, tx, collateralPosition); err != nil {
				return err
			}
		}

		if err := s.marketStore.Update(ctx, tx, borrowMarket); err != nil {
			return err
		}
		if collateralMarket != borrowMarket {
			if err := s.marketStore.Update(ctx, tx, collateralMarket); err != nil {
				return err
			}
		}

		if err := s.walletService.Push(ctx, tx, collateralAssetID, liquidatorID, seize, foxuuid.Modify(traceID, "push")); err != nil {
			return err
		}

		extra := core.NewTransactionExtra()
		extra.Put("borrower", borrowerID)
		extra.Put("borrow_asset_id", borrowAssetID)
		extra.Put("collateral_asset_id", collateralAssetID)
		extra.Put("repaid_amount", actualRepay)
		extra.Put("seized_amount", seize)
		extra.Put("borrow_price", borrowPrice)
		extra.Put("collateral_price", collateralPrice)
		extra.Put("health_factor", liquidity.HealthFactor)
		transaction = core.BuildTransaction(traceID, core.ActionLiquidate, liquidatorID, borrowAssetID, actualRepay, extra)
		return s.transactionStore.Create(ctx, tx, transaction)
	}); err != nil {
		log.WithError(err).Errorln("liquidation aborted")
		return nil, err
	}

	log.Infoln("liquidated", borrowerID)
	return transaction, nil
}
