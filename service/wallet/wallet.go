package wallet

import (
	"context"

	"lever/core"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	foxuuid "github.com/fox-one/pkg/uuid"
	"github.com/shopspring/decimal"
)

type walletService struct {
	db          *db.DB
	walletStore core.IWalletStore
}

// New new wallet service
func New(db *db.DB, walletStore core.IWalletStore) core.IWalletService {
	return &walletService{
		db:          db,
		walletStore: walletStore,
	}
}

func (s *walletService) Pull(ctx context.Context, tx *db.DB, assetID, userID string, amount decimal.Decimal, traceID string) error {
	if !amount.IsPositive() {
		return core.ErrInvalidAmount
	}

	balance, err := s.walletStore.FindBalance(ctx, userID, assetID)
	if err != nil {
		return err
	}

	if balance.Balance.LessThan(amount) {
		return core.ErrTransferFailed
	}

	balance.Balance = balance.Balance.Sub(amount)
	if err := s.walletStore.SaveBalance(ctx, tx, balance); err != nil {
		return err
	}

	return s.walletStore.CreateTransfer(ctx, tx, &core.Transfer{
		TraceID:   traceID,
		UserID:    userID,
		AssetID:   assetID,
		Direction: core.TransferDirectionPull,
		Amount:    amount,
	})
}

func (s *walletService) Push(ctx context.Context, tx *db.DB, assetID, userID string, amount decimal.Decimal, traceID string) error {
	if !amount.IsPositive() {
		return core.ErrInvalidAmount
	}

	balance, err := s.walletStore.FindBalance(ctx, userID, assetID)
	if err != nil {
		return err
	}

	balance.Balance = balance.Balance.Add(amount)
	if err := s.walletStore.SaveBalance(ctx, tx, balance); err != nil {
		return err
	}

	return s.walletStore.CreateTransfer(ctx, tx, &core.Transfer{
		TraceID:   traceID,
		UserID:    userID,
		AssetID:   assetID,
		Direction: core.TransferDirectionPush,
		Amount:    amount,
	})
}

func (s *walletService) Deposit(ctx context.Context, userID, assetID string, amount decimal.Decimal) error {
	log := logger.FromContext(ctx).WithField("service", "wallet")

	if !amount.IsPositive() {
		return core.ErrInvalidAmount
	}

	if err := s.db.Tx(func(tx *db.DB) error {
		balance, err := s.walletStore.FindBalance(ctx, userID, assetID)
		if err != nil {
			return err
		}

		balance.Balance = balance.Balance.Add(amount)
		if err := s.walletStore.SaveBalance(ctx, tx, balance); err != nil {
			return err
		}

		return s.walletStore.CreateTransfer(ctx, tx, &core.Transfer{
			TraceID:   foxuuid.New(),
			UserID:    userID,
			AssetID:   assetID,
			Direction: core.TransferDirectionPush,
			Amount:    amount,
		})
	}); err != nil {
		return err
	}

	log.Infoln("deposited", amount, assetID, "for", userID)
	return nil
}
