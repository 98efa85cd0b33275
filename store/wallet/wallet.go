package wallet

import (
	"context"

	"lever/core"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
)

type walletStore struct {
	db *db.DB
}

// New new wallet store
func New(db *db.DB) core.IWalletStore {
	return &walletStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		if err := db.Update().Model(core.WalletBalance{}).AutoMigrate(core.WalletBalance{}).Error; err != nil {
			return err
		}
		if err := db.Update().Model(core.Transfer{}).AutoMigrate(core.Transfer{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *walletStore) FindBalance(ctx context.Context, userID, assetID string) (*core.WalletBalance, error) {
	var balance core.WalletBalance
	err := s.db.View().Where("user_id=? and asset_id=?", userID, assetID).First(&balance).Error
	if store.IsErrNotFound(err) {
		return &core.WalletBalance{UserID: userID, AssetID: assetID}, nil
	}
	if err != nil {
		return nil, err
	}

	return &balance, nil
}

func (s *walletStore) SaveBalance(ctx context.Context, tx *db.DB, balance *core.WalletBalance) error {
	if balance.ID == 0 {
		return tx.Update().Create(balance).Error
	}

	version := balance.Version
	balance.Version++

	updated := tx.Update().Model(core.WalletBalance{}).
		Where("user_id=? and asset_id=? and version=?", balance.UserID, balance.AssetID, version).
		Updates(map[string]interface{}{
			"balance": balance.Balance,
			"version": balance.Version,
		})
	if updated.Error != nil {
		return updated.Error
	}
	if updated.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	return nil
}

func (s *walletStore) CreateTransfer(ctx context.Context, tx *db.DB, transfer *core.Transfer) error {
	return tx.Update().Create(transfer).Error
}

func (s *walletStore) ListTransfers(ctx context.Context, userID string, limit int) ([]*core.Transfer, error) {
	var transfers []*core.Transfer
	if err := s.db.View().Where("user_id=?", userID).Order("id desc").Limit(limit).Find(&transfers).Error; err != nil {
		return nil, err
	}
	return transfers, nil
}
