package price

import (
	"context"

	"lever/core"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
)

type priceStore struct {
	db *db.DB
}

// New new price store
func New(db *db.DB) core.IPriceStore {
	return &priceStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Price{})
		if err := tx.AutoMigrate(core.Price{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *priceStore) Create(ctx context.Context, tx *db.DB, price *core.Price) error {
	return tx.Update().Create(price).Error
}

func (s *priceStore) Latest(ctx context.Context, assetID string) (*core.Price, error) {
	var price core.Price
	err := s.db.View().Where("asset_id=?", assetID).Order("id desc").First(&price).Error
	if store.IsErrNotFound(err) {
		return &core.Price{AssetID: assetID}, nil
	}
	if err != nil {
		return nil, err
	}

	return &price, nil
}
