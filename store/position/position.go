package position

import (
	"context"

	"lever/core"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
)

type positionStore struct {
	db *db.DB
}

// New new position store
func New(db *db.DB) core.IPositionStore {
	return &positionStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Position{})
		if err := tx.AutoMigrate(core.Position{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *positionStore) Find(ctx context.Context, userID, assetID string) (*core.Position, error) {
	var position core.Position
	err := s.db.View().Where("user_id=? and asset_id=?", userID, assetID).First(&position).Error
	if store.IsErrNotFound(err) {
		return &core.Position{UserID: userID, AssetID: assetID}, nil
	}
	if err != nil {
		return nil, err
	}

	return &position, nil
}

func (s *positionStore) FindByUser(ctx context.Context, userID string) ([]*core.Position, error) {
	var positions []*core.Position
	if err := s.db.View().Where("user_id=?", userID).Find(&positions).Error; err != nil {
		return nil, err
	}
	return positions, nil
}

func (s *positionStore) Create(ctx context.Context, tx *db.DB, position *core.Position) error {
	return tx.Update().Create(position).Error
}

func (s *positionStore) Update(ctx context.Context, tx *db.DB, position *core.Position) error {
	version := position.Version
	position.Version++

	// map updates so zeroed principals are persisted
	updated := tx.Update().Model(core.Position{}).
		Where("user_id=? and asset_id=? and version=?", position.UserID, position.AssetID, version).
		Updates(map[string]interface{}{
			"supplied_amount":       position.SuppliedAmount,
			"borrowed_amount":       position.BorrowedAmount,
			"supply_index_snapshot": position.SupplyIndexSnapshot,
			"borrow_index_snapshot": position.BorrowIndexSnapshot,
			"is_collateral":         position.IsCollateral,
			"version":               position.Version,
		})
	if updated.Error != nil {
		return updated.Error
	}
	if updated.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	return nil
}
