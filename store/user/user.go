package user

import (
	"context"

	"lever/core"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
)

type userStore struct {
	db *db.DB
}

// New new user store
func New(db *db.DB) core.IUserStore {
	return &userStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.User{})
		if err := tx.AutoMigrate(core.User{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *userStore) Find(ctx context.Context, userID string) (*core.User, error) {
	var user core.User
	err := s.db.View().Where("user_id=?", userID).First(&user).Error
	if store.IsErrNotFound(err) {
		return &core.User{UserID: userID}, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (s *userStore) Save(ctx context.Context, tx *db.DB, user *core.User) error {
	if user.ID == 0 {
		return tx.Update().Create(user).Error
	}

	version := user.Version
	user.Version++

	updated := tx.Update().Model(core.User{}).
		Where("user_id=? and version=?", user.UserID, version).
		Updates(map[string]interface{}{
			"touched_assets": user.TouchedAssets,
			"version":        user.Version,
		})
	if updated.Error != nil {
		return updated.Error
	}
	if updated.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	return nil
}

func (s *userStore) Touch(ctx context.Context, tx *db.DB, userID, assetID string) error {
	var user core.User
	err := tx.Update().Where("user_id=?", userID).First(&user).Error
	if store.IsErrNotFound(err) {
		user = core.User{UserID: userID}
		err = nil
	}
	if err != nil {
		return err
	}

	if user.Touched(assetID) {
		return nil
	}

	user.TouchedAssets = append(user.TouchedAssets, assetID)
	return s.Save(ctx, tx, &user)
}

func (s *userStore) List(ctx context.Context, fromID uint64, limit int) ([]*core.User, error) {
	var users []*core.User
	if err := s.db.View().Where("id > ?", fromID).Limit(limit).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
