package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/lib/pq"
)

// User per-user touched-asset index. Position rows are the source of
// truth; TouchedAssets is a denormalized iteration index updated whenever
// a new asset is supplied or borrowed.
type User struct {
	ID            uint64         `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	UserID        string         `sql:"size:36;unique_index:user_idx" json:"user_id"`
	TouchedAssets pq.StringArray `sql:"type:varchar(2048)" json:"touched_assets,omitempty"`
	Version       int64          `sql:"default:0" json:"version"`
	CreatedAt     time.Time      `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time      `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// Touched reports whether assetID is already in the touched set
func (u *User) Touched(assetID string) bool {
	for _, asset := range u.TouchedAssets {
		if asset == assetID {
			return true
		}
	}
	return false
}

// IUserStore user store interface
type IUserStore interface {
	// Find returns the stored user, or a zero-valued one (ID == 0) if absent
	Find(ctx context.Context, userID string) (*User, error)
	Save(ctx context.Context, tx *db.DB, user *User) error
	// Touch registers assetID in the user's touched set, creating the row on first use
	Touch(ctx context.Context, tx *db.DB, userID, assetID string) error
	List(ctx context.Context, fromID uint64, limit int) ([]*User, error)
}
