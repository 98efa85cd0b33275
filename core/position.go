package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Position per (user, asset) supplied/borrowed principal with the index
// snapshot taken at last touch. Never deleted; a fully withdrawn or fully
// repaid position keeps tracking with zero principal.
type Position struct {
	ID      uint64 `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	UserID  string `sql:"size:36;unique_index:position_idx" json:"user_id"`
	AssetID string `sql:"size:36;unique_index:position_idx" json:"asset_id"`
	// SuppliedAmount principal as of the last snapshot, excluding interest accrued since
	SuppliedAmount decimal.Decimal `sql:"type:decimal(32,16)" json:"supplied_amount"`
	BorrowedAmount decimal.Decimal `sql:"type:decimal(32,16)" json:"borrowed_amount"`
	// SupplyIndexSnapshot market supply index at the moment the supply side was last touched
	SupplyIndexSnapshot decimal.Decimal `sql:"type:decimal(32,16)" json:"supply_index_snapshot"`
	BorrowIndexSnapshot decimal.Decimal `sql:"type:decimal(32,16)" json:"borrow_index_snapshot"`
	IsCollateral        bool            `sql:"default:0" json:"is_collateral"`
	Version             int64           `sql:"default:0" json:"version"`
	CreatedAt           time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt           time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// IPositionStore position store interface
type IPositionStore interface {
	// Find returns the stored position, or a zero-valued one (ID == 0) if absent
	Find(ctx context.Context, userID, assetID string) (*Position, error)
	FindByUser(ctx context.Context, userID string) ([]*Position, error)
	Create(ctx context.Context, tx *db.DB, position *Position) error
	Update(ctx context.Context, tx *db.DB, position *Position) error
}
