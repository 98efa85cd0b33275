package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Price oracle price record, one row per administrative update
type Price struct {
	ID        uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	AssetID   string          `sql:"size:36;index:price_asset_idx" json:"asset_id"`
	Price     decimal.Decimal `sql:"type:decimal(32,16)" json:"price"`
	UpdatedBy string          `sql:"size:36" json:"updated_by,omitempty"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// PriceTicker external feed payload
type PriceTicker struct {
	AssetID string          `json:"asset_id"`
	Symbol  string          `json:"symbol"`
	Price   decimal.Decimal `json:"price"`
}

// IPriceStore price history store interface
type IPriceStore interface {
	Create(ctx context.Context, tx *db.DB, price *Price) error
	Latest(ctx context.Context, assetID string) (*Price, error)
}

// IPriceOracleService price oracle interface, read-only to the ledger core
type IPriceOracleService interface {
	// GetUnderlyingPrice current price of the market's asset
	GetUnderlyingPrice(ctx context.Context, market *Market) (decimal.Decimal, error)
	// SetPrice administrative price update
	SetPrice(ctx context.Context, assetID string, price decimal.Decimal, updatedBy string) error
	// PullPriceTicker fetches one ticker from the external feed endpoint
	PullPriceTicker(ctx context.Context, assetID string, t time.Time) (*PriceTicker, error)
}
