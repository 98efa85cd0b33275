package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Market per-asset market record
type Market struct {
	ID      uint64 `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	AssetID string `sql:"size:36;unique_index:asset_idx" json:"asset_id"`
	Symbol  string `sql:"size:20;unique_index:symbol_idx" json:"symbol"`
	// Active gating flag; once set, never cleared by the ledger core
	Active bool `sql:"default:0" json:"active"`
	// TotalSupplied aggregate principal-equivalent supplied amount
	TotalSupplied decimal.Decimal `sql:"type:decimal(32,16)" json:"total_supplied"`
	// TotalBorrowed aggregate principal-equivalent borrowed amount
	TotalBorrowed decimal.Decimal `sql:"type:decimal(32,16)" json:"total_borrowed"`
	// SupplyRatePerSecond derived once at registration as annual rate / seconds per year
	SupplyRatePerSecond decimal.Decimal `sql:"type:decimal(32,20)" json:"supply_rate_per_second"`
	BorrowRatePerSecond decimal.Decimal `sql:"type:decimal(32,20)" json:"borrow_rate_per_second"`
	// ReserveFactor fraction of interest kept by the protocol
	ReserveFactor decimal.Decimal `sql:"type:decimal(20,8)" json:"reserve_factor"`
	// CollateralFactor max fraction of collateral value usable as borrowing power
	CollateralFactor decimal.Decimal `sql:"type:decimal(20,8)" json:"collateral_factor"`
	// LiquidationThreshold fraction of collateral value beyond which the
	// position is liquidatable, always > CollateralFactor
	LiquidationThreshold decimal.Decimal `sql:"type:decimal(20,8)" json:"liquidation_threshold"`
	// Price current oracle price, admin writable, read only to the core
	Price decimal.Decimal `sql:"type:decimal(32,16)" json:"price"`
	// SupplyIndex monotonically non-decreasing accrual index, starts at 1
	SupplyIndex decimal.Decimal `sql:"type:decimal(32,16);default:1" json:"supply_index"`
	BorrowIndex decimal.Decimal `sql:"type:decimal(32,16);default:1" json:"borrow_index"`
	// LastUpdateTime time the indices were last advanced to
	LastUpdateTime time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"last_update_time"`
	Version        int64           `sql:"default:0" json:"version"`
	CreatedAt      time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// IMarketStore market store interface
type IMarketStore interface {
	Save(ctx context.Context, tx *db.DB, market *Market) error
	Find(ctx context.Context, assetID string) (*Market, error)
	FindBySymbol(ctx context.Context, symbol string) (*Market, error)
	All(ctx context.Context) ([]*Market, error)
	AllAsMap(ctx context.Context) (map[string]*Market, error)
	Update(ctx context.Context, tx *db.DB, market *Market) error
}

// IMarketService market admission and accrual interface
type IMarketService interface {
	// CreateMarket registers a new market, validating risk parameters and uniqueness
	CreateMarket(ctx context.Context, req *CreateMarketReq) (*Market, error)
	// AccrueInterest advances the market indices to t and persists the market
	AccrueInterest(ctx context.Context, market *Market, t time.Time) error
	// CurUtilizationRate current borrow utilization of the market
	CurUtilizationRate(ctx context.Context, market *Market) decimal.Decimal
	// CurSupplyAPY / CurBorrowAPY annualized rates for the views
	CurSupplyAPY(ctx context.Context, market *Market) decimal.Decimal
	CurBorrowAPY(ctx context.Context, market *Market) decimal.Decimal
}

// CreateMarketReq market registration parameters
type CreateMarketReq struct {
	AssetID              string          `json:"asset_id" valid:"uuid,required"`
	Symbol               string          `json:"symbol" valid:"alphanum,required"`
	AnnualSupplyRate     decimal.Decimal `json:"annual_supply_rate"`
	AnnualBorrowRate     decimal.Decimal `json:"annual_borrow_rate"`
	ReserveFactor        decimal.Decimal `json:"reserve_factor"`
	CollateralFactor     decimal.Decimal `json:"collateral_factor"`
	LiquidationThreshold decimal.Decimal `json:"liquidation_threshold"`
	InitialPrice         decimal.Decimal `json:"initial_price"`
}
