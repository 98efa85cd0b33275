package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Transfer custody journal entry. Direction is from the user's point of
// view: a pull debits the user's wallet into protocol custody, a push
// credits the user's wallet out of custody.
type Transfer struct {
	ID        uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	TraceID   string          `sql:"size:36;unique_index:transfer_trace_idx" json:"trace_id"`
	UserID    string          `sql:"size:36;index:transfer_user_idx" json:"user_id"`
	AssetID   string          `sql:"size:36" json:"asset_id"`
	Direction string          `sql:"size:8" json:"direction"`
	Amount    decimal.Decimal `sql:"type:decimal(32,16)" json:"amount"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// Transfer directions
const (
	TransferDirectionPull = "pull"
	TransferDirectionPush = "push"
)

// WalletBalance external wallet holding per (user, asset)
type WalletBalance struct {
	ID        uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	UserID    string          `sql:"size:36;unique_index:wallet_idx" json:"user_id"`
	AssetID   string          `sql:"size:36;unique_index:wallet_idx" json:"asset_id"`
	Balance   decimal.Decimal `sql:"type:decimal(32,16)" json:"balance"`
	Version   int64           `sql:"default:0" json:"version"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// IWalletStore wallet store interface
type IWalletStore interface {
	// FindBalance returns the stored balance, or a zero-valued one (ID == 0) if absent
	FindBalance(ctx context.Context, userID, assetID string) (*WalletBalance, error)
	SaveBalance(ctx context.Context, tx *db.DB, balance *WalletBalance) error
	CreateTransfer(ctx context.Context, tx *db.DB, transfer *Transfer) error
	ListTransfers(ctx context.Context, userID string, limit int) ([]*Transfer, error)
}

// IWalletService asset transfer collaborator. Both calls are all-or-nothing
// within the caller's transaction.
type IWalletService interface {
	// Pull moves amount of asset from the user's wallet into protocol custody;
	// fails if the wallet balance is insufficient
	Pull(ctx context.Context, tx *db.DB, assetID, userID string, amount decimal.Decimal, traceID string) error
	// Push moves amount of asset from protocol custody to the user's wallet
	Push(ctx context.Context, tx *db.DB, assetID, userID string, amount decimal.Decimal, traceID string) error
	// Deposit credits the user's external wallet (admin/dev funding path)
	Deposit(ctx context.Context, userID, assetID string, amount decimal.Decimal) error
}
