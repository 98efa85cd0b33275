package core

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/jmoiron/sqlx/types"
	"github.com/shopspring/decimal"
)

// Ledger action types
const (
	ActionSupply        = "supply"
	ActionWithdraw      = "withdraw"
	ActionBorrow        = "borrow"
	ActionRepay         = "repay"
	ActionSetCollateral = "set_collateral"
	ActionLiquidate     = "liquidate"
)

// Transaction audit row appended for every accepted ledger operation
type Transaction struct {
	ID      uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	TraceID string          `sql:"size:36;unique_index:tx_trace_idx" json:"trace_id"`
	Action  string          `sql:"size:24;index:tx_action_idx" json:"action"`
	UserID  string          `sql:"size:36;index:tx_user_idx" json:"user_id"`
	AssetID string          `sql:"size:36" json:"asset_id"`
	Amount  decimal.Decimal `sql:"type:decimal(32,16)" json:"amount"`
	// Data context snapshot: indices, prices and resulting principals
	Data      types.JSONText `sql:"type:TEXT" json:"data,omitempty"`
	CreatedAt time.Time      `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TransactionExtra context snapshot payload
type TransactionExtra map[string]interface{}

// NewTransactionExtra new transaction extra
func NewTransactionExtra() TransactionExtra {
	return make(TransactionExtra)
}

// Put put value
func (e TransactionExtra) Put(key string, value interface{}) {
	e[key] = value
}

// Format marshal extra as JSONText
func (e TransactionExtra) Format() types.JSONText {
	bts, err := json.Marshal(e)
	if err != nil {
		return []byte("{}")
	}
	return bts
}

// BuildTransaction build transaction audit row
func BuildTransaction(traceID, action, userID, assetID string, amount decimal.Decimal, extra TransactionExtra) *Transaction {
	return &Transaction{
		TraceID: traceID,
		Action:  action,
		UserID:  userID,
		AssetID: assetID,
		Amount:  amount,
		Data:    extra.Format(),
	}
}

// ITransactionStore transaction store interface
type ITransactionStore interface {
	Create(ctx context.Context, tx *db.DB, transaction *Transaction) error
	FindByTraceID(ctx context.Context, traceID string) (*Transaction, error)
	List(ctx context.Context, fromID uint64, limit int) ([]*Transaction, error)
	ListByUser(ctx context.Context, userID string, fromID uint64, limit int) ([]*Transaction, error)
}
