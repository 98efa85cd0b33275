package views

import (
	"lever/core"

	"github.com/shopspring/decimal"
)

// Account account view
type Account struct {
	Liquidity *core.AccountLiquidity `json:"liquidity"`
	Positions []*Position            `json:"positions"`
}

// Position position view with balances projected to the current indices
type Position struct {
	core.Position
	SupplyBalance decimal.Decimal `json:"supply_balance"`
	BorrowBalance decimal.Decimal `json:"borrow_balance"`
}
