package rest

import (
	"net/http"

	"lever/core"
	"lever/handler/param"
	"lever/handler/render"

	"github.com/shopspring/decimal"
)

type ledgerParams struct {
	UserID  string          `json:"user_id"`
	AssetID string          `json:"asset_id"`
	Amount  decimal.Decimal `json:"amount"`
}

func supplyHandler(ledgerSrv core.ILedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params ledgerParams
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		transaction, err := ledgerSrv.Supply(r.Context(), params.UserID, params.AssetID, params.Amount)
		if err != nil {
			render.HandleError(w, err)
			return
		}

		render.JSON(w, transaction)
	}
}

func withdrawHandler(ledgerSrv core.ILedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params ledgerParams
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		transaction, err := ledgerSrv.Withdraw(r.Context(), params.UserID, params.AssetID, params.Amount)
		if err != nil {
			render.HandleError(w, err)
			return
		}

		render.JSON(w, transaction)
	}
}

func borrowHandler(ledgerSrv core.ILedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params ledgerParams
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		transaction, err := ledgerSrv.Borrow(r.Context(), params.UserID, params.AssetID, params.Amount)
		if err != nil {
			render.HandleError(w, err)
			return
		}

		render.JSON(w, transaction)
	}
}

func repayHandler(ledgerSrv core.ILedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params ledgerParams
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		transaction, err := ledgerSrv.Repay(r.Context(), params.UserID, params.AssetID, params.Amount)
		if err != nil {
			render.HandleError(w, err)
			return
		}

		render.JSON(w, transaction)
	}
}

func setCollateralHandler(ledgerSrv core.ILedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			UserID  string `json:"user_id"`
			AssetID string `json:"asset_id"`
			Enabled bool   `json:"enabled"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		transaction, err := ledgerSrv.SetCollateral(r.Context(), params.UserID, params.AssetID, params.Enabled)
		if err != nil {
			render.HandleError(w, err)
			return
		}

		render.JSON(w, transaction)
	}
}

func liquidateHandler(ledgerSrv core.ILedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			LiquidatorID      string          `json:"liquidator_id"`
			BorrowerID        string          `json:"borrower_id"`
			BorrowAssetID     string          `json:"borrow_asset_id"`
			CollateralAssetID string          `json:"collateral_asset_id"`
			RepayAmount       decimal.Decimal `json:"repay_amount"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		transaction, err := ledgerSrv.Liquidate(
			r.Context(),
			params.LiquidatorID,
			params.BorrowerID,
			params.BorrowAssetID,
			params.CollateralAssetID,
			params.RepayAmount,
		)
		if err != nil {
			render.HandleError(w, err)
			return
		}

		render.JSON(w, transaction)
	}
}
