package rest

import (
	"net/http"

	"lever/core"
	"lever/handler/param"
	"lever/handler/render"

	"github.com/go-chi/chi"
	"github.com/shopspring/decimal"
)

// response the most recent oracle price row for the asset
func latestPriceHandler(priceStr core.IPriceStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		assetID := chi.URLParam(r, "asset")
		price, err := priceStr.Latest(ctx, assetID)
		if err != nil {
			render.BadRequest(w, err)
			return
		}
		if price.ID == 0 {
			render.HandleError(w, core.ErrMarketNotFound)
			return
		}

		render.JSON(w, price)
	}
}

func setPriceHandler(config *core.Config, priceSrv core.IPriceOracleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			UserID  string          `json:"user_id"`
			AssetID string          `json:"asset_id"`
			Price   decimal.Decimal `json:"price"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		if !config.IsAdmin(params.UserID) {
			render.HandleError(w, core.ErrOperationForbidden)
			return
		}

		if err := priceSrv.SetPrice(r.Context(), params.AssetID, params.Price, params.UserID); err != nil {
			render.HandleError(w, err)
			return
		}

		render.JSON(w, render.H{"asset_id": params.AssetID, "price": params.Price})
	}
}
