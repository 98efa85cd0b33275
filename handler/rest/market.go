package rest

import (
	"context"
	"net/http"
	"strings"

	"lever/core"
	"lever/handler/param"
	"lever/handler/render"
	"lever/handler/views"

	"github.com/go-chi/chi"
)

func allMarketsHandler(marketStr core.IMarketStore, marketSrv core.IMarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		markets, err := marketStr.All(ctx)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		marketViews := make([]*views.Market, 0, len(markets))
		for _, m := range markets {
			marketViews = append(marketViews, getMarketView(ctx, m, marketSrv))
		}

		render.JSON(w, marketViews)
	}
}

func marketHandler(marketStr core.IMarketStore, marketSrv core.IMarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		symbol := strings.ToUpper(chi.URLParam(r, "symbol"))
		market, err := marketStr.FindBySymbol(ctx, symbol)
		if err != nil {
			render.BadRequest(w, err)
			return
		}
		if market.ID == 0 {
			render.HandleError(w, core.ErrMarketNotFound)
			return
		}

		render.JSON(w, getMarketView(ctx, market, marketSrv))
	}
}

func createMarketHandler(config *core.Config, marketSrv core.IMarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			UserID string `json:"user_id"`
			core.CreateMarketReq
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		if !config.IsAdmin(params.UserID) {
			render.HandleError(w, core.ErrOperationForbidden)
			return
		}

		market, err := marketSrv.CreateMarket(r.Context(), &params.CreateMarketReq)
		if err != nil {
			render.HandleError(w, err)
			return
		}

		render.JSON(w, market)
	}
}

func getMarketView(ctx context.Context, market *core.Market, marketSrv core.IMarketService) *views.Market {
	return &views.Market{
		Market:          *market,
		UtilizationRate: marketSrv.CurUtilizationRate(ctx, market),
		SupplyAPY:       marketSrv.CurSupplyAPY(ctx, market),
		BorrowAPY:       marketSrv.CurBorrowAPY(ctx, market),
	}
}
