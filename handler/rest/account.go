package rest

import (
	"net/http"
	"time"

	"lever/core"
	"lever/handler/render"
	"lever/handler/views"
	"lever/internal/ledger"

	"github.com/go-chi/chi"
)

func accountHandler(marketStr core.IMarketStore, positionStr core.IPositionStore, accountSrv core.IAccountService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		userID := chi.URLParam(r, "user")
		now := time.Now()

		liquidity, err := accountSrv.EvaluateAccount(ctx, userID, now)
		if err != nil {
			render.HandleError(w, err)
			return
		}

		positions, err := positionStr.FindByUser(ctx, userID)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		markets, err := marketStr.AllAsMap(ctx)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		positionViews := make([]*views.Position, 0, len(positions))
		for _, p := range positions {
			view := &views.Position{Position: *p}
			if market, ok := markets[p.AssetID]; ok {
				supplyIndex, borrowIndex := ledger.ProjectIndexes(market, now)
				view.SupplyBalance = ledger.SupplyBalance(p, supplyIndex)
				view.BorrowBalance = ledger.BorrowBalance(p, borrowIndex)
			}
			positionViews = append(positionViews, view)
		}

		render.JSON(w, &views.Account{
			Liquidity: liquidity,
			Positions: positionViews,
		})
	}
}
