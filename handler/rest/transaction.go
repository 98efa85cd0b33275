package rest

import (
	"errors"
	"net/http"

	"lever/core"
	"lever/handler/param"
	"lever/handler/render"

	"github.com/go-chi/chi"
	"github.com/spf13/cast"
)

var errTransactionNotFound = errors.New("transaction not found")

// response a single audit row looked up by its trace id
func transactionHandler(transactionStr core.ITransactionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		traceID := chi.URLParam(r, "trace")
		transaction, err := transactionStr.FindByTraceID(ctx, traceID)
		if err != nil {
			render.BadRequest(w, err)
			return
		}
		if transaction.ID == 0 {
			render.NotFoundRequest(w, errTransactionNotFound)
			return
		}

		render.JSON(w, transaction)
	}
}

// response ledger transactions, newest batch from the requested offset
func transactionsHandler(transactionStr core.ITransactionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			User  string `json:"user"`
			From  string `json:"from"`
			Limit string `json:"limit"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		from := cast.ToUint64(params.From)
		limit := cast.ToInt(params.Limit)
		if limit <= 0 || limit > 500 {
			limit = 500
		}

		var (
			transactions []*core.Transaction
			err          error
		)
		if params.User != "" {
			transactions, err = transactionStr.ListByUser(ctx, params.User, from, limit)
		} else {
			transactions, err = transactionStr.List(ctx, from, limit)
		}
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, transactions)
	}
}
