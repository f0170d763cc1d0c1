package api

import (
	"database/sql"
	"net/http"
	"strings"

	"github.com/erazemk/stockroom/internal/model"
	"github.com/erazemk/stockroom/internal/store"
)

// TransactionsHandler serves the ledger history.
type TransactionsHandler struct {
	DB *sql.DB
}

// List handles GET /api/transactions?type=&status=&item_id=.
func (h *TransactionsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := model.TransactionFilter{
		Type:   strings.ToUpper(q.Get("type")),
		Status: strings.ToUpper(q.Get("status")),
		ItemID: q.Get("item_id"),
	}

	switch filter.Type {
	case "", model.TransactionCheckout, model.TransactionReturn,
		model.TransactionAdjustment, model.TransactionRestock:
	default:
		jsonError(w, http.StatusBadRequest, "unknown transaction type")
		return
	}
	switch filter.Status {
	case "", model.StatusOpen, model.StatusClosed:
	default:
		jsonError(w, http.StatusBadRequest, "unknown status")
		return
	}

	txs, err := store.ListTransactions(r.Context(), h.DB, filter)
	if err != nil {
		errorResponse(w, r, err)
		return
	}
	if txs == nil {
		txs = []model.Transaction{}
	}
	jsonResponse(w, http.StatusOK, txs)
}
