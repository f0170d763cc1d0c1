package api

import (
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/erazemk/stockroom/internal/ledger"
	"github.com/erazemk/stockroom/internal/model"
)

// LoansHandler handles checkout and return.
type LoansHandler struct {
	DB *sql.DB
}

type returnRequest struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// List handles GET /api/loans, the active loans.
func (h *LoansHandler) List(w http.ResponseWriter, r *http.Request) {
	loans, err := ledger.ActiveLoans(r.Context(), h.DB)
	if err != nil {
		errorResponse(w, r, err)
		return
	}
	if loans == nil {
		loans = []model.Transaction{}
	}
	jsonResponse(w, http.StatusOK, loans)
}

// Checkout handles POST /api/loans. The borrower defaults to the caller.
func (h *LoansHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req ledger.CheckoutRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	claims := GetClaims(r.Context())
	if strings.TrimSpace(req.UserName) == "" {
		req.UserName = claims.Username
	}

	loan, err := ledger.Checkout(r.Context(), h.DB, req)
	if err != nil {
		if errors.Is(err, model.ErrInsufficientStock) {
			slog.Warn("checkout refused", "item_id", req.ItemID, "quantity", req.Quantity, "by", claims.Username)
		}
		errorResponse(w, r, err)
		return
	}

	slog.Info("item checked out",
		"item", loan.ItemSKU, "quantity", loan.Quantity,
		"user_name", loan.UserName, "project", loan.ProjectName, "by", claims.Username)
	jsonResponse(w, http.StatusCreated, loan)
}

// Return handles POST /api/loans/{id}/return. The body is optional; item_id
// and quantity, when given, must match the loan.
func (h *LoansHandler) Return(w http.ResponseWriter, r *http.Request) {
	var req returnRequest
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	loan, err := ledger.Return(r.Context(), h.DB, ledger.ReturnRequest{
		LoanID:   r.PathValue("id"),
		ItemID:   req.ItemID,
		Quantity: req.Quantity,
	})
	if err != nil {
		errorResponse(w, r, err)
		return
	}

	slog.Info("item returned",
		"item", loan.ItemSKU, "quantity", loan.Quantity, "loan", loan.ID,
		"by", GetClaims(r.Context()).Username)
	jsonResponse(w, http.StatusOK, loan)
}
