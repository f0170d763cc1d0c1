package api

import (
	"database/sql"
	"net/http"

	"github.com/erazemk/stockroom/internal/model"
)

// Options configures the API router.
type Options struct {
	JWTSecret      string
	MaxUploadBytes int64
}

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, opts Options) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, JWTSecret: opts.JWTSecret}
	itemsHandler := &ItemsHandler{DB: db}
	loansHandler := &LoansHandler{DB: db}
	transactionsHandler := &TransactionsHandler{DB: db}
	importHandler := &ImportHandler{DB: db, MaxUploadBytes: opts.MaxUploadBytes}

	authMW := AuthMiddleware(opts.JWTSecret)
	requireManager := RequireRole(model.RoleManager)

	// Public: login.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	// Items: read (all roles), write (manager+).
	mux.Handle("GET /api/items", authMW(http.HandlerFunc(itemsHandler.List)))
	mux.Handle("POST /api/items", authMW(requireManager(http.HandlerFunc(itemsHandler.Create))))
	mux.Handle("GET /api/items/low-stock", authMW(http.HandlerFunc(itemsHandler.LowStock)))
	mux.Handle("GET /api/items/sku/{sku}", authMW(http.HandlerFunc(itemsHandler.GetBySKU)))
	mux.Handle("POST /api/items/delete", authMW(requireManager(http.HandlerFunc(itemsHandler.BulkDelete))))
	mux.Handle("GET /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Get)))
	mux.Handle("PUT /api/items/{id}", authMW(requireManager(http.HandlerFunc(itemsHandler.Update))))
	mux.Handle("DELETE /api/items/{id}", authMW(requireManager(http.HandlerFunc(itemsHandler.Delete))))

	// Loans (all roles).
	mux.Handle("GET /api/loans", authMW(http.HandlerFunc(loansHandler.List)))
	mux.Handle("POST /api/loans", authMW(http.HandlerFunc(loansHandler.Checkout)))
	mux.Handle("POST /api/loans/{id}/return", authMW(http.HandlerFunc(loansHandler.Return)))

	// Ledger history (all roles).
	mux.Handle("GET /api/transactions", authMW(http.HandlerFunc(transactionsHandler.List)))

	// Import: template (all roles), preview and apply (manager+).
	mux.Handle("GET /api/import/template", authMW(http.HandlerFunc(importHandler.Template)))
	mux.Handle("POST /api/import/preview", authMW(requireManager(http.HandlerFunc(importHandler.Preview))))
	mux.Handle("POST /api/import", authMW(requireManager(http.HandlerFunc(importHandler.Apply))))

	return mux
}
