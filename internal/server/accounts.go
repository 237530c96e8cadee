package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"gtfunds/internal/app"
	"gtfunds/internal/ports"
)

// AccountHandler exposes the flat trading-account endpoints. Creation and
// per-KYC listing live under /kycs; see KycHandler.
type AccountHandler struct {
	accounts *app.AccountService
	logger   ports.Logger
}

// NewAccountHandler creates the trading-account HTTP handler.
func NewAccountHandler(accounts *app.AccountService, logger ports.Logger) *AccountHandler {
	return &AccountHandler{accounts: accounts, logger: logger}
}

// RegisterRoutes mounts the account routes.
func (h *AccountHandler) RegisterRoutes(r chi.Router) {
	r.Route("/accounts", func(r chi.Router) {
		r.Get("/audit/account-numbers", h.auditAccountNumbers)
		r.Get("/{id}", h.get)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})
}

func (h *AccountHandler) get(w http.ResponseWriter, r *http.Request) {
	account, err := h.accounts.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

func (h *AccountHandler) update(w http.ResponseWriter, r *http.Request) {
	var upd ports.TradingAccountUpdate
	if !decodeBody(w, r, &upd) {
		return
	}
	updated, err := h.accounts.Update(r.Context(), chi.URLParam(r, "id"), upd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *AccountHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.accounts.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Cuenta eliminada"})
}

func (h *AccountHandler) auditAccountNumbers(w http.ResponseWriter, r *http.Request) {
	report, err := h.accounts.AuditAccountNumbers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"total":    len(report),
		"accounts": report,
	})
}
