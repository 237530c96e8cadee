package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"gtfunds/internal/app"
	"gtfunds/internal/ports"
)

// PayoutHandler exposes the flat payout endpoints. Creation and per-KYC
// listing live under /kycs; see KycHandler.
type PayoutHandler struct {
	payouts *app.PayoutService
	logger  ports.Logger
}

// NewPayoutHandler creates the payout HTTP handler.
func NewPayoutHandler(payouts *app.PayoutService, logger ports.Logger) *PayoutHandler {
	return &PayoutHandler{payouts: payouts, logger: logger}
}

// RegisterRoutes mounts the payout routes.
func (h *PayoutHandler) RegisterRoutes(r chi.Router) {
	r.Route("/payouts", func(r chi.Router) {
		r.Get("/{id}", h.get)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})
}

func (h *PayoutHandler) get(w http.ResponseWriter, r *http.Request) {
	payout, err := h.payouts.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payout)
}

func (h *PayoutHandler) update(w http.ResponseWriter, r *http.Request) {
	var upd ports.PayoutUpdate
	if !decodeBody(w, r, &upd) {
		return
	}
	updated, err := h.payouts.Update(r.Context(), chi.URLParam(r, "id"), upd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *PayoutHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.payouts.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Payout eliminado"})
}
