package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"gtfunds/internal/app"
	"gtfunds/internal/domain"
	"gtfunds/internal/ports"
)

// InvestorHandler exposes investor endpoints including the per-investor
// investment collection.
type InvestorHandler struct {
	investors *app.InvestorService
	logger    ports.Logger
}

// NewInvestorHandler creates the investor HTTP handler.
func NewInvestorHandler(investors *app.InvestorService, logger ports.Logger) *InvestorHandler {
	return &InvestorHandler{investors: investors, logger: logger}
}

// RegisterRoutes mounts the investor routes.
func (h *InvestorHandler) RegisterRoutes(r chi.Router) {
	r.Route("/investors", func(r chi.Router) {
		r.Post("/", h.create)
		r.Get("/", h.list)
		r.Get("/{id}", h.get)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)

		r.Post("/{id}/investments", h.addInvestment)
		r.Get("/{id}/investments", h.listInvestments)
	})
}

func (h *InvestorHandler) create(w http.ResponseWriter, r *http.Request) {
	var investor domain.Investor
	if !decodeBody(w, r, &investor) {
		return
	}
	created, err := h.investors.Create(r.Context(), &investor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *InvestorHandler) list(w http.ResponseWriter, r *http.Request) {
	investors, err := h.investors.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if investors == nil {
		investors = []*domain.Investor{}
	}
	writeJSON(w, http.StatusOK, investors)
}

func (h *InvestorHandler) get(w http.ResponseWriter, r *http.Request) {
	investor, err := h.investors.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, investor)
}

func (h *InvestorHandler) update(w http.ResponseWriter, r *http.Request) {
	var upd ports.InvestorUpdate
	if !decodeBody(w, r, &upd) {
		return
	}
	updated, err := h.investors.Update(r.Context(), chi.URLParam(r, "id"), upd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *InvestorHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.investors.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Inversor eliminado"})
}

func (h *InvestorHandler) addInvestment(w http.ResponseWriter, r *http.Request) {
	var inv domain.Investment
	if !decodeBody(w, r, &inv) {
		return
	}
	investor, err := h.investors.AddInvestment(r.Context(), chi.URLParam(r, "id"), inv)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, investor)
}

func (h *InvestorHandler) listInvestments(w http.ResponseWriter, r *http.Request) {
	details, err := h.investors.ListInvestments(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, details)
}
