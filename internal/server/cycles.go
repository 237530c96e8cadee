package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"gtfunds/internal/app"
	"gtfunds/internal/domain"
	"gtfunds/internal/ports"
)

// CycleHandler exposes funding-cycle endpoints plus the dashboard and
// historical statistics views.
type CycleHandler struct {
	cycles    *app.CycleService
	tiros     *app.TiroService
	dashboard *app.DashboardService
	logger    ports.Logger
}

// NewCycleHandler creates the cycle HTTP handler.
func NewCycleHandler(cycles *app.CycleService, tiros *app.TiroService, dashboard *app.DashboardService, logger ports.Logger) *CycleHandler {
	return &CycleHandler{cycles: cycles, tiros: tiros, dashboard: dashboard, logger: logger}
}

// RegisterRoutes mounts the cycle routes. The fixed statistics route is
// registered before the parameterized ones so "statistics" is never read as
// a cycle id.
func (h *CycleHandler) RegisterRoutes(r chi.Router) {
	r.Route("/cycles", func(r chi.Router) {
		r.Get("/statistics/historical", h.historicalStatistics)
		r.Post("/", h.create)
		r.Get("/", h.list)
		r.Get("/{id}", h.get)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)
		r.Get("/{id}/tiros", h.listTiros)
		r.Get("/{id}/dashboard", h.dashboardView)
	})
}

func (h *CycleHandler) create(w http.ResponseWriter, r *http.Request) {
	var cycle domain.Cycle
	if !decodeBody(w, r, &cycle) {
		return
	}
	created, err := h.cycles.Create(r.Context(), &cycle)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *CycleHandler) list(w http.ResponseWriter, r *http.Request) {
	cycles, err := h.cycles.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if cycles == nil {
		cycles = []*domain.Cycle{}
	}
	writeJSON(w, http.StatusOK, cycles)
}

func (h *CycleHandler) get(w http.ResponseWriter, r *http.Request) {
	cycle, err := h.cycles.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cycle)
}

func (h *CycleHandler) update(w http.ResponseWriter, r *http.Request) {
	var upd ports.CycleUpdate
	if !decodeBody(w, r, &upd) {
		return
	}
	updated, err := h.cycles.Update(r.Context(), chi.URLParam(r, "id"), upd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *CycleHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.cycles.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Ciclo eliminado"})
}

func (h *CycleHandler) listTiros(w http.ResponseWriter, r *http.Request) {
	tiros, err := h.tiros.ListByCycle(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if tiros == nil {
		tiros = []*domain.Tiro{}
	}
	writeJSON(w, http.StatusOK, tiros)
}

func (h *CycleHandler) dashboardView(w http.ResponseWriter, r *http.Request) {
	view, err := h.dashboard.CycleDashboard(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *CycleHandler) historicalStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboard.HistoricalStatistics(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
