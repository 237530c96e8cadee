package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"gtfunds/internal/app"
	"gtfunds/internal/domain"
	"gtfunds/internal/ports"
)

// TiroHandler exposes paired-trade endpoints.
type TiroHandler struct {
	tiros  *app.TiroService
	logger ports.Logger
}

// NewTiroHandler creates the tiro HTTP handler.
func NewTiroHandler(tiros *app.TiroService, logger ports.Logger) *TiroHandler {
	return &TiroHandler{tiros: tiros, logger: logger}
}

// RegisterRoutes mounts the tiro routes.
func (h *TiroHandler) RegisterRoutes(r chi.Router) {
	r.Route("/tiros", func(r chi.Router) {
		r.Post("/", h.create)
		r.Get("/", h.list)
		r.Get("/{id}", h.get)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})
}

func (h *TiroHandler) create(w http.ResponseWriter, r *http.Request) {
	var tiro domain.Tiro
	if !decodeBody(w, r, &tiro) {
		return
	}
	created, err := h.tiros.Create(r.Context(), &tiro)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *TiroHandler) list(w http.ResponseWriter, r *http.Request) {
	var (
		tiros []*domain.Tiro
		err   error
	)
	if cycleID := r.URL.Query().Get("cycleId"); cycleID != "" {
		tiros, err = h.tiros.ListByCycle(r.Context(), cycleID)
	} else {
		tiros, err = h.tiros.ListAll(r.Context())
	}
	if err != nil {
		writeError(w, err)
		return
	}
	if tiros == nil {
		tiros = []*domain.Tiro{}
	}
	writeJSON(w, http.StatusOK, tiros)
}

func (h *TiroHandler) get(w http.ResponseWriter, r *http.Request) {
	tiro, err := h.tiros.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tiro)
}

func (h *TiroHandler) update(w http.ResponseWriter, r *http.Request) {
	var upd ports.TiroUpdate
	if !decodeBody(w, r, &upd) {
		return
	}
	updated, err := h.tiros.Update(r.Context(), chi.URLParam(r, "id"), upd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *TiroHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.tiros.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Tiro eliminado"})
}
