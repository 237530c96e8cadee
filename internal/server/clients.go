package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"gtfunds/internal/app"
	"gtfunds/internal/domain"
	"gtfunds/internal/ports"
)

// ClientHandler exposes the legacy client endpoints.
type ClientHandler struct {
	clients *app.ClientService
	logger  ports.Logger
}

// NewClientHandler creates the legacy-client HTTP handler.
func NewClientHandler(clients *app.ClientService, logger ports.Logger) *ClientHandler {
	return &ClientHandler{clients: clients, logger: logger}
}

// RegisterRoutes mounts the client routes.
func (h *ClientHandler) RegisterRoutes(r chi.Router) {
	r.Route("/clients", func(r chi.Router) {
		r.Post("/", h.create)
		r.Get("/", h.list)
	})
}

func (h *ClientHandler) create(w http.ResponseWriter, r *http.Request) {
	var client domain.Client
	if !decodeBody(w, r, &client) {
		return
	}
	created, err := h.clients.Create(r.Context(), &client)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *ClientHandler) list(w http.ResponseWriter, r *http.Request) {
	clients, err := h.clients.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if clients == nil {
		clients = []*domain.Client{}
	}
	writeJSON(w, http.StatusOK, clients)
}
