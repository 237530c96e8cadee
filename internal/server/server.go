package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"gtfunds/internal/app"
	"gtfunds/internal/ports"
)

// Config carries the services and settings of the HTTP server.
type Config struct {
	Tiros       *app.TiroService
	Cycles      *app.CycleService
	Accounts    *app.AccountService
	Kycs        *app.KycService
	Payouts     *app.PayoutService
	Investors   *app.InvestorService
	Clients     *app.ClientService
	Dashboard   *app.DashboardService
	Auth        *app.AuthService
	Logger      ports.Logger
	CORSOrigins []string
}

// Server holds the assembled router.
type Server struct {
	router chi.Router
	auth   *app.AuthService
	logger ports.Logger
}

// New assembles the API router: CORS, request-level middleware, the public
// routes under /api/v1 and the token-protected auth routes.
func New(cfg Config) (*Server, error) {
	s := &Server{auth: cfg.Auth, logger: cfg.Logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		NewTiroHandler(cfg.Tiros, cfg.Logger).RegisterRoutes(r)
		NewCycleHandler(cfg.Cycles, cfg.Tiros, cfg.Dashboard, cfg.Logger).RegisterRoutes(r)
		NewKycHandler(cfg.Kycs, cfg.Accounts, cfg.Payouts, cfg.Logger).RegisterRoutes(r)
		NewAccountHandler(cfg.Accounts, cfg.Logger).RegisterRoutes(r)
		NewPayoutHandler(cfg.Payouts, cfg.Logger).RegisterRoutes(r)
		NewInvestorHandler(cfg.Investors, cfg.Logger).RegisterRoutes(r)
		NewClientHandler(cfg.Clients, cfg.Logger).RegisterRoutes(r)
		NewAuthHandler(cfg.Auth, cfg.Logger).RegisterRoutes(r, s.requireAuth)
	})

	s.router = r
	return s, nil
}

// Handler returns the assembled http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}
