package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"gtfunds/internal/app"
	"gtfunds/internal/domain"
	"gtfunds/internal/ports"
)

// KycHandler exposes KYC endpoints plus the account and payout collections
// nested under a KYC record.
type KycHandler struct {
	kycs     *app.KycService
	accounts *app.AccountService
	payouts  *app.PayoutService
	logger   ports.Logger
}

// NewKycHandler creates the KYC HTTP handler.
func NewKycHandler(kycs *app.KycService, accounts *app.AccountService, payouts *app.PayoutService, logger ports.Logger) *KycHandler {
	return &KycHandler{kycs: kycs, accounts: accounts, payouts: payouts, logger: logger}
}

// RegisterRoutes mounts the KYC routes.
func (h *KycHandler) RegisterRoutes(r chi.Router) {
	r.Route("/kycs", func(r chi.Router) {
		r.Post("/", h.create)
		r.Get("/", h.search)
		r.Get("/{id}", h.get)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)

		r.Post("/{kyc_id}/accounts", h.createAccount)
		r.Get("/{kyc_id}/accounts", h.listAccounts)
		r.Post("/{kyc_id}/payouts", h.createPayout)
		r.Get("/{kyc_id}/payouts", h.listPayouts)
	})
}

func (h *KycHandler) create(w http.ResponseWriter, r *http.Request) {
	var kyc domain.Kyc
	if !decodeBody(w, r, &kyc) {
		return
	}
	created, err := h.kycs.Create(r.Context(), &kyc)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *KycHandler) search(w http.ResponseWriter, r *http.Request) {
	query := ports.KycQuery{Search: r.URL.Query().Get("search")}
	if skip, err := strconv.ParseInt(r.URL.Query().Get("skip"), 10, 64); err == nil {
		query.Skip = skip
	}
	if limit, err := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64); err == nil {
		query.Limit = limit
	}

	page, err := h.kycs.Search(r.Context(), query)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *KycHandler) get(w http.ResponseWriter, r *http.Request) {
	kyc, err := h.kycs.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, kyc)
}

func (h *KycHandler) update(w http.ResponseWriter, r *http.Request) {
	var upd ports.KycUpdate
	if !decodeBody(w, r, &upd) {
		return
	}
	updated, err := h.kycs.Update(r.Context(), chi.URLParam(r, "id"), upd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *KycHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.kycs.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "KYC eliminado"})
}

func (h *KycHandler) createAccount(w http.ResponseWriter, r *http.Request) {
	var account domain.TradingAccount
	if !decodeBody(w, r, &account) {
		return
	}
	created, err := h.accounts.Create(r.Context(), chi.URLParam(r, "kyc_id"), &account)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *KycHandler) listAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accounts.ListByKyc(r.Context(), chi.URLParam(r, "kyc_id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if accounts == nil {
		accounts = []*domain.TradingAccount{}
	}
	writeJSON(w, http.StatusOK, accounts)
}

func (h *KycHandler) createPayout(w http.ResponseWriter, r *http.Request) {
	var payout domain.Payout
	if !decodeBody(w, r, &payout) {
		return
	}
	created, err := h.payouts.Create(r.Context(), chi.URLParam(r, "kyc_id"), &payout)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *KycHandler) listPayouts(w http.ResponseWriter, r *http.Request) {
	payouts, err := h.payouts.ListByKyc(r.Context(), chi.URLParam(r, "kyc_id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if payouts == nil {
		payouts = []*domain.Payout{}
	}
	writeJSON(w, http.StatusOK, payouts)
}
