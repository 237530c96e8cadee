package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gtfunds/internal/app"
	"gtfunds/internal/domain"
	"gtfunds/internal/ports"
)

// memStore is a single in-memory backend implementing every repository port,
// enough to drive the router end to end.
type memStore struct {
	tiros     map[string]*domain.Tiro
	cycles    map[string]*domain.Cycle
	accounts  map[string]*domain.TradingAccount
	kycs      map[string]*domain.Kyc
	payouts   map[string]*domain.Payout
	investors map[string]*domain.Investor
	clients   map[string]*domain.Client
	users     map[string]*domain.User
	seq       int
}

func newMemStore() *memStore {
	return &memStore{
		tiros:     map[string]*domain.Tiro{},
		cycles:    map[string]*domain.Cycle{},
		accounts:  map[string]*domain.TradingAccount{},
		kycs:      map[string]*domain.Kyc{},
		payouts:   map[string]*domain.Payout{},
		investors: map[string]*domain.Investor{},
		clients:   map[string]*domain.Client{},
		users:     map[string]*domain.User{},
	}
}

func (m *memStore) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

func (m *memStore) Create(ctx context.Context, tiro *domain.Tiro) (string, error) {
	id := m.nextID("tiro")
	copied := *tiro
	copied.ID = id
	m.tiros[id] = &copied
	return id, nil
}

func (m *memStore) FindByID(ctx context.Context, id string) (*domain.Tiro, error) {
	return m.tiros[id], nil
}

func (m *memStore) FindAll(ctx context.Context) ([]*domain.Tiro, error) {
	out := []*domain.Tiro{}
	for _, t := range m.tiros {
		out = append(out, t)
	}
	return out, nil
}

func (m *memStore) FindByCycle(ctx context.Context, cycleID string) ([]*domain.Tiro, error) {
	out := []*domain.Tiro{}
	for _, t := range m.tiros {
		if t.CycleID == cycleID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memStore) Update(ctx context.Context, id string, upd ports.TiroUpdate) error {
	tiro, ok := m.tiros[id]
	if !ok {
		return fmt.Errorf("%w: tiro %s", ports.ErrNotFound, id)
	}
	if upd.Status != nil {
		tiro.Status = *upd.Status
	}
	if upd.Result != nil {
		tiro.Result = upd.Result
	}
	if upd.CloseDate != nil {
		tiro.CloseDate = upd.CloseDate
	}
	if upd.Notes != nil {
		tiro.Notes = upd.Notes
	}
	return nil
}

func (m *memStore) Delete(ctx context.Context, id string) error {
	if _, ok := m.tiros[id]; !ok {
		return fmt.Errorf("%w: tiro %s", ports.ErrNotFound, id)
	}
	delete(m.tiros, id)
	return nil
}

type memCycles struct{ s *memStore }

func (m memCycles) Create(ctx context.Context, cycle *domain.Cycle) (string, error) {
	id := m.s.nextID("cycle")
	copied := *cycle
	copied.ID = id
	m.s.cycles[id] = &copied
	return id, nil
}
func (m memCycles) FindByID(ctx context.Context, id string) (*domain.Cycle, error) {
	return m.s.cycles[id], nil
}
func (m memCycles) FindAll(ctx context.Context) ([]*domain.Cycle, error) {
	out := []*domain.Cycle{}
	for _, c := range m.s.cycles {
		out = append(out, c)
	}
	return out, nil
}
func (m memCycles) FindByStatus(ctx context.Context, status domain.CycleStatus) ([]*domain.Cycle, error) {
	out := []*domain.Cycle{}
	for _, c := range m.s.cycles {
		if c.Status == status {
			out = append(out, c)
		}
	}
	return out, nil
}
func (m memCycles) Update(ctx context.Context, id string, upd ports.CycleUpdate) error {
	cycle, ok := m.s.cycles[id]
	if !ok {
		return fmt.Errorf("%w: cycle %s", ports.ErrNotFound, id)
	}
	if upd.Name != nil {
		cycle.Name = *upd.Name
	}
	if upd.Status != nil {
		cycle.Status = *upd.Status
	}
	return nil
}
func (m memCycles) Delete(ctx context.Context, id string) error {
	delete(m.s.cycles, id)
	return nil
}

type memAccounts struct{ s *memStore }

func (m memAccounts) Create(ctx context.Context, account *domain.TradingAccount) (string, error) {
	id := m.s.nextID("acc")
	copied := *account
	copied.ID = id
	m.s.accounts[id] = &copied
	return id, nil
}
func (m memAccounts) FindByID(ctx context.Context, id string) (*domain.TradingAccount, error) {
	return m.s.accounts[id], nil
}
func (m memAccounts) FindByKyc(ctx context.Context, kycID string) ([]*domain.TradingAccount, error) {
	out := []*domain.TradingAccount{}
	for _, a := range m.s.accounts {
		if a.KycID == kycID {
			out = append(out, a)
		}
	}
	return out, nil
}
func (m memAccounts) FindByCycle(ctx context.Context, cycleID string) ([]*domain.TradingAccount, error) {
	out := []*domain.TradingAccount{}
	for _, a := range m.s.accounts {
		if a.CycleID != nil && *a.CycleID == cycleID {
			out = append(out, a)
		}
	}
	return out, nil
}
func (m memAccounts) FindAll(ctx context.Context) ([]*domain.TradingAccount, error) {
	out := []*domain.TradingAccount{}
	for _, a := range m.s.accounts {
		out = append(out, a)
	}
	return out, nil
}
func (m memAccounts) Update(ctx context.Context, id string, upd ports.TradingAccountUpdate) error {
	if _, ok := m.s.accounts[id]; !ok {
		return fmt.Errorf("%w: trading account %s", ports.ErrNotFound, id)
	}
	return nil
}
func (m memAccounts) Delete(ctx context.Context, id string) error {
	delete(m.s.accounts, id)
	return nil
}

type memKycs struct{ s *memStore }

func (m memKycs) Create(ctx context.Context, kyc *domain.Kyc) (string, error) {
	id := m.s.nextID("kyc")
	copied := *kyc
	copied.ID = id
	m.s.kycs[id] = &copied
	return id, nil
}
func (m memKycs) FindByID(ctx context.Context, id string) (*domain.Kyc, error) {
	return m.s.kycs[id], nil
}
func (m memKycs) Search(ctx context.Context, q ports.KycQuery) ([]*domain.Kyc, int64, error) {
	out := []*domain.Kyc{}
	for _, k := range m.s.kycs {
		out = append(out, k)
	}
	return out, int64(len(out)), nil
}
func (m memKycs) Update(ctx context.Context, id string, upd ports.KycUpdate) error {
	if _, ok := m.s.kycs[id]; !ok {
		return fmt.Errorf("%w: KYC %s", ports.ErrNotFound, id)
	}
	return nil
}
func (m memKycs) Delete(ctx context.Context, id string) error {
	delete(m.s.kycs, id)
	return nil
}

type memPayouts struct{ s *memStore }

func (m memPayouts) Create(ctx context.Context, payout *domain.Payout) (string, error) {
	id := m.s.nextID("payout")
	copied := *payout
	copied.ID = id
	m.s.payouts[id] = &copied
	return id, nil
}
func (m memPayouts) FindByID(ctx context.Context, id string) (*domain.Payout, error) {
	return m.s.payouts[id], nil
}
func (m memPayouts) FindByKyc(ctx context.Context, kycID string) ([]*domain.Payout, error) {
	out := []*domain.Payout{}
	for _, p := range m.s.payouts {
		if p.KycID == kycID {
			out = append(out, p)
		}
	}
	return out, nil
}
func (m memPayouts) Update(ctx context.Context, id string, upd ports.PayoutUpdate) error {
	if _, ok := m.s.payouts[id]; !ok {
		return fmt.Errorf("%w: payout %s", ports.ErrNotFound, id)
	}
	return nil
}
func (m memPayouts) Delete(ctx context.Context, id string) error {
	delete(m.s.payouts, id)
	return nil
}

type memInvestors struct{ s *memStore }

func (m memInvestors) Create(ctx context.Context, investor *domain.Investor) (string, error) {
	id := m.s.nextID("inv")
	copied := *investor
	copied.ID = id
	m.s.investors[id] = &copied
	return id, nil
}
func (m memInvestors) FindByID(ctx context.Context, id string) (*domain.Investor, error) {
	return m.s.investors[id], nil
}
func (m memInvestors) FindAll(ctx context.Context) ([]*domain.Investor, error) {
	out := []*domain.Investor{}
	for _, i := range m.s.investors {
		out = append(out, i)
	}
	return out, nil
}
func (m memInvestors) Update(ctx context.Context, id string, upd ports.InvestorUpdate) error {
	if _, ok := m.s.investors[id]; !ok {
		return fmt.Errorf("%w: investor %s", ports.ErrNotFound, id)
	}
	return nil
}
func (m memInvestors) AddInvestment(ctx context.Context, investorID string, inv domain.Investment, newTotal float64) error {
	investor, ok := m.s.investors[investorID]
	if !ok {
		return fmt.Errorf("%w: investor %s", ports.ErrNotFound, investorID)
	}
	investor.Investments = append(investor.Investments, inv)
	investor.TotalInvested = newTotal
	return nil
}
func (m memInvestors) Delete(ctx context.Context, id string) error {
	delete(m.s.investors, id)
	return nil
}

type memClients struct{ s *memStore }

func (m memClients) Create(ctx context.Context, client *domain.Client) (string, error) {
	id := m.s.nextID("client")
	copied := *client
	copied.ID = id
	m.s.clients[id] = &copied
	return id, nil
}
func (m memClients) FindAll(ctx context.Context) ([]*domain.Client, error) {
	out := []*domain.Client{}
	for _, c := range m.s.clients {
		out = append(out, c)
	}
	return out, nil
}

type memUsers struct{ s *memStore }

func (m memUsers) Create(ctx context.Context, user *domain.User) (string, error) {
	id := m.s.nextID("user")
	copied := *user
	copied.ID = id
	m.s.users[id] = &copied
	return id, nil
}
func (m memUsers) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return m.s.users[id], nil
}
func (m memUsers) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range m.s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (m memUsers) UpdatePassword(ctx context.Context, id string, hashedPassword string) error {
	user, ok := m.s.users[id]
	if !ok {
		return fmt.Errorf("%w: user %s", ports.ErrNotFound, id)
	}
	user.HashedPassword = hashedPassword
	return nil
}

type noopLogger struct{}

func (noopLogger) Debug(ctx context.Context, msg string, fields ...map[string]interface{}) {}
func (noopLogger) Info(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (noopLogger) Warn(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (noopLogger) Error(ctx context.Context, err error, msg string, fields ...map[string]interface{}) {
}

func newTestServer(t *testing.T) (*Server, *memStore) {
	t.Helper()
	store := newMemStore()
	log := noopLogger{}

	tiros, err := app.NewTiroService(store, memCycles{store}, memAccounts{store}, log)
	require.NoError(t, err)
	cycles, err := app.NewCycleService(memCycles{store}, log)
	require.NoError(t, err)
	accounts, err := app.NewAccountService(memAccounts{store}, memKycs{store}, memCycles{store}, log)
	require.NoError(t, err)
	kycs, err := app.NewKycService(memKycs{store}, log)
	require.NoError(t, err)
	payouts, err := app.NewPayoutService(memPayouts{store}, memKycs{store}, log)
	require.NoError(t, err)
	investors, err := app.NewInvestorService(memInvestors{store}, memCycles{store}, log)
	require.NoError(t, err)
	clients, err := app.NewClientService(memClients{store}, log)
	require.NoError(t, err)
	dashboard, err := app.NewDashboardService(memCycles{store}, memAccounts{store}, store, memKycs{store}, log)
	require.NoError(t, err)
	auth, err := app.NewAuthService(app.AuthConfig{
		Users:    memUsers{store},
		Logger:   log,
		Secret:   "test-secret",
		TokenTTL: time.Minute,
	})
	require.NoError(t, err)

	srv, err := New(Config{
		Tiros:       tiros,
		Cycles:      cycles,
		Accounts:    accounts,
		Kycs:        kycs,
		Payouts:     payouts,
		Investors:   investors,
		Clients:     clients,
		Dashboard:   dashboard,
		Auth:        auth,
		Logger:      log,
		CORSOrigins: []string{"*"},
	})
	require.NoError(t, err)
	return srv, store
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doJSON(t, srv.Handler(), http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestTiroEndpoints(t *testing.T) {
	srv, store := newTestServer(t)
	handler := srv.Handler()

	cycleID, err := memCycles{store}.Create(context.Background(), &domain.Cycle{Name: "Ciclo Q1", Status: domain.CycleActive})
	require.NoError(t, err)
	acc1, err := memAccounts{store}.Create(context.Background(), &domain.TradingAccount{AccountNumber: "FT-00001"})
	require.NoError(t, err)
	acc2, err := memAccounts{store}.Create(context.Background(), &domain.TradingAccount{AccountNumber: "FT-00002"})
	require.NoError(t, err)

	newTiro := func(cycle string) map[string]interface{} {
		return map[string]interface{}{
			"cycleId": cycle,
			"symbol":  "XAUUSD",
			"leg1": map[string]interface{}{
				"direction": "BUY",
				"accounts": []map[string]interface{}{
					{"accountId": acc1, "operations": []map[string]interface{}{{"volume": 1.0, "entryPrice": 2350.5}}},
				},
			},
			"leg2": map[string]interface{}{
				"direction": "SELL",
				"accounts": []map[string]interface{}{
					{"accountId": acc2, "operations": []map[string]interface{}{{"volume": 1.0, "entryPrice": 2350.5}}},
				},
			},
		}
	}

	t.Run("create returns 201", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodPost, "/api/v1/tiros", newTiro(cycleID), nil)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var created domain.Tiro
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
		assert.Equal(t, domain.TiroOpen, created.Status)
		assert.NotEmpty(t, created.ID)
	})

	t.Run("unknown cycle returns 404", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodPost, "/api/v1/tiros", newTiro("cycle-missing"), nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("invalid leg returns 400", func(t *testing.T) {
		payload := newTiro(cycleID)
		payload["leg2"].(map[string]interface{})["direction"] = "BUY"
		rec := doJSON(t, handler, http.MethodPost, "/api/v1/tiros", payload, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("empty update returns 400", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodPost, "/api/v1/tiros", newTiro(cycleID), nil)
		require.Equal(t, http.StatusCreated, rec.Code)
		var created domain.Tiro
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

		rec = doJSON(t, handler, http.MethodPut, "/api/v1/tiros/"+created.ID, map[string]interface{}{}, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("closing stamps the close date", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodPost, "/api/v1/tiros", newTiro(cycleID), nil)
		require.Equal(t, http.StatusCreated, rec.Code)
		var created domain.Tiro
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

		rec = doJSON(t, handler, http.MethodPut, "/api/v1/tiros/"+created.ID,
			map[string]interface{}{"status": "Cerrado", "result": 80.5}, nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var updated domain.Tiro
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
		assert.Equal(t, domain.TiroClosed, updated.Status)
		assert.NotNil(t, updated.CloseDate)
	})

	t.Run("delete unknown returns 404", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodDelete, "/api/v1/tiros/tiro-missing", nil, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestDashboardEndpoint(t *testing.T) {
	srv, store := newTestServer(t)

	cycleID, err := memCycles{store}.Create(context.Background(), &domain.Cycle{Name: "Ciclo Q1", Status: domain.CycleActive})
	require.NoError(t, err)

	rec := doJSON(t, srv.Handler(), http.MethodGet, "/api/v1/cycles/"+cycleID+"/dashboard", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var view map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Contains(t, view, "resumen")
	assert.Contains(t, view, "cuentas")
	assert.Contains(t, view, "tiros")
}

func TestAuthEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)
	handler := srv.Handler()

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/auth/register",
		map[string]string{"email": "ana@gtfunds.test", "name": "Ana", "password": "s3cret"}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "hashedPassword")

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/auth/login",
		map[string]string{"email": "ana@gtfunds.test", "password": "s3cret"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var login struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	assert.Equal(t, "bearer", login.TokenType)
	require.NotEmpty(t, login.AccessToken)

	rec = doJSON(t, handler, http.MethodGet, "/api/v1/auth/me", nil,
		map[string]string{"Authorization": "Bearer " + login.AccessToken})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, handler, http.MethodGet, "/api/v1/auth/me", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/auth/login",
		map[string]string{"email": "ana@gtfunds.test", "password": "wrong"}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("wrap: %w", ports.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("wrap: %w", ports.ErrDuplicateEntry), http.StatusConflict},
		{fmt.Errorf("wrap: %w", ports.ErrInvalidID), http.StatusBadRequest},
		{ports.ErrEmptyUpdate, http.StatusBadRequest},
		{domain.ErrSameDirectionLegs, http.StatusBadRequest},
		{fmt.Errorf("wrap: %w", ports.ErrUnauthorized), http.StatusUnauthorized},
		{fmt.Errorf("wrap: %w", ports.ErrForbidden), http.StatusForbidden},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, statusFor(tc.err), tc.err.Error())
	}
}
