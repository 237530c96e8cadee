package app

import (
	"context"
	"fmt"

	"gtfunds/internal/domain"
	"gtfunds/internal/ports"
)

// Mock implementations

type mockLogger struct {
	infoMsgs  []string
	warnMsgs  []string
	errorMsgs []string
}

func (m *mockLogger) Debug(ctx context.Context, msg string, fields ...map[string]interface{}) {}

func (m *mockLogger) Info(ctx context.Context, msg string, fields ...map[string]interface{}) {
	m.infoMsgs = append(m.infoMsgs, msg)
}

func (m *mockLogger) Warn(ctx context.Context, msg string, fields ...map[string]interface{}) {
	m.warnMsgs = append(m.warnMsgs, msg)
}

func (m *mockLogger) Error(ctx context.Context, err error, msg string, fields ...map[string]interface{}) {
	m.errorMsgs = append(m.errorMsgs, msg)
}

type mockTiroRepo struct {
	tiros     map[string]*domain.Tiro
	nextID    int
	createErr error
	findErr   error
	updateErr error
	deleteErr error
}

func newMockTiroRepo() *mockTiroRepo {
	return &mockTiroRepo{tiros: make(map[string]*domain.Tiro), nextID: 1}
}

func (m *mockTiroRepo) Create(ctx context.Context, tiro *domain.Tiro) (string, error) {
	if m.createErr != nil {
		return "", m.createErr
	}
	id := fmt.Sprintf("tiro-%d", m.nextID)
	m.nextID++
	copied := *tiro
	copied.ID = id
	m.tiros[id] = &copied
	return id, nil
}

func (m *mockTiroRepo) FindByID(ctx context.Context, id string) (*domain.Tiro, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.tiros[id], nil
}

func (m *mockTiroRepo) FindAll(ctx context.Context) ([]*domain.Tiro, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	out := make([]*domain.Tiro, 0, len(m.tiros))
	for _, t := range m.tiros {
		out = append(out, t)
	}
	return out, nil
}

func (m *mockTiroRepo) FindByCycle(ctx context.Context, cycleID string) ([]*domain.Tiro, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	var out []*domain.Tiro
	for _, t := range m.tiros {
		if t.CycleID == cycleID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *mockTiroRepo) Update(ctx context.Context, id string, upd ports.TiroUpdate) error {
	if m.updateErr != nil {
		return m.updateErr
	}
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
	if upd.Leg1 != nil {
		tiro.Leg1 = *upd.Leg1
	}
	if upd.Leg2 != nil {
		tiro.Leg2 = *upd.Leg2
	}
	return nil
}

func (m *mockTiroRepo) Delete(ctx context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.tiros[id]; !ok {
		return fmt.Errorf("%w: tiro %s", ports.ErrNotFound, id)
	}
	delete(m.tiros, id)
	return nil
}

type mockCycleRepo struct {
	cycles  map[string]*domain.Cycle
	findErr error
}

func newMockCycleRepo(cycles ...*domain.Cycle) *mockCycleRepo {
	m := &mockCycleRepo{cycles: make(map[string]*domain.Cycle)}
	for _, c := range cycles {
		m.cycles[c.ID] = c
	}
	return m
}

func (m *mockCycleRepo) Create(ctx context.Context, cycle *domain.Cycle) (string, error) {
	id := fmt.Sprintf("cycle-%d", len(m.cycles)+1)
	copied := *cycle
	copied.ID = id
	m.cycles[id] = &copied
	return id, nil
}

func (m *mockCycleRepo) FindByID(ctx context.Context, id string) (*domain.Cycle, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.cycles[id], nil
}

func (m *mockCycleRepo) FindAll(ctx context.Context) ([]*domain.Cycle, error) {
	out := make([]*domain.Cycle, 0, len(m.cycles))
	for _, c := range m.cycles {
		out = append(out, c)
	}
	return out, nil
}

func (m *mockCycleRepo) FindByStatus(ctx context.Context, status domain.CycleStatus) ([]*domain.Cycle, error) {
	var out []*domain.Cycle
	for _, c := range m.cycles {
		if c.Status == status {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockCycleRepo) Update(ctx context.Context, id string, upd ports.CycleUpdate) error {
	cycle, ok := m.cycles[id]
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

func (m *mockCycleRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.cycles[id]; !ok {
		return fmt.Errorf("%w: cycle %s", ports.ErrNotFound, id)
	}
	delete(m.cycles, id)
	return nil
}

type mockAccountRepo struct {
	accounts map[string]*domain.TradingAccount
	nextID   int
	findErr  error
}

func newMockAccountRepo(accounts ...*domain.TradingAccount) *mockAccountRepo {
	m := &mockAccountRepo{accounts: make(map[string]*domain.TradingAccount), nextID: 1}
	for _, a := range accounts {
		m.accounts[a.ID] = a
	}
	return m
}

func (m *mockAccountRepo) Create(ctx context.Context, account *domain.TradingAccount) (string, error) {
	id := fmt.Sprintf("acc-%d", m.nextID)
	m.nextID++
	copied := *account
	copied.ID = id
	m.accounts[id] = &copied
	return id, nil
}

func (m *mockAccountRepo) FindByID(ctx context.Context, id string) (*domain.TradingAccount, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.accounts[id], nil
}

func (m *mockAccountRepo) FindByKyc(ctx context.Context, kycID string) ([]*domain.TradingAccount, error) {
	var out []*domain.TradingAccount
	for _, a := range m.accounts {
		if a.KycID == kycID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockAccountRepo) FindByCycle(ctx context.Context, cycleID string) ([]*domain.TradingAccount, error) {
	var out []*domain.TradingAccount
	for _, a := range m.accounts {
		if a.CycleID != nil && *a.CycleID == cycleID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockAccountRepo) FindAll(ctx context.Context) ([]*domain.TradingAccount, error) {
	out := make([]*domain.TradingAccount, 0, len(m.accounts))
	for _, a := range m.accounts {
		out = append(out, a)
	}
	return out, nil
}

func (m *mockAccountRepo) Update(ctx context.Context, id string, upd ports.TradingAccountUpdate) error {
	account, ok := m.accounts[id]
	if !ok {
		return fmt.Errorf("%w: trading account %s", ports.ErrNotFound, id)
	}
	if upd.AccountNumber != nil {
		account.AccountNumber = *upd.AccountNumber
	}
	if upd.Status != nil {
		account.Status = *upd.Status
	}
	if upd.Phase != nil {
		account.Phase = *upd.Phase
	}
	if upd.CycleID != nil {
		account.CycleID = upd.CycleID
	}
	return nil
}

func (m *mockAccountRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.accounts[id]; !ok {
		return fmt.Errorf("%w: trading account %s", ports.ErrNotFound, id)
	}
	delete(m.accounts, id)
	return nil
}

type mockKycRepo struct {
	kycs    map[string]*domain.Kyc
	findErr error
}

func newMockKycRepo(kycs ...*domain.Kyc) *mockKycRepo {
	m := &mockKycRepo{kycs: make(map[string]*domain.Kyc)}
	for _, k := range kycs {
		m.kycs[k.ID] = k
	}
	return m
}

func (m *mockKycRepo) Create(ctx context.Context, kyc *domain.Kyc) (string, error) {
	for _, existing := range m.kycs {
		if existing.Email == kyc.Email {
			return "", fmt.Errorf("%w: email %s", ports.ErrDuplicateEntry, kyc.Email)
		}
	}
	id := fmt.Sprintf("kyc-%d", len(m.kycs)+1)
	copied := *kyc
	copied.ID = id
	m.kycs[id] = &copied
	return id, nil
}

func (m *mockKycRepo) FindByID(ctx context.Context, id string) (*domain.Kyc, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.kycs[id], nil
}

func (m *mockKycRepo) Search(ctx context.Context, q ports.KycQuery) ([]*domain.Kyc, int64, error) {
	out := make([]*domain.Kyc, 0, len(m.kycs))
	for _, k := range m.kycs {
		out = append(out, k)
	}
	return out, int64(len(out)), nil
}

func (m *mockKycRepo) Update(ctx context.Context, id string, upd ports.KycUpdate) error {
	if _, ok := m.kycs[id]; !ok {
		return fmt.Errorf("%w: KYC %s", ports.ErrNotFound, id)
	}
	return nil
}

func (m *mockKycRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.kycs[id]; !ok {
		return fmt.Errorf("%w: KYC %s", ports.ErrNotFound, id)
	}
	delete(m.kycs, id)
	return nil
}

type mockUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*domain.User), nextID: 1}
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) (string, error) {
	id := fmt.Sprintf("user-%d", m.nextID)
	m.nextID++
	copied := *user
	copied.ID = id
	m.users[id] = &copied
	return id, nil
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return m.users[id], nil
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) UpdatePassword(ctx context.Context, id string, hashedPassword string) error {
	user, ok := m.users[id]
	if !ok {
		return fmt.Errorf("%w: user %s", ports.ErrNotFound, id)
	}
	user.HashedPassword = hashedPassword
	return nil
}
