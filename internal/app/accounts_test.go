package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gtfunds/internal/domain"
	"gtfunds/internal/ports"
)

func newAccountFixture(t *testing.T, accounts *mockAccountRepo, kycs *mockKycRepo, cycles *mockCycleRepo) *AccountService {
	t.Helper()
	svc, err := NewAccountService(accounts, kycs, cycles, &mockLogger{})
	require.NoError(t, err)
	return svc
}

func TestAccountServiceCreate(t *testing.T) {
	ctx := context.Background()
	kycs := newMockKycRepo(&domain.Kyc{ID: "kyc-1", Name: "Ana Gomez"})
	cycles := newMockCycleRepo(&domain.Cycle{ID: "cycle-1", Status: domain.CycleActive})

	t.Run("defaults status and phase", func(t *testing.T) {
		svc := newAccountFixture(t, newMockAccountRepo(), kycs, cycles)

		created, err := svc.Create(ctx, "kyc-1", &domain.TradingAccount{AccountNumber: "FT-00001", PropFirm: "FTMO"})
		require.NoError(t, err)
		assert.Equal(t, "kyc-1", created.KycID)
		assert.Equal(t, domain.AccountPending, created.Status)
		assert.Equal(t, domain.PhaseOne, created.Phase)
	})

	t.Run("rejects an unknown KYC", func(t *testing.T) {
		svc := newAccountFixture(t, newMockAccountRepo(), kycs, cycles)

		_, err := svc.Create(ctx, "kyc-missing", &domain.TradingAccount{AccountNumber: "FT-00002"})
		assert.ErrorIs(t, err, ports.ErrNotFound)
	})

	t.Run("rejects an unknown cycle reference", func(t *testing.T) {
		svc := newAccountFixture(t, newMockAccountRepo(), kycs, cycles)

		missing := "cycle-missing"
		_, err := svc.Create(ctx, "kyc-1", &domain.TradingAccount{AccountNumber: "FT-00003", CycleID: &missing})
		assert.ErrorIs(t, err, ports.ErrNotFound)
	})
}

func TestAccountServiceUpdate(t *testing.T) {
	ctx := context.Background()
	kycs := newMockKycRepo(&domain.Kyc{ID: "kyc-1"})
	cycles := newMockCycleRepo(&domain.Cycle{ID: "cycle-1"})
	svc := newAccountFixture(t, newMockAccountRepo(), kycs, cycles)

	created, err := svc.Create(ctx, "kyc-1", &domain.TradingAccount{AccountNumber: "FT-00001"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID, ports.TradingAccountUpdate{})
	assert.ErrorIs(t, err, ports.ErrEmptyUpdate)

	phase := domain.PhaseReal
	updated, err := svc.Update(ctx, created.ID, ports.TradingAccountUpdate{Phase: &phase})
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseReal, updated.Phase)

	missing := "cycle-missing"
	_, err = svc.Update(ctx, created.ID, ports.TradingAccountUpdate{CycleID: &missing})
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestAuditAccountNumbers(t *testing.T) {
	ctx := context.Background()
	kycs := newMockKycRepo(&domain.Kyc{ID: "kyc-1", Name: "Ana Gomez"})
	accounts := newMockAccountRepo(
		&domain.TradingAccount{ID: "a1", KycID: "kyc-1", AccountNumber: "FT-00007", PropFirm: "FTMO"},
		&domain.TradingAccount{ID: "a2", KycID: "kyc-1", AccountNumber: "65a1b2c3d4e5f6a7b8c9d0e1", PropFirm: "FTMO", Phase: domain.PhaseOne, Status: domain.AccountActive},
		&domain.TradingAccount{ID: "a3", KycID: "kyc-gone", AccountNumber: "0123456789abcdef01234567", PropFirm: "MFF"},
	)
	svc := newAccountFixture(t, accounts, kycs, newMockCycleRepo())

	report, err := svc.AuditAccountNumbers(ctx)
	require.NoError(t, err)
	require.Len(t, report, 2)

	suggestions := map[string]bool{}
	for _, suspect := range report {
		assert.Regexp(t, `^FT-\d{5}$`, suspect.SuggestedNewNumber)
		suggestions[suspect.SuggestedNewNumber] = true
		switch suspect.ID {
		case "a2":
			assert.Equal(t, "Ana Gomez", suspect.KycName)
		case "a3":
			assert.Equal(t, "Unknown", suspect.KycName)
		default:
			t.Fatalf("unexpected suspect %s", suspect.ID)
		}
	}
	// Suggestions continue past the highest FT number and never collide.
	assert.Len(t, suggestions, 2)
	assert.False(t, suggestions["FT-00007"])
}
