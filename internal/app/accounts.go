package app

import (
	"context"
	"fmt"
	"regexp"

	"gtfunds/internal/domain"
	"gtfunds/internal/ports"
)

// Account numbers that look like raw store ids were entered by mistake; the
// audit flags them and proposes sequential FT numbers instead.
var storeIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

var ftNumberPattern = regexp.MustCompile(`^FT-(\d+)$`)

// AccountService manages prop-firm trading accounts nested under KYC records.
type AccountService struct {
	accounts ports.TradingAccountRepository
	kycs     ports.KycRepository
	cycles   ports.CycleRepository
	logger   ports.Logger
}

// NewAccountService creates the trading-account application service.
func NewAccountService(
	accounts ports.TradingAccountRepository,
	kycs ports.KycRepository,
	cycles ports.CycleRepository,
	logger ports.Logger,
) (*AccountService, error) {
	if accounts == nil || kycs == nil || cycles == nil || logger == nil {
		return nil, fmt.Errorf("missing required dependencies for AccountService")
	}
	return &AccountService{accounts: accounts, kycs: kycs, cycles: cycles, logger: logger}, nil
}

// Create persists a new account under a KYC record. The KYC must exist; an
// optional cycle reference must resolve too. Status and phase default to the
// initial evaluation stage.
func (s *AccountService) Create(ctx context.Context, kycID string, account *domain.TradingAccount) (*domain.TradingAccount, error) {
	kyc, err := s.kycs.FindByID(ctx, kycID)
	if err != nil {
		return nil, err
	}
	if kyc == nil {
		return nil, fmt.Errorf("%w: KYC %s", ports.ErrNotFound, kycID)
	}

	if account.CycleID != nil {
		if err := s.requireCycle(ctx, *account.CycleID); err != nil {
			return nil, err
		}
	}

	account.KycID = kycID
	if account.Status == "" {
		account.Status = domain.AccountPending
	}
	if account.Phase == "" {
		account.Phase = domain.PhaseOne
	}

	id, err := s.accounts.Create(ctx, account)
	if err != nil {
		return nil, err
	}
	created, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("%w: trading account %s missing after insert", ports.ErrInternal, id)
	}
	return created, nil
}

// Get returns one account by id.
func (s *AccountService) Get(ctx context.Context, id string) (*domain.TradingAccount, error) {
	account, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("%w: trading account %s", ports.ErrNotFound, id)
	}
	return account, nil
}

// ListByKyc returns the accounts owned by one KYC record.
func (s *AccountService) ListByKyc(ctx context.Context, kycID string) ([]*domain.TradingAccount, error) {
	return s.accounts.FindByKyc(ctx, kycID)
}

// Update applies a partial update. A changed cycle reference is re-validated;
// ownership (the KYC) never changes.
func (s *AccountService) Update(ctx context.Context, id string, upd ports.TradingAccountUpdate) (*domain.TradingAccount, error) {
	if upd.IsEmpty() {
		return nil, ports.ErrEmptyUpdate
	}
	if upd.CycleID != nil && *upd.CycleID != "" {
		if err := s.requireCycle(ctx, *upd.CycleID); err != nil {
			return nil, err
		}
	}
	if err := s.accounts.Update(ctx, id, upd); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes one account.
func (s *AccountService) Delete(ctx context.Context, id string) error {
	return s.accounts.Delete(ctx, id)
}

func (s *AccountService) requireCycle(ctx context.Context, cycleID string) error {
	cycle, err := s.cycles.FindByID(ctx, cycleID)
	if err != nil {
		return err
	}
	if cycle == nil {
		return fmt.Errorf("%w: cycle %s", ports.ErrNotFound, cycleID)
	}
	return nil
}

// SuspectAccountNumber is one entry of the account-number audit.
type SuspectAccountNumber struct {
	ID                 string `json:"id"`
	CurrentNumber      string `json:"current_accountNumber"`
	PropFirm           string `json:"propFirm"`
	KycName            string `json:"kycName"`
	Phase              string `json:"phase"`
	Status             string `json:"status"`
	SuggestedNewNumber string `json:"suggested_new_number"`
}

// AuditAccountNumbers reports accounts whose accountNumber looks like a raw
// store id, each with a suggested sequential FT number continuing from the
// highest one in use. Read-only; nothing is modified.
func (s *AccountService) AuditAccountNumbers(ctx context.Context) ([]SuspectAccountNumber, error) {
	accounts, err := s.accounts.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	maxFT := 0
	var suspects []*domain.TradingAccount
	for _, account := range accounts {
		if m := ftNumberPattern.FindStringSubmatch(account.AccountNumber); m != nil {
			n := 0
			fmt.Sscanf(m[1], "%d", &n)
			if n > maxFT {
				maxFT = n
			}
		}
		if storeIDPattern.MatchString(account.AccountNumber) {
			suspects = append(suspects, account)
		}
	}

	report := make([]SuspectAccountNumber, 0, len(suspects))
	next := maxFT + 1
	for _, account := range suspects {
		kycName := "Unknown"
		if kyc, err := s.kycs.FindByID(ctx, account.KycID); err == nil && kyc != nil {
			kycName = kyc.Name
		}
		report = append(report, SuspectAccountNumber{
			ID:                 account.ID,
			CurrentNumber:      account.AccountNumber,
			PropFirm:           account.PropFirm,
			KycName:            kycName,
			Phase:              string(account.Phase),
			Status:             string(account.Status),
			SuggestedNewNumber: fmt.Sprintf("FT-%05d", next),
		})
		next++
	}
	return report, nil
}
