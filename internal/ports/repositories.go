package ports

import (
	"context"

	"gtfunds/internal/domain"
)

// Finder conventions shared by all repositories:
//   - FindByID returns (nil, nil) when the id is well-formed but nothing is
//     stored under it, and an error wrapping ErrInvalidID for malformed ids.
//   - Update and Delete return an error wrapping ErrNotFound when no document
//     matched the id.

// TiroRepository stores paired trades. Every read path returns tiros already
// normalized to the current nested leg shape, regardless of how old the
// stored document is.
type TiroRepository interface {
	// Create inserts a new tiro and returns its assigned id.
	Create(ctx context.Context, tiro *domain.Tiro) (string, error)
	FindByID(ctx context.Context, id string) (*domain.Tiro, error)
	// FindAll retrieves every stored tiro.
	FindAll(ctx context.Context) ([]*domain.Tiro, error)
	// FindByCycle retrieves the tiros belonging to one cycle.
	FindByCycle(ctx context.Context, cycleID string) ([]*domain.Tiro, error)
	// Update applies the set fields of upd; untouched fields keep their values.
	Update(ctx context.Context, id string, upd TiroUpdate) error
	Delete(ctx context.Context, id string) error
}

// CycleRepository stores funding cycles.
type CycleRepository interface {
	Create(ctx context.Context, cycle *domain.Cycle) (string, error)
	FindByID(ctx context.Context, id string) (*domain.Cycle, error)
	FindAll(ctx context.Context) ([]*domain.Cycle, error)
	FindByStatus(ctx context.Context, status domain.CycleStatus) ([]*domain.Cycle, error)
	Update(ctx context.Context, id string, upd CycleUpdate) error
	Delete(ctx context.Context, id string) error
}

// TradingAccountRepository stores prop-firm trading accounts.
type TradingAccountRepository interface {
	Create(ctx context.Context, account *domain.TradingAccount) (string, error)
	FindByID(ctx context.Context, id string) (*domain.TradingAccount, error)
	// FindByKyc retrieves the accounts owned by one KYC record. Stored
	// documents that no longer satisfy entity validation are skipped, not
	// surfaced as errors.
	FindByKyc(ctx context.Context, kycID string) ([]*domain.TradingAccount, error)
	FindByCycle(ctx context.Context, cycleID string) ([]*domain.TradingAccount, error)
	FindAll(ctx context.Context) ([]*domain.TradingAccount, error)
	Update(ctx context.Context, id string, upd TradingAccountUpdate) error
	Delete(ctx context.Context, id string) error
}

// KycQuery narrows and pages a KYC listing.
type KycQuery struct {
	Search string // Case-insensitive substring over name and email
	Skip   int64
	Limit  int64
}

// KycRepository stores client identity records.
type KycRepository interface {
	// Create inserts a new KYC record. A duplicate email yields an error
	// wrapping ErrDuplicateEntry.
	Create(ctx context.Context, kyc *domain.Kyc) (string, error)
	FindByID(ctx context.Context, id string) (*domain.Kyc, error)
	// Search returns one page of matching records plus the total match count.
	Search(ctx context.Context, q KycQuery) ([]*domain.Kyc, int64, error)
	Update(ctx context.Context, id string, upd KycUpdate) error
	Delete(ctx context.Context, id string) error
}

// PayoutRepository stores client withdrawals.
type PayoutRepository interface {
	Create(ctx context.Context, payout *domain.Payout) (string, error)
	FindByID(ctx context.Context, id string) (*domain.Payout, error)
	FindByKyc(ctx context.Context, kycID string) ([]*domain.Payout, error)
	Update(ctx context.Context, id string, upd PayoutUpdate) error
	Delete(ctx context.Context, id string) error
}

// InvestorRepository stores capital providers and their per-cycle investments.
type InvestorRepository interface {
	Create(ctx context.Context, investor *domain.Investor) (string, error)
	FindByID(ctx context.Context, id string) (*domain.Investor, error)
	FindAll(ctx context.Context) ([]*domain.Investor, error)
	Update(ctx context.Context, id string, upd InvestorUpdate) error
	// AddInvestment appends one investment and replaces the running total in a
	// single write.
	AddInvestment(ctx context.Context, investorID string, inv domain.Investment, newTotal float64) error
	Delete(ctx context.Context, id string) error
}

// ClientRepository stores legacy client records.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) (string, error)
	FindAll(ctx context.Context) ([]*domain.Client, error)
}

// UserRepository stores application logins.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (string, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByEmail returns (nil, nil) when no user carries the email.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdatePassword(ctx context.Context, id string, hashedPassword string) error
}
