// Package app contains the application services orchestrating validation,
// existence checks and persistence for each resource.
package app

import (
	"context"
	"fmt"
	"time"

	"gtfunds/internal/domain"
	"gtfunds/internal/ports"
)

// TiroService orchestrates paired-trade operations: structural validation,
// referential checks against cycles and trading accounts, and persistence.
type TiroService struct {
	tiros    ports.TiroRepository
	cycles   ports.CycleRepository
	accounts ports.TradingAccountRepository
	logger   ports.Logger
}

// NewTiroService creates the tiro application service.
func NewTiroService(
	tiros ports.TiroRepository,
	cycles ports.CycleRepository,
	accounts ports.TradingAccountRepository,
	logger ports.Logger,
) (*TiroService, error) {
	if tiros == nil || cycles == nil || accounts == nil || logger == nil {
		return nil, fmt.Errorf("missing required dependencies for TiroService")
	}
	return &TiroService{tiros: tiros, cycles: cycles, accounts: accounts, logger: logger}, nil
}

// Create validates and persists a new tiro. The referenced cycle and every
// referenced trading account must exist; each leg must be structurally valid
// and must not reference the same account twice. Status defaults to Abierto
// and the open date is stamped here.
func (s *TiroService) Create(ctx context.Context, tiro *domain.Tiro) (*domain.Tiro, error) {
	cycle, err := s.cycles.FindByID(ctx, tiro.CycleID)
	if err != nil {
		return nil, err
	}
	if cycle == nil {
		return nil, fmt.Errorf("%w: cycle %s", ports.ErrNotFound, tiro.CycleID)
	}

	for _, accountID := range tiro.AccountIDs() {
		account, err := s.accounts.FindByID(ctx, accountID)
		if err != nil {
			return nil, err
		}
		if account == nil {
			return nil, fmt.Errorf("%w: trading account %s", ports.ErrNotFound, accountID)
		}
	}

	if dup := tiro.Leg1.DuplicateAccount(); dup != "" {
		return nil, fmt.Errorf("%w: account %s in leg1", domain.ErrDuplicateAccountInLeg, dup)
	}
	if dup := tiro.Leg2.DuplicateAccount(); dup != "" {
		return nil, fmt.Errorf("%w: account %s in leg2", domain.ErrDuplicateAccountInLeg, dup)
	}

	if err := tiro.Validate(); err != nil {
		return nil, err
	}

	if tiro.Status == "" {
		tiro.Status = domain.TiroOpen
	}
	tiro.OpenDate = time.Now().UTC()

	id, err := s.tiros.Create(ctx, tiro)
	if err != nil {
		return nil, err
	}

	created, err := s.tiros.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("%w: tiro %s missing after insert", ports.ErrInternal, id)
	}

	s.logger.Info(ctx, "Tiro created", map[string]interface{}{
		"tiroId":  created.ID,
		"cycleId": created.CycleID,
		"symbol":  created.Symbol,
	})
	return created, nil
}

// Get returns one tiro by id.
func (s *TiroService) Get(ctx context.Context, id string) (*domain.Tiro, error) {
	tiro, err := s.tiros.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tiro == nil {
		return nil, fmt.Errorf("%w: tiro %s", ports.ErrNotFound, id)
	}
	return tiro, nil
}

// ListAll returns every stored tiro.
func (s *TiroService) ListAll(ctx context.Context) ([]*domain.Tiro, error) {
	return s.tiros.FindAll(ctx)
}

// ListByCycle returns the tiros of one cycle.
func (s *TiroService) ListByCycle(ctx context.Context, cycleID string) ([]*domain.Tiro, error) {
	return s.tiros.FindByCycle(ctx, cycleID)
}

// Update applies a partial update. Closing a tiro without an explicit close
// date stamps the current time. Supplied legs must be structurally valid.
func (s *TiroService) Update(ctx context.Context, id string, upd ports.TiroUpdate) (*domain.Tiro, error) {
	if upd.IsEmpty() {
		return nil, ports.ErrEmptyUpdate
	}

	if upd.Leg1 != nil {
		if err := upd.Leg1.Validate(); err != nil {
			return nil, fmt.Errorf("leg1: %w", err)
		}
	}
	if upd.Leg2 != nil {
		if err := upd.Leg2.Validate(); err != nil {
			return nil, fmt.Errorf("leg2: %w", err)
		}
	}

	if upd.Status != nil && *upd.Status == domain.TiroClosed && upd.CloseDate == nil {
		now := time.Now().UTC()
		upd.CloseDate = &now
	}

	if err := s.tiros.Update(ctx, id, upd); err != nil {
		return nil, err
	}

	updated, err := s.tiros.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, fmt.Errorf("%w: tiro %s missing after update", ports.ErrInternal, id)
	}
	return updated, nil
}

// Delete removes one tiro. Referenced cycles and accounts are untouched.
func (s *TiroService) Delete(ctx context.Context, id string) error {
	return s.tiros.Delete(ctx, id)
}
