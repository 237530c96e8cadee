package app

import (
	"context"
	"fmt"
	"time"

	"gtfunds/internal/domain"
	"gtfunds/internal/ports"
)

// InvestorService manages capital providers and their per-cycle investments.
type InvestorService struct {
	investors ports.InvestorRepository
	cycles    ports.CycleRepository
	logger    ports.Logger
}

// NewInvestorService creates the investor application service.
func NewInvestorService(investors ports.InvestorRepository, cycles ports.CycleRepository, logger ports.Logger) (*InvestorService, error) {
	if investors == nil || cycles == nil || logger == nil {
		return nil, fmt.Errorf("missing required dependencies for InvestorService")
	}
	return &InvestorService{investors: investors, cycles: cycles, logger: logger}, nil
}

// Create registers a new investor with an empty investment history.
func (s *InvestorService) Create(ctx context.Context, investor *domain.Investor) (*domain.Investor, error) {
	if investor.RegistrationDate.IsZero() {
		investor.RegistrationDate = time.Now().UTC()
	}
	investor.TotalInvested = 0
	investor.Investments = []domain.Investment{}

	id, err := s.investors.Create(ctx, investor)
	if err != nil {
		return nil, err
	}
	created, err := s.investors.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("%w: investor %s missing after insert", ports.ErrInternal, id)
	}
	s.logger.Info(ctx, "investor created", map[string]interface{}{"id": created.ID, "email": created.Email})
	return created, nil
}

// Get returns one investor by id.
func (s *InvestorService) Get(ctx context.Context, id string) (*domain.Investor, error) {
	investor, err := s.investors.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if investor == nil {
		return nil, fmt.Errorf("%w: investor %s", ports.ErrNotFound, id)
	}
	return investor, nil
}

// List returns every investor.
func (s *InvestorService) List(ctx context.Context) ([]*domain.Investor, error) {
	return s.investors.FindAll(ctx)
}

// Update applies a partial update to an investor's profile fields.
func (s *InvestorService) Update(ctx context.Context, id string, upd ports.InvestorUpdate) (*domain.Investor, error) {
	if upd.IsEmpty() {
		return nil, ports.ErrEmptyUpdate
	}
	if err := s.investors.Update(ctx, id, upd); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes one investor.
func (s *InvestorService) Delete(ctx context.Context, id string) error {
	return s.investors.Delete(ctx, id)
}

// AddInvestment appends a contribution into a cycle and bumps the investor's
// running total. Both the investor and the cycle must exist.
func (s *InvestorService) AddInvestment(ctx context.Context, investorID string, inv domain.Investment) (*domain.Investor, error) {
	investor, err := s.Get(ctx, investorID)
	if err != nil {
		return nil, err
	}
	cycle, err := s.cycles.FindByID(ctx, inv.CycleID)
	if err != nil {
		return nil, err
	}
	if cycle == nil {
		return nil, fmt.Errorf("%w: cycle %s", ports.ErrNotFound, inv.CycleID)
	}

	if inv.InvestmentDate.IsZero() {
		inv.InvestmentDate = time.Now().UTC()
	}
	if inv.Status == "" {
		inv.Status = domain.InvestmentActive
	}

	newTotal := investor.TotalInvested + inv.Amount
	if err := s.investors.AddInvestment(ctx, investorID, inv, newTotal); err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "investment recorded", map[string]interface{}{
		"investorId": investorID,
		"cycleId":    inv.CycleID,
		"amount":     inv.Amount,
	})
	return s.Get(ctx, investorID)
}

// InvestmentDetail is one investment enriched with the cycle's name.
type InvestmentDetail struct {
	domain.Investment
	CycleName string `json:"cycleName"`
}

// ListInvestments returns the investor's investments with cycle names
// resolved. A dangling cycle reference is reported, not an error.
func (s *InvestorService) ListInvestments(ctx context.Context, investorID string) ([]InvestmentDetail, error) {
	investor, err := s.Get(ctx, investorID)
	if err != nil {
		return nil, err
	}

	details := make([]InvestmentDetail, 0, len(investor.Investments))
	for _, inv := range investor.Investments {
		name := "Ciclo no encontrado"
		if cycle, err := s.cycles.FindByID(ctx, inv.CycleID); err == nil && cycle != nil {
			name = cycle.Name
		}
		details = append(details, InvestmentDetail{Investment: inv, CycleName: name})
	}
	return details, nil
}
