package app

import (
	"context"
	"fmt"
	"time"

	"gtfunds/internal/domain"
	"gtfunds/internal/ports"
)

// CycleService manages funding cycles.
type CycleService struct {
	cycles ports.CycleRepository
	logger ports.Logger
}

// NewCycleService creates the cycle application service.
func NewCycleService(cycles ports.CycleRepository, logger ports.Logger) (*CycleService, error) {
	if cycles == nil || logger == nil {
		return nil, fmt.Errorf("missing required dependencies for CycleService")
	}
	return &CycleService{cycles: cycles, logger: logger}, nil
}

// Create persists a new cycle. Status defaults to Activo and the start date
// to the current time.
func (s *CycleService) Create(ctx context.Context, cycle *domain.Cycle) (*domain.Cycle, error) {
	if cycle.Status == "" {
		cycle.Status = domain.CycleActive
	}
	if cycle.StartDate.IsZero() {
		cycle.StartDate = time.Now().UTC()
	}

	id, err := s.cycles.Create(ctx, cycle)
	if err != nil {
		return nil, err
	}
	created, err := s.cycles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("%w: cycle %s missing after insert", ports.ErrInternal, id)
	}
	return created, nil
}

// Get returns one cycle by id.
func (s *CycleService) Get(ctx context.Context, id string) (*domain.Cycle, error) {
	cycle, err := s.cycles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cycle == nil {
		return nil, fmt.Errorf("%w: cycle %s", ports.ErrNotFound, id)
	}
	return cycle, nil
}

// List returns every cycle.
func (s *CycleService) List(ctx context.Context) ([]*domain.Cycle, error) {
	return s.cycles.FindAll(ctx)
}

// Update applies a partial update and returns the stored record.
func (s *CycleService) Update(ctx context.Context, id string, upd ports.CycleUpdate) (*domain.Cycle, error) {
	if upd.IsEmpty() {
		return nil, ports.ErrEmptyUpdate
	}
	if err := s.cycles.Update(ctx, id, upd); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes one cycle. Accounts and tiros referencing it are untouched.
func (s *CycleService) Delete(ctx context.Context, id string) error {
	return s.cycles.Delete(ctx, id)
}
