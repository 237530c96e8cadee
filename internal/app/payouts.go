package app

import (
	"context"
	"fmt"
	"time"

	"gtfunds/internal/domain"
	"gtfunds/internal/ports"
)

// PayoutService manages withdrawals paid out under a KYC record.
type PayoutService struct {
	payouts ports.PayoutRepository
	kycs    ports.KycRepository
	logger  ports.Logger
}

// NewPayoutService creates the payout application service.
func NewPayoutService(payouts ports.PayoutRepository, kycs ports.KycRepository, logger ports.Logger) (*PayoutService, error) {
	if payouts == nil || kycs == nil || logger == nil {
		return nil, fmt.Errorf("missing required dependencies for PayoutService")
	}
	return &PayoutService{payouts: payouts, kycs: kycs, logger: logger}, nil
}

// Create records a payout for an existing KYC record.
func (s *PayoutService) Create(ctx context.Context, kycID string, payout *domain.Payout) (*domain.Payout, error) {
	kyc, err := s.kycs.FindByID(ctx, kycID)
	if err != nil {
		return nil, err
	}
	if kyc == nil {
		return nil, fmt.Errorf("%w: KYC %s", ports.ErrNotFound, kycID)
	}

	payout.KycID = kycID
	if payout.PayoutDate.IsZero() {
		payout.PayoutDate = time.Now().UTC()
	}

	id, err := s.payouts.Create(ctx, payout)
	if err != nil {
		return nil, err
	}
	created, err := s.payouts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("%w: payout %s missing after insert", ports.ErrInternal, id)
	}
	return created, nil
}

// Get returns one payout by id.
func (s *PayoutService) Get(ctx context.Context, id string) (*domain.Payout, error) {
	payout, err := s.payouts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payout == nil {
		return nil, fmt.Errorf("%w: payout %s", ports.ErrNotFound, id)
	}
	return payout, nil
}

// ListByKyc returns the payouts recorded under one KYC record.
func (s *PayoutService) ListByKyc(ctx context.Context, kycID string) ([]*domain.Payout, error) {
	return s.payouts.FindByKyc(ctx, kycID)
}

// Update applies a partial update to a payout.
func (s *PayoutService) Update(ctx context.Context, id string, upd ports.PayoutUpdate) (*domain.Payout, error) {
	if upd.IsEmpty() {
		return nil, ports.ErrEmptyUpdate
	}
	if err := s.payouts.Update(ctx, id, upd); err != nil {
		return nil, err
	}
	payout, err := s.payouts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payout == nil {
		return nil, fmt.Errorf("%w: payout %s", ports.ErrNotFound, id)
	}
	return payout, nil
}

// Delete removes one payout.
func (s *PayoutService) Delete(ctx context.Context, id string) error {
	return s.payouts.Delete(ctx, id)
}
