package app

import (
	"context"
	"fmt"
	"time"

	"gtfunds/internal/domain"
	"gtfunds/internal/ports"
)

// KycService manages client identity records.
type KycService struct {
	kycs   ports.KycRepository
	logger ports.Logger
}

// NewKycService creates the KYC application service.
func NewKycService(kycs ports.KycRepository, logger ports.Logger) (*KycService, error) {
	if kycs == nil || logger == nil {
		return nil, fmt.Errorf("missing required dependencies for KycService")
	}
	return &KycService{kycs: kycs, logger: logger}, nil
}

// KycPage is one page of a KYC search.
type KycPage struct {
	Data    []*domain.Kyc `json:"data"`
	Total   int64         `json:"total"`
	Skip    int64         `json:"skip"`
	Limit   int64         `json:"limit"`
	HasMore bool          `json:"hasMore"`
}

// Create registers a new KYC record. Email uniqueness is enforced by the
// store's index; duplicates surface as ports.ErrDuplicateEntry.
func (s *KycService) Create(ctx context.Context, kyc *domain.Kyc) (*domain.Kyc, error) {
	if kyc.SubmittedDate.IsZero() {
		kyc.SubmittedDate = time.Now().UTC()
	}
	if kyc.Documents == nil {
		kyc.Documents = []domain.KycDocument{}
	}

	id, err := s.kycs.Create(ctx, kyc)
	if err != nil {
		return nil, err
	}
	created, err := s.kycs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("%w: KYC %s missing after insert", ports.ErrInternal, id)
	}
	s.logger.Info(ctx, "kyc created", map[string]interface{}{"id": created.ID, "email": created.Email})
	return created, nil
}

// Get returns one KYC record by id.
func (s *KycService) Get(ctx context.Context, id string) (*domain.Kyc, error) {
	kyc, err := s.kycs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if kyc == nil {
		return nil, fmt.Errorf("%w: KYC %s", ports.ErrNotFound, id)
	}
	return kyc, nil
}

// Search returns a page of KYC records, optionally filtered by a
// case-insensitive name/email term.
func (s *KycService) Search(ctx context.Context, query ports.KycQuery) (*KycPage, error) {
	if query.Limit <= 0 {
		query.Limit = 50
	}
	if query.Skip < 0 {
		query.Skip = 0
	}
	records, total, err := s.kycs.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []*domain.Kyc{}
	}
	return &KycPage{
		Data:    records,
		Total:   total,
		Skip:    query.Skip,
		Limit:   query.Limit,
		HasMore: query.Skip+int64(len(records)) < total,
	}, nil
}

// Update applies a partial update to a KYC record.
func (s *KycService) Update(ctx context.Context, id string, upd ports.KycUpdate) (*domain.Kyc, error) {
	if upd.IsEmpty() {
		return nil, ports.ErrEmptyUpdate
	}
	if err := s.kycs.Update(ctx, id, upd); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes one KYC record.
func (s *KycService) Delete(ctx context.Context, id string) error {
	return s.kycs.Delete(ctx, id)
}
