package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"gtfunds/internal/domain"
	"gtfunds/internal/ports"
)

type payoutDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	KycID      string             `bson:"kycId"`
	Amount     float64            `bson:"amount"`
	PayoutDate time.Time          `bson:"payoutDate"`
}

func (d payoutDoc) toDomain() *domain.Payout {
	return &domain.Payout{
		ID:         d.ID.Hex(),
		KycID:      d.KycID,
		Amount:     d.Amount,
		PayoutDate: d.PayoutDate,
	}
}

// PayoutRepository implements ports.PayoutRepository.
type PayoutRepository struct {
	col    *mongo.Collection
	logger ports.Logger
}

// NewPayoutRepository creates a payout repository backed by the store.
func NewPayoutRepository(s *Store) *PayoutRepository {
	return &PayoutRepository{col: s.db.Collection(payoutsCollection), logger: s.logger}
}

func (r *PayoutRepository) Create(ctx context.Context, payout *domain.Payout) (string, error) {
	doc := payoutDoc{
		KycID:      payout.KycID,
		Amount:     payout.Amount,
		PayoutDate: payout.PayoutDate,
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert payout: %w", err)
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *PayoutRepository) FindByID(ctx context.Context, id string) (*domain.Payout, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc payoutDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find payout %s: %w", id, err)
	}
	return doc.toDomain(), nil
}

// FindByKyc returns the payouts of one KYC record. Undecodable documents are
// logged and skipped.
func (r *PayoutRepository) FindByKyc(ctx context.Context, kycID string) ([]*domain.Payout, error) {
	cursor, err := r.col.Find(ctx, bson.M{"kycId": kycID})
	if err != nil {
		return nil, fmt.Errorf("find payouts: %w", err)
	}
	defer cursor.Close(ctx)

	var payouts []*domain.Payout
	for cursor.Next(ctx) {
		var doc payoutDoc
		if err := cursor.Decode(&doc); err != nil {
			r.logger.Warn(ctx, "Skipping undecodable payout document", map[string]interface{}{
				"kycId": kycID,
				"error": err.Error(),
			})
			continue
		}
		payouts = append(payouts, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate payouts: %w", err)
	}
	return payouts, nil
}

func (r *PayoutRepository) Update(ctx context.Context, id string, upd ports.PayoutUpdate) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	set := bson.M{}
	if upd.Amount != nil {
		set["amount"] = *upd.Amount
	}
	if upd.PayoutDate != nil {
		set["payoutDate"] = *upd.PayoutDate
	}
	if len(set) == 0 {
		return ports.ErrEmptyUpdate
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update payout %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: payout %s", ports.ErrNotFound, id)
	}
	return nil
}

func (r *PayoutRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete payout %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%w: payout %s", ports.ErrNotFound, id)
	}
	return nil
}
