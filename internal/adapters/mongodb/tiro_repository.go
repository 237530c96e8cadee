package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"gtfunds/internal/domain"
	"gtfunds/internal/ports"
)

// TiroRepository implements ports.TiroRepository.
type TiroRepository struct {
	col    *mongo.Collection
	logger ports.Logger
}

// NewTiroRepository creates a tiro repository backed by the store.
func NewTiroRepository(s *Store) *TiroRepository {
	return &TiroRepository{col: s.db.Collection(tirosCollection), logger: s.logger}
}

// Create inserts a new tiro in the current nested shape and returns its id.
func (r *TiroRepository) Create(ctx context.Context, tiro *domain.Tiro) (string, error) {
	res, err := r.col.InsertOne(ctx, tiroToDoc(tiro))
	if err != nil {
		return "", fmt.Errorf("insert tiro: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("%w: unexpected inserted id type %T", ports.ErrInternal, res.InsertedID)
	}
	return oid.Hex(), nil
}

// FindByID returns the tiro stored under id, normalized to the current leg
// shape, or (nil, nil) when absent.
func (r *TiroRepository) FindByID(ctx context.Context, id string) (*domain.Tiro, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc tiroDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find tiro %s: %w", id, err)
	}
	return doc.toDomain(), nil
}

// FindAll returns every stored tiro, each normalized on decode.
func (r *TiroRepository) FindAll(ctx context.Context) ([]*domain.Tiro, error) {
	return r.findMany(ctx, bson.M{})
}

// FindByCycle returns the tiros of one cycle. The cycle id must be
// well-formed even though the stored reference is a plain string.
func (r *TiroRepository) FindByCycle(ctx context.Context, cycleID string) ([]*domain.Tiro, error) {
	if _, err := objectID(cycleID); err != nil {
		return nil, err
	}
	return r.findMany(ctx, bson.M{"cycleId": cycleID})
}

func (r *TiroRepository) findMany(ctx context.Context, filter bson.M) ([]*domain.Tiro, error) {
	cursor, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find tiros: %w", err)
	}
	defer cursor.Close(ctx)

	var tiros []*domain.Tiro
	for cursor.Next(ctx) {
		var doc tiroDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode tiro: %w", err)
		}
		tiros = append(tiros, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate tiros: %w", err)
	}
	return tiros, nil
}

// Update persists only the set fields of upd. Legs are rewritten in the
// current nested shape, which is how legacy records eventually converge.
func (r *TiroRepository) Update(ctx context.Context, id string, upd ports.TiroUpdate) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	set := bson.M{}
	if upd.Status != nil {
		set["status"] = string(*upd.Status)
	}
	if upd.Result != nil {
		set["result"] = *upd.Result
	}
	if upd.CloseDate != nil {
		set["closeDate"] = *upd.CloseDate
	}
	if upd.Notes != nil {
		set["notes"] = *upd.Notes
	}
	if upd.Leg1 != nil {
		set["leg1"] = legToDoc(*upd.Leg1)
	}
	if upd.Leg2 != nil {
		set["leg2"] = legToDoc(*upd.Leg2)
	}
	if len(set) == 0 {
		return ports.ErrEmptyUpdate
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update tiro %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: tiro %s", ports.ErrNotFound, id)
	}
	return nil
}

// Delete removes the tiro. Referenced accounts and cycles are untouched.
func (r *TiroRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete tiro %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%w: tiro %s", ports.ErrNotFound, id)
	}
	return nil
}
