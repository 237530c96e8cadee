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

type cycleDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Status    string             `bson:"status"`
	StartDate time.Time          `bson:"startDate"`
}

func (d cycleDoc) toDomain() *domain.Cycle {
	return &domain.Cycle{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Status:    domain.CycleStatus(d.Status),
		StartDate: d.StartDate,
	}
}

// CycleRepository implements ports.CycleRepository.
type CycleRepository struct {
	col    *mongo.Collection
	logger ports.Logger
}

// NewCycleRepository creates a cycle repository backed by the store.
func NewCycleRepository(s *Store) *CycleRepository {
	return &CycleRepository{col: s.db.Collection(cyclesCollection), logger: s.logger}
}

func (r *CycleRepository) Create(ctx context.Context, cycle *domain.Cycle) (string, error) {
	doc := cycleDoc{
		Name:      cycle.Name,
		Status:    string(cycle.Status),
		StartDate: cycle.StartDate,
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert cycle: %w", err)
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *CycleRepository) FindByID(ctx context.Context, id string) (*domain.Cycle, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc cycleDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find cycle %s: %w", id, err)
	}
	return doc.toDomain(), nil
}

func (r *CycleRepository) FindAll(ctx context.Context) ([]*domain.Cycle, error) {
	return r.findMany(ctx, bson.M{})
}

func (r *CycleRepository) FindByStatus(ctx context.Context, status domain.CycleStatus) ([]*domain.Cycle, error) {
	return r.findMany(ctx, bson.M{"status": string(status)})
}

func (r *CycleRepository) findMany(ctx context.Context, filter bson.M) ([]*domain.Cycle, error) {
	cursor, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find cycles: %w", err)
	}
	defer cursor.Close(ctx)

	var cycles []*domain.Cycle
	for cursor.Next(ctx) {
		var doc cycleDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode cycle: %w", err)
		}
		cycles = append(cycles, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate cycles: %w", err)
	}
	return cycles, nil
}

func (r *CycleRepository) Update(ctx context.Context, id string, upd ports.CycleUpdate) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	set := bson.M{}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Status != nil {
		set["status"] = string(*upd.Status)
	}
	if upd.StartDate != nil {
		set["startDate"] = *upd.StartDate
	}
	if len(set) == 0 {
		return ports.ErrEmptyUpdate
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update cycle %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: cycle %s", ports.ErrNotFound, id)
	}
	return nil
}

func (r *CycleRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete cycle %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%w: cycle %s", ports.ErrNotFound, id)
	}
	return nil
}
