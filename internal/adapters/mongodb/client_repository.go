package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"gtfunds/internal/domain"
	"gtfunds/internal/ports"
)

type clientDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Name          string             `bson:"name"`
	Email         string             `bson:"email"`
	Phone         string             `bson:"phone"`
	Status        string             `bson:"status"`
	TotalInvested float64            `bson:"totalInvested"`
}

func (d clientDoc) toDomain() *domain.Client {
	return &domain.Client{
		ID:            d.ID.Hex(),
		Name:          d.Name,
		Email:         d.Email,
		Phone:         d.Phone,
		Status:        d.Status,
		TotalInvested: d.TotalInvested,
	}
}

// ClientRepository implements ports.ClientRepository.
type ClientRepository struct {
	col    *mongo.Collection
	logger ports.Logger
}

// NewClientRepository creates a client repository backed by the store.
func NewClientRepository(s *Store) *ClientRepository {
	return &ClientRepository{col: s.db.Collection(clientsCollection), logger: s.logger}
}

func (r *ClientRepository) Create(ctx context.Context, client *domain.Client) (string, error) {
	doc := clientDoc{
		Name:          client.Name,
		Email:         client.Email,
		Phone:         client.Phone,
		Status:        client.Status,
		TotalInvested: client.TotalInvested,
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert client: %w", err)
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *ClientRepository) FindAll(ctx context.Context) ([]*domain.Client, error) {
	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find clients: %w", err)
	}
	defer cursor.Close(ctx)

	var clients []*domain.Client
	for cursor.Next(ctx) {
		var doc clientDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode client: %w", err)
		}
		clients = append(clients, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate clients: %w", err)
	}
	return clients, nil
}
