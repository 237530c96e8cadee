package app

import (
	"context"
	"fmt"

	"gtfunds/internal/domain"
	"gtfunds/internal/ports"
)

// ClientService manages legacy client records.
type ClientService struct {
	clients ports.ClientRepository
	logger  ports.Logger
}

// NewClientService creates the legacy-client application service.
func NewClientService(clients ports.ClientRepository, logger ports.Logger) (*ClientService, error) {
	if clients == nil || logger == nil {
		return nil, fmt.Errorf("missing required dependencies for ClientService")
	}
	return &ClientService{clients: clients, logger: logger}, nil
}

// Create stores a new client record and returns it with the assigned id.
func (s *ClientService) Create(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	id, err := s.clients.Create(ctx, client)
	if err != nil {
		return nil, err
	}
	client.ID = id
	return client, nil
}

// List returns every stored client record.
func (s *ClientService) List(ctx context.Context) ([]*domain.Client, error) {
	return s.clients.FindAll(ctx)
}
