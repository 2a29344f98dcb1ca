package database

import (
	"context"

	"github.com/thenoetrevino/carril/internal/models"
)

// ClientReader defines read operations for clients.
type ClientReader interface {
	GetAllClients(ctx context.Context) ([]*models.Client, error)
	GetClientsByStatus(ctx context.Context, status models.Status) ([]*models.Client, error)
	GetClientByID(ctx context.Context, clientID int) (*models.Client, error)
}

// ClientWriter defines write operations for clients.
type ClientWriter interface {
	CreateClient(ctx context.Context, name string, status models.Status, position int, priority *int) (*models.Client, error)
	UpdateClientStatus(ctx context.Context, clientID int, status models.Status) error
	UpdateClientPriority(ctx context.Context, clientID, priority int) error
	UpdateClientPosition(ctx context.Context, clientID, position int) error
}

// ClientStore is the unified interface the service layer depends on.
// Consumers can depend on the smaller ClientReader/ClientWriter interfaces
// for better testability and clearer dependencies.
type ClientStore interface {
	ClientReader
	ClientWriter
}
