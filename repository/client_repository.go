package repository

import (
	"context"

	"github.com/akinalp/filo/models"
)

// ClientRepository, clients tablosu işlemleri için interface.
type ClientRepository interface {
	Create(ctx context.Context, client *models.Client) error
	GetByID(ctx context.Context, id string) (*models.Client, error)
	ListByUser(ctx context.Context, userID string) ([]models.Client, error)

	// AssignServer, client'ı bir cluster sunucusuna bağlar.
	// Provision sırasında çağrılır — updated_at otomatik güncellenir.
	AssignServer(ctx context.Context, clientID, serverID string) error

	Count(ctx context.Context) (int, error)
}
