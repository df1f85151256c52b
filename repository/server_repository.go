package repository

import (
	"context"

	"github.com/akinalp/filo/models"
	"github.com/akinalp/filo/pkg/rowgroup"
)

// ServerRepository, client_servers tablosu işlemleri için interface.
type ServerRepository interface {
	Create(ctx context.Context, server *models.ClientServer) error
	GetByID(ctx context.Context, id string) (*models.ClientServer, error)

	// ListByCluster, bir cluster'daki sunucuları client'larıyla birlikte
	// tek bir LEFT JOIN sorgusuyla getirir ve pkg/rowgroup ile
	// first-seen sıralı, dedupe edilmiş gruplara materialize eder.
	// Cluster'da sunucu yoksa boş dizi döner — bu bir hata değildir.
	ListByCluster(ctx context.Context, clusterName string) ([]rowgroup.ServerGroup, error)

	Count(ctx context.Context) (int, error)
}
