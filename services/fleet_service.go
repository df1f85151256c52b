package services

import (
	"context"

	"github.com/akinalp/filo/models"
	"github.com/akinalp/filo/pkg"
	"github.com/akinalp/filo/pkg/rowgroup"
	"github.com/akinalp/filo/repository"
)

// maxHealthSamples, tek istekte dönen en fazla health örneği.
const maxHealthSamples = 100

// FleetService, cluster ve kullanıcı monitoring sorgularını yönetir.
// İki operasyon da salt-okunurdur: repository join sorgusu + materialization.
// Sonuçlar her request'te taze üretilir, cache'lenmez.
type FleetService interface {
	// ServersOnCluster, bir cluster'daki sunucuları nested client
	// listeleriyle döner. Boş cluster boş dizi döner.
	ServersOnCluster(ctx context.Context, clusterName string) ([]rowgroup.ServerGroup, error)

	// UserWithClients, kullanıcıyı client'larıyla döner.
	// Kullanıcı yoksa pkg.ErrNotFound — handler 404'e çevirir.
	UserWithClients(ctx context.Context, userID string) (*rowgroup.UserProfile, error)

	// ClientHealth, bir client'ın son health örneklerini yeniden eskiye döner.
	ClientHealth(ctx context.Context, clientID string, limit int) ([]models.HealthSample, error)

	// Stats, operatör dashboard'u için fleet genelindeki toplam sayıları döner.
	Stats(ctx context.Context) (*FleetStats, error)
}

// FleetStats, fleet genelindeki kayıt sayıları.
type FleetStats struct {
	Users   int `json:"users"`
	Clients int `json:"clients"`
	Servers int `json:"servers"`
}

type fleetService struct {
	serverRepo repository.ServerRepository
	userRepo   repository.UserRepository
	healthRepo repository.HealthHistoryRepository
	clientRepo repository.ClientRepository
}

// NewFleetService, constructor — interface döner.
func NewFleetService(
	serverRepo repository.ServerRepository,
	userRepo repository.UserRepository,
	healthRepo repository.HealthHistoryRepository,
	clientRepo repository.ClientRepository,
) FleetService {
	return &fleetService{
		serverRepo: serverRepo,
		userRepo:   userRepo,
		healthRepo: healthRepo,
		clientRepo: clientRepo,
	}
}

func (s *fleetService) ServersOnCluster(ctx context.Context, clusterName string) ([]rowgroup.ServerGroup, error) {
	return s.serverRepo.ListByCluster(ctx, clusterName)
}

func (s *fleetService) UserWithClients(ctx context.Context, userID string) (*rowgroup.UserProfile, error) {
	user, found, err := s.userRepo.GetWithClients(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, pkg.ErrNotFound
	}
	return user, nil
}

func (s *fleetService) ClientHealth(ctx context.Context, clientID string, limit int) ([]models.HealthSample, error) {
	// Client yoksa 404 — boş geçmişle karışmasın
	if _, err := s.clientRepo.GetByID(ctx, clientID); err != nil {
		return nil, err
	}

	if limit <= 0 || limit > maxHealthSamples {
		limit = maxHealthSamples
	}
	return s.healthRepo.ListByClient(ctx, clientID, limit)
}

func (s *fleetService) Stats(ctx context.Context) (*FleetStats, error) {
	users, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	clients, err := s.clientRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	servers, err := s.serverRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &FleetStats{Users: users, Clients: clients, Servers: servers}, nil
}
