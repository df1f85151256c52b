package services

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/akinalp/filo/config"
	"github.com/akinalp/filo/containers"
	"github.com/akinalp/filo/database"
	"github.com/akinalp/filo/models"
	"github.com/akinalp/filo/pkg"
	"github.com/akinalp/filo/repository"
	"github.com/akinalp/filo/ws"
	"github.com/google/uuid"
)

// ProvisionService, bir kullanıcının client'ları için container oluşturur.
type ProvisionService interface {
	// ProvisionUser, kullanıcının henüz container'ı olmayan tüm
	// client'ları için container oluşturur, başlatır, registry'ye bağlar
	// ve client'ı cluster'ın en az yüklü sunucusuna atar.
	// Kullanıcının hiç client'ı yoksa pkg.ErrBadRequest döner.
	//
	// Hata durumunda o ana kadar tamamlanan client'ların sonuçları
	// hata ile BİRLİKTE döner — önceki iterasyonlarda oluşturulan
	// container'lar geri alınmaz, caller hangi client'ların başarılı
	// olduğunu görebilir.
	ProvisionUser(ctx context.Context, userID string) ([]ProvisionResult, error)
}

// ProvisionResult, tek bir client için provision sonucu.
type ProvisionResult struct {
	ClientID      string `json:"client_id"`
	ContainerID   string `json:"container_id"`
	ContainerName string `json:"container_name"`
	ServerID      string `json:"server_id"`
	Skipped       bool   `json:"skipped"` // zaten container'ı vardı
}

type provisionService struct {
	db         *sql.DB // WithTx için — sunucu ataması + ilk health örneği atomik yazılır
	userRepo   repository.UserRepository
	clientRepo repository.ClientRepository
	serverRepo repository.ServerRepository
	runtime    containers.Runtime
	registry   *containers.Registry
	hub        ws.EventPublisher
	cluster    string
	docker     config.DockerConfig
}

// NewProvisionService, constructor — interface döner.
// db, transaction'lı yazma yolu için doğrudan *sql.DB ister.
func NewProvisionService(
	db *sql.DB,
	userRepo repository.UserRepository,
	clientRepo repository.ClientRepository,
	serverRepo repository.ServerRepository,
	runtime containers.Runtime,
	registry *containers.Registry,
	hub ws.EventPublisher,
	cluster string,
	docker config.DockerConfig,
) ProvisionService {
	return &provisionService{
		db:         db,
		userRepo:   userRepo,
		clientRepo: clientRepo,
		serverRepo: serverRepo,
		runtime:    runtime,
		registry:   registry,
		hub:        hub,
		cluster:    cluster,
		docker:     docker,
	}
}

func (s *provisionService) ProvisionUser(ctx context.Context, userID string) ([]ProvisionResult, error) {
	// Kullanıcı yoksa ErrNotFound burada yüzeye çıkar
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	clients, err := s.clientRepo.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if len(clients) == 0 {
		return nil, fmt.Errorf("%w: user has no clients to provision", pkg.ErrBadRequest)
	}

	results := make([]ProvisionResult, 0, len(clients))
	for i := range clients {
		result, err := s.provisionClient(ctx, user, &clients[i])
		if err != nil {
			// Kısmi sonuçları da dön — tamamlanan container'lar ayakta
			return results, err
		}
		results = append(results, *result)
	}

	return results, nil
}

// provisionClient, tek bir client için container oluşturur.
// Registry'de binding'i olan client atlanır — provision idempotent'tir.
func (s *provisionService) provisionClient(ctx context.Context, user *models.User, client *models.Client) (*ProvisionResult, error) {
	if ref, bound := s.registry.Lookup(client.ID); bound {
		return &ProvisionResult{
			ClientID:      client.ID,
			ContainerID:   ref.ContainerID,
			ContainerName: ref.Name,
			Skipped:       true,
		}, nil
	}

	serverID, err := s.pickServer(ctx)
	if err != nil {
		return nil, err
	}

	// uuid suffix: aynı client için eski (durmuş ama silinmemiş)
	// container'la isim çakışmasını önler
	name := fmt.Sprintf("filo-client-%s-%s", client.ID, uuid.NewString()[:8])
	env := []string{
		s.docker.EnvPrefix + "CLIENT_ID=" + client.ID,
		s.docker.EnvPrefix + "USER_ID=" + user.ID,
		s.docker.EnvPrefix + "CLUSTER=" + s.cluster,
	}

	containerID, err := s.runtime.CreateAndStart(ctx, name, s.docker.Image, env)
	if err != nil {
		return nil, fmt.Errorf("failed to provision client %s: %w", client.ID, err)
	}

	s.registry.Bind(client.ID, containers.ContainerRef{ContainerID: containerID, Name: name})

	// Sunucu ataması + ilk health örneği tek transaction'da: ikisi de
	// yazılır ya da hiçbiri — yarım kayıtlı client kalmaz.
	// Transaction-bound repository'ler aynı tx üzerinden çalışır.
	err = database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		txClientRepo := repository.NewSQLiteClientRepo(tx)
		txHealthRepo := repository.NewSQLiteHealthRepo(tx)

		if err := txClientRepo.AssignServer(ctx, client.ID, serverID); err != nil {
			return err
		}

		sample := &models.HealthSample{
			ClientID:    client.ID,
			ContainerID: containerID,
			State:       "running",
			Healthy:     true,
		}
		return txHealthRepo.Insert(ctx, sample)
	})
	if err != nil {
		// DB yazılamadı — binding'i geri al, monitor sahipsiz container'ı izlemesin
		s.registry.Unbind(client.ID)
		return nil, fmt.Errorf("failed to record provision for client %s: %w", client.ID, err)
	}

	s.hub.Broadcast(ws.Event{
		Op: ws.OpContainerProvisioned,
		Data: ws.ContainerEventData{
			ClientID:      client.ID,
			ContainerID:   containerID,
			ContainerName: name,
		},
	})

	log.Printf("[provision] client %s → container %s on server %s", client.ID, name, serverID)

	return &ProvisionResult{
		ClientID:      client.ID,
		ContainerID:   containerID,
		ContainerName: name,
		ServerID:      serverID,
	}, nil
}

// pickServer, cluster'daki en az client'lı sunucuyu seçer.
// Materialized grup listesi client sayılarını zaten taşıyor —
// ayrı bir COUNT sorgusuna gerek yok.
func (s *provisionService) pickServer(ctx context.Context) (string, error) {
	groups, err := s.serverRepo.ListByCluster(ctx, s.cluster)
	if err != nil {
		return "", err
	}
	if len(groups) == 0 {
		return "", fmt.Errorf("%w: no servers registered on cluster %s", pkg.ErrUnavailable, s.cluster)
	}

	best := groups[0]
	for _, g := range groups[1:] {
		if len(g.Clients) < len(best.Clients) {
			best = g
		}
	}
	return best.ID, nil
}
