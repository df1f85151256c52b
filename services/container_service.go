package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/akinalp/filo/containers"
	"github.com/akinalp/filo/pkg"
	"github.com/akinalp/filo/pkg/cache"
)

// ContainerService, kayıtlı container'lar üzerinde sorgu ve durum
// okuma operasyonlarını sunar.
type ContainerService interface {
	// ExecuteQuery, client'ın container'ı içinde bir sorgu komutu
	// çalıştırır ve stdout çıktısını döner. Registry'de binding yoksa
	// pkg.ErrNotFound döner.
	ExecuteQuery(ctx context.Context, clientID, query string) (string, error)

	// ClientStatus, client container'ının var olup olmadığını ve
	// çalışıp çalışmadığını raporlar.
	ClientStatus(ctx context.Context, clientID string) (*ClientStatusResult, error)

	// Mappings, registry'deki clientID → container adı eşlemesinin
	// anlık görüntüsünü döner.
	Mappings() map[string]string
}

// ClientStatusResult, container durum raporu.
type ClientStatusResult struct {
	Created string `json:"created"` // "Yes" | "No"
	Running string `json:"running"` // "Yes" | "No"
}

type containerService struct {
	runtime  containers.Runtime
	registry *containers.Registry

	// Durum cache'i — dashboard polling'i aynı client'ları saniyeler
	// içinde tekrar sorgular, her seferinde daemon'a inspect atılmaz.
	statusCache *cache.TTLCache[string, ClientStatusResult]
}

// statusCacheTTL kısa tutulur — durum raporu en fazla bu kadar bayat olabilir.
const statusCacheTTL = 5 * time.Second

func NewContainerService(runtime containers.Runtime, registry *containers.Registry) ContainerService {
	return &containerService{
		runtime:     runtime,
		registry:    registry,
		statusCache: cache.New[string, ClientStatusResult](statusCacheTTL, time.Minute),
	}
}

func (s *containerService) ExecuteQuery(ctx context.Context, clientID, query string) (string, error) {
	ref, bound := s.registry.Lookup(clientID)
	if !bound {
		return "", fmt.Errorf("%w: no container for client %s", pkg.ErrNotFound, clientID)
	}

	stdout, err := s.runtime.Exec(ctx, ref.ContainerID, []string{"filo-query", query})
	if err != nil {
		return "", fmt.Errorf("query failed on client %s: %w", clientID, err)
	}

	return strings.TrimSpace(stdout), nil
}

func (s *containerService) ClientStatus(ctx context.Context, clientID string) (*ClientStatusResult, error) {
	if cached, ok := s.statusCache.Get(clientID); ok {
		return &cached, nil
	}

	result := ClientStatusResult{Created: "No", Running: "No"}

	ref, bound := s.registry.Lookup(clientID)
	if !bound {
		s.statusCache.Set(clientID, result)
		return &result, nil
	}

	status, err := s.runtime.Inspect(ctx, ref.ContainerID)
	if err != nil {
		// Binding var ama container Docker'dan silinmiş —
		// "created: No" olarak raporla, hata değil
		s.statusCache.Set(clientID, result)
		return &result, nil
	}

	result.Created = "Yes"
	if status.Running {
		result.Running = "Yes"
	}
	s.statusCache.Set(clientID, result)
	return &result, nil
}

func (s *containerService) Mappings() map[string]string {
	return s.registry.Snapshot()
}
