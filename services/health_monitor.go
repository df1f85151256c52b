package services

import (
	"context"
	"log"
	"time"

	"github.com/akinalp/filo/containers"
	"github.com/akinalp/filo/models"
	"github.com/akinalp/filo/pkg/email"
	"github.com/akinalp/filo/repository"
	"github.com/akinalp/filo/ws"
)

// HealthMonitor, kayıtlı tüm container'ları periyodik olarak denetleyen
// arka plan görevidir. Her turda:
//   - container durumunu inspect eder,
//   - çalışmayanları yeniden başlatır,
//   - her client için bir health_samples satırı yazar,
//   - restart/unhealthy olaylarını hub'a yayınlar,
//   - restart başarısız olursa alarm e-postası gönderir,
//   - retention penceresi dışındaki eski örnekleri siler.
type HealthMonitor struct {
	runtime    containers.Runtime
	registry   *containers.Registry
	healthRepo repository.HealthHistoryRepository
	hub        ws.EventPublisher
	alerts     email.AlertSender

	interval  time.Duration
	retention time.Duration
	stopCh    chan struct{}
	doneCh    chan struct{}
}

func NewHealthMonitor(
	runtime containers.Runtime,
	registry *containers.Registry,
	healthRepo repository.HealthHistoryRepository,
	hub ws.EventPublisher,
	alerts email.AlertSender,
	interval time.Duration,
	retention time.Duration,
) *HealthMonitor {
	return &HealthMonitor{
		runtime:    runtime,
		registry:   registry,
		healthRepo: healthRepo,
		hub:        hub,
		alerts:     alerts,
		interval:   interval,
		retention:  retention,
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
	}
}

// Start, izleme döngüsünü kendi goroutine'inde başlatır.
func (m *HealthMonitor) Start() {
	go m.run()
	log.Printf("[monitor] started (interval: %s, retention: %s)", m.interval, m.retention)
}

// Stop, döngüyü durdurur ve süren turun bitmesini bekler.
func (m *HealthMonitor) Stop() {
	close(m.stopCh)
	<-m.doneCh
	log.Println("[monitor] stopped")
}

func (m *HealthMonitor) run() {
	defer close(m.doneCh)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.Sweep(context.Background())
		case <-m.stopCh:
			return
		}
	}
}

// Sweep, tek bir denetim turu yürütür. Testlerden doğrudan çağrılabilir.
func (m *HealthMonitor) Sweep(ctx context.Context) {
	for _, clientID := range m.registry.ClientIDs() {
		ref, bound := m.registry.Lookup(clientID)
		if !bound {
			continue // tur sırasında unbind edilmiş olabilir
		}
		m.checkClient(ctx, clientID, ref)
	}

	m.prune(ctx)
}

func (m *HealthMonitor) checkClient(ctx context.Context, clientID string, ref containers.ContainerRef) {
	sample := models.HealthSample{
		ClientID:    clientID,
		ContainerID: ref.ContainerID,
	}

	status, err := m.runtime.Inspect(ctx, ref.ContainerID)
	if err != nil {
		log.Printf("[monitor] inspect failed for client %s: %v", clientID, err)
		sample.State = "missing"
		m.record(ctx, &sample)
		m.hub.Broadcast(ws.Event{
			Op: ws.OpContainerUnhealthy,
			Data: ws.ContainerEventData{
				ClientID:      clientID,
				ContainerID:   ref.ContainerID,
				ContainerName: ref.Name,
				State:         "missing",
			},
		})
		// Container daemon'dan silinmiş — binding'i bırak ki client
		// yeniden provision edilebilsin
		m.registry.Unbind(clientID)
		return
	}

	sample.State = status.State
	sample.Healthy = status.Running

	if !status.Running {
		if err := m.runtime.Restart(ctx, ref.ContainerID); err != nil {
			log.Printf("[monitor] restart failed for client %s: %v", clientID, err)
			if alertErr := m.alerts.SendContainerAlert(ctx, clientID, ref.Name, "restart failed: "+err.Error()); alertErr != nil {
				log.Printf("[monitor] alert email failed: %v", alertErr)
			}
			m.hub.Broadcast(ws.Event{
				Op: ws.OpContainerUnhealthy,
				Data: ws.ContainerEventData{
					ClientID:      clientID,
					ContainerID:   ref.ContainerID,
					ContainerName: ref.Name,
					State:         status.State,
				},
			})
		} else {
			log.Printf("[monitor] restarted container %s (client %s)", ref.Name, clientID)
			sample.Restarted = true
			m.hub.Broadcast(ws.Event{
				Op: ws.OpContainerRestarted,
				Data: ws.ContainerEventData{
					ClientID:      clientID,
					ContainerID:   ref.ContainerID,
					ContainerName: ref.Name,
					State:         status.State,
				},
			})
		}
	}

	m.record(ctx, &sample)
}

func (m *HealthMonitor) record(ctx context.Context, sample *models.HealthSample) {
	if err := m.healthRepo.Insert(ctx, sample); err != nil {
		log.Printf("[monitor] failed to record health sample for client %s: %v", sample.ClientID, err)
	}
}

func (m *HealthMonitor) prune(ctx context.Context) {
	cutoff := time.Now().Add(-m.retention)
	deleted, err := m.healthRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		log.Printf("[monitor] retention prune failed: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("[monitor] pruned %d old health samples", deleted)
	}
}
