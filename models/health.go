package models

import "time"

// HealthSample, health monitor'ün tek bir sweep'te bir container için
// kaydettiği durum örneği. services.HealthMonitor tarafından periyodik
// üretilir, GET /api/clients/{clientId}/health ile sorgulanır.
// Restarted true ise monitor o sweep'te container'ı yeniden başlatmıştır.
type HealthSample struct {
	ID          string    `json:"id"`
	ClientID    string    `json:"client_id"`
	ContainerID string    `json:"container_id"`
	State       string    `json:"state"` // docker inspect state: running, exited, dead...
	Healthy     bool      `json:"healthy"`
	Restarted   bool      `json:"restarted"`
	SampledAt   time.Time `json:"sampled_at"`
}
