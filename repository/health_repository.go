package repository

import (
	"context"
	"time"

	"github.com/akinalp/filo/models"
)

// HealthHistoryRepository, health_samples tablosu işlemleri için interface.
// Yazarı services.HealthMonitor'dür; okuma tarafı health endpoint'idir.
type HealthHistoryRepository interface {
	Insert(ctx context.Context, sample *models.HealthSample) error

	// ListByClient, bir client'ın en yeni örneklerini yeniden eskiye sıralı döner.
	ListByClient(ctx context.Context, clientID string, limit int) ([]models.HealthSample, error)

	// DeleteOlderThan, retention süresi geçmiş örnekleri siler.
	// Silinen satır sayısını döner — monitor log'lar.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
