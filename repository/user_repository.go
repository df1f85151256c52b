// Package repository, veritabanı erişim katmanını tanımlar.
//
// Repository Pattern: service katmanı doğrudan SQL yazmaz, her entity için
// tanımlı interface üzerinden çalışır. Interface sayesinde:
// 1. Test: mock repository ile DB olmadan test edilebilir
// 2. Esneklik: SQLite'tan başka bir store'a geçiş sadece yeni implementasyon ister
// 3. Dependency Inversion: service concrete struct'a değil interface'e bağımlı
package repository

import (
	"context"

	"github.com/akinalp/filo/models"
	"github.com/akinalp/filo/pkg/rowgroup"
)

// UserRepository, kullanıcı veritabanı işlemleri için interface.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)

	// GetWithClients, kullanıcıyı client'larıyla birlikte tek bir LEFT JOIN
	// sorgusuyla getirir ve pkg/rowgroup ile nested view'a materialize eder.
	// Kullanıcı yoksa (nil, false, nil) döner — bu bir hata değildir.
	GetWithClients(ctx context.Context, userID string) (*rowgroup.UserProfile, bool, error)

	Count(ctx context.Context) (int, error)
}
