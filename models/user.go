// Package models, uygulamanın domain modellerini tanımlar.
//
// Her model, veritabanındaki bir tablonun tipli Go karşılığıdır.
// Repository katmanı satırları bu struct'lara decode eder — untyped
// map erişimi sadece join sorgularının materialization boundary'sinde
// (pkg/rowgroup) yaşar, oradan öteye tipli yapılar taşınır.
package models

import "time"

// User, platforma kayıtlı bir kullanıcı.
// Şema dış auth sağlayıcısından gelir — emailVerified kolonu bu yüzden
// camelCase'dir ve JSON'da da aynen korunur.
type User struct {
	ID            string     `json:"id"`
	Name          *string    `json:"name"` // *string = nullable
	Email         string     `json:"email"`
	EmailVerified *time.Time `json:"emailVerified"`
	Image         *string    `json:"image"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
