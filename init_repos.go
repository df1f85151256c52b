// Package main — repository katmanı wire-up.
package main

import (
	"database/sql"

	"github.com/akinalp/filo/repository"
)

// Repositories, tüm repository instance'larını tutan container struct.
// Tek struct, fonksiyon imzalarını temiz tutar; yeni repository
// eklendiğinde sadece burası ve initRepositories güncellenir.
type Repositories struct {
	User     repository.UserRepository
	Client   repository.ClientRepository
	Server   repository.ServerRepository
	Health   repository.HealthHistoryRepository
	Operator repository.OperatorRepository
}

// initRepositories, veritabanı bağlantısından tüm repository'leri oluşturur.
// sql.DB thread-safe bir connection pool'dur — paylaşılması güvenlidir.
func initRepositories(conn *sql.DB) *Repositories {
	return &Repositories{
		User:     repository.NewSQLiteUserRepo(conn),
		Client:   repository.NewSQLiteClientRepo(conn),
		Server:   repository.NewSQLiteServerRepo(conn),
		Health:   repository.NewSQLiteHealthRepo(conn),
		Operator: repository.NewSQLiteOperatorRepo(conn),
	}
}
