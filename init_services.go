// Package main — service katmanı wire-up.
package main

import (
	"database/sql"
	"time"

	"github.com/akinalp/filo/config"
	"github.com/akinalp/filo/containers"
	"github.com/akinalp/filo/pkg/email"
	"github.com/akinalp/filo/services"
	"github.com/akinalp/filo/ws"
)

// Services, tüm service instance'larını tutan container struct.
type Services struct {
	Auth      services.AuthService
	Fleet     services.FleetService
	Provision services.ProvisionService
	Container services.ContainerService
	Monitor   *services.HealthMonitor
}

// initServices, repository'ler, runtime ve hub'dan service'leri oluşturur.
// conn, ProvisionService'in transaction'lı yazma yolu için gereklidir.
func initServices(
	cfg *config.Config,
	conn *sql.DB,
	repos *Repositories,
	runtime containers.Runtime,
	registry *containers.Registry,
	hub *ws.Hub,
	alerts email.AlertSender,
) *Services {
	return &Services{
		Auth:  services.NewAuthService(repos.Operator, cfg.Auth.JWTSecret, cfg.Auth.AccessTokenExpiry),
		Fleet: services.NewFleetService(repos.Server, repos.User, repos.Health, repos.Client),
		Provision: services.NewProvisionService(
			conn,
			repos.User,
			repos.Client,
			repos.Server,
			runtime,
			registry,
			hub,
			cfg.Cluster.Name,
			cfg.Docker,
		),
		Container: services.NewContainerService(runtime, registry),
		Monitor: services.NewHealthMonitor(
			runtime,
			registry,
			repos.Health,
			hub,
			alerts,
			time.Duration(cfg.Monitor.Interval)*time.Second,
			time.Duration(cfg.Monitor.RetentionDays)*24*time.Hour,
		),
	}
}
