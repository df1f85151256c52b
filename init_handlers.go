// Package main — handler katmanı wire-up.
package main

import (
	"time"

	"github.com/akinalp/filo/handlers"
	"github.com/akinalp/filo/pkg/ratelimit"
	"github.com/akinalp/filo/ws"
)

// Handlers, tüm HTTP handler instance'larını tutan container struct.
type Handlers struct {
	Auth      *handlers.AuthHandler
	Fleet     *handlers.FleetHandler
	Container *handlers.ContainerHandler
	Status    *handlers.StatusHandler
	WS        *ws.Handler
}

// initHandlers, service'lerden handler'ları oluşturur.
// Login rate limiter: IP başına 2 dakikada 5 deneme.
func initHandlers(svcs *Services, hub *ws.Hub, cluster string, startedAt time.Time) *Handlers {
	loginLimiter := ratelimit.NewLimiter(5, 2*time.Minute)

	return &Handlers{
		Auth:      handlers.NewAuthHandler(svcs.Auth, loginLimiter),
		Fleet:     handlers.NewFleetHandler(svcs.Fleet, cluster),
		Container: handlers.NewContainerHandler(svcs.Provision, svcs.Container, svcs.Fleet),
		Status:    handlers.NewStatusHandler(startedAt),
		WS:        ws.NewHandler(hub, svcs.Auth),
	}
}
