// Package main — HTTP route wire-up.
package main

import (
	"net/http"

	"github.com/akinalp/filo/middleware"
)

// registerRoutes, tüm endpoint'leri mux'a bağlar.
//
// Public: status, uptime, login. Geri kalan her şey operatör token'ı
// gerektirir — authMw.Require() sarar. WebSocket upgrade sırasında
// tarayıcılar custom header gönderemediği için /ws kendi token
// doğrulamasını query parameter üzerinden yapar.
func registerRoutes(mux *http.ServeMux, h *Handlers, authMw *middleware.AuthMiddleware) {
	// Public — load balancer health check'leri ve login
	mux.HandleFunc("GET /api/status", h.Status.GetStatus)
	mux.HandleFunc("GET /api/uptime", h.Status.GetUptime)
	mux.HandleFunc("POST /api/auth/login", h.Auth.Login)

	// Fleet monitoring — operatör token'ı gerektirir
	mux.Handle("GET /api/servers", authMw.Require(
		http.HandlerFunc(h.Fleet.GetServers)))
	mux.Handle("GET /api/clusters/{cluster}/servers", authMw.Require(
		http.HandlerFunc(h.Fleet.GetClusterServers)))
	mux.Handle("GET /api/users/{userId}", authMw.Require(
		http.HandlerFunc(h.Fleet.GetUser)))
	mux.Handle("GET /api/stats", authMw.Require(
		http.HandlerFunc(h.Fleet.GetStats)))

	// Container operasyonları
	mux.Handle("POST /api/users/{userId}/provision", authMw.Require(
		http.HandlerFunc(h.Container.Provision)))
	mux.Handle("GET /api/query/{clientId}/{query}", authMw.Require(
		http.HandlerFunc(h.Container.ExecuteQuery)))
	mux.Handle("GET /api/mappings", authMw.Require(
		http.HandlerFunc(h.Container.GetMappings)))
	mux.Handle("GET /api/status/{clientId}", authMw.Require(
		http.HandlerFunc(h.Container.GetClientStatus)))
	mux.Handle("GET /api/clients/{clientId}/health", authMw.Require(
		http.HandlerFunc(h.Container.GetClientHealth)))

	// WebSocket — fleet event stream, ?token= ile authenticate edilir
	mux.HandleFunc("GET /ws", h.WS.ServeWS)
}
