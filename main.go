// Package main, filo backend'inin giriş noktasıdır.
//
// Bu dosyanın görevi dependency injection "wire-up":
//  1. Config'i yükle
//  2. Database'i başlat (embedded migration'larla)
//  3. Docker runtime ve container registry'yi oluştur
//  4. WebSocket hub'ını başlat
//  5. Repository → Service → Handler katmanlarını bağla
//  6. İlk operatörü bootstrap et
//  7. Health monitor'ü başlat
//  8. HTTP server + graceful shutdown
//
// Global değişken YOK — her şey burada oluşturulup birbirine bağlanır.
package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/akinalp/filo/config"
	"github.com/akinalp/filo/containers"
	"github.com/akinalp/filo/database"
	"github.com/akinalp/filo/middleware"
	"github.com/akinalp/filo/models"
	"github.com/akinalp/filo/pkg"
	"github.com/akinalp/filo/pkg/email"
	"github.com/akinalp/filo/repository"
	"github.com/akinalp/filo/ws"
	"github.com/rs/cors"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("[main] filo server starting...")

	startedAt := time.Now()

	// ─── Config ───
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[main] failed to load config: %v", err)
	}
	log.Printf("[main] config loaded (cluster=%s, port=%d)", cfg.Cluster.Name, cfg.Server.Port)

	// ─── Database ───
	migrations, err := fs.Sub(database.EmbeddedMigrations, "migrations")
	if err != nil {
		log.Fatalf("[main] failed to open embedded migrations: %v", err)
	}

	db, err := database.New(cfg.Database.Path, migrations)
	if err != nil {
		log.Fatalf("[main] failed to initialize database: %v", err)
	}
	defer db.Close()

	// ─── Docker Runtime + Registry ───
	runtime, err := containers.NewDockerRuntime()
	if err != nil {
		log.Fatalf("[main] failed to create docker runtime: %v", err)
	}
	registry := containers.NewRegistry()

	// ─── WebSocket Hub ───
	// Hub, fleet event'lerini bağlı operatör client'larına yayınlar.
	// Service'ler hub'a EventPublisher interface'i üzerinden erişir.
	hub := ws.NewHub()
	go hub.Run()

	// ─── Alert Sender ───
	// API key yoksa alertler log'a düşer — development'ta email kurulumu gerekmez
	var alerts email.AlertSender
	if cfg.Alert.ResendAPIKey != "" && cfg.Alert.ToEmail != "" {
		alerts = email.NewResendSender(cfg.Alert.ResendAPIKey, cfg.Alert.FromEmail, cfg.Alert.ToEmail)
	} else {
		alerts = email.NewLogSender()
		log.Println("[main] email alerting disabled, alerts go to log")
	}

	// ─── Katmanlar ───
	repos := initRepositories(db.Conn)
	svcs := initServices(cfg, db.Conn, repos, runtime, registry, hub, alerts)
	hdls := initHandlers(svcs, hub, cfg.Cluster.Name, startedAt)
	authMw := middleware.NewAuthMiddleware(svcs.Auth, repos.Operator)

	// ─── Operator Bootstrap ───
	if err := bootstrapOperator(cfg, repos.Operator); err != nil {
		log.Fatalf("[main] failed to bootstrap operator: %v", err)
	}

	// ─── Health Monitor ───
	svcs.Monitor.Start()
	defer svcs.Monitor.Stop()

	// ─── Router + CORS ───
	mux := http.NewServeMux()
	registerRoutes(mux, hdls, authMw)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      corsHandler.Handler(mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ─── Graceful Shutdown ───
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("[main] server listening on %s", cfg.Server.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[main] server error: %v", err)
		}
	}()

	<-done
	log.Println("[main] shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("[main] forced shutdown: %v", err)
	}

	log.Println("[main] server stopped gracefully")
}

// bootstrapOperator, OPERATOR_USERNAME/OPERATOR_PASSWORD verilmişse ve
// o kullanıcı adı yoksa ilk operatörü oluşturur. İki env de boşsa atlanır —
// login endpoint'i mevcut operatörlerle çalışmaya devam eder.
func bootstrapOperator(cfg *config.Config, operatorRepo repository.OperatorRepository) error {
	username := cfg.Auth.BootstrapUsername
	password := cfg.Auth.BootstrapPassword
	if username == "" || password == "" {
		return nil
	}

	_, err := operatorRepo.GetByUsername(context.Background(), username)
	if err == nil {
		return nil // zaten var
	}
	if !errors.Is(err, pkg.ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	op := &models.Operator{Username: username, PasswordHash: string(hash)}
	if err := operatorRepo.Create(context.Background(), op); err != nil {
		return err
	}

	log.Printf("[main] bootstrap operator %q created", username)
	return nil
}
