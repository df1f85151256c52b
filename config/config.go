// Package config, uygulamanın tüm konfigürasyonunu merkezi olarak yönetir.
// Environment variable'lardan okur, .env dosyasını da destekler.
//
// Her yerde ayrı ayrı os.Getenv() çağırmak yerine tek bir Config nesnesi
// taşınır — main.go wire-up sırasında bir kez yüklenir.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config, uygulamanın tüm konfigürasyon değerlerini taşır.
// Her alt bölüm ayrı bir struct — her biri tek bir concern'ü temsil eder.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Cluster  ClusterConfig
	Docker   DockerConfig
	Auth     AuthConfig
	Monitor  MonitorConfig
	Alert    AlertConfig
}

// ServerConfig, HTTP server ayarları.
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig, SQLite database ayarları.
type DatabaseConfig struct {
	Path string // SQLite dosya yolu (ör: ./data/filo.db)
}

// ClusterConfig, bu instance'ın izlediği cluster.
type ClusterConfig struct {
	Name string // GET /api/servers bu cluster'ı sorgular
}

// DockerConfig, container runtime ayarları.
type DockerConfig struct {
	Image     string // Client container'larının imajı (ör: filo/client-server:latest)
	EnvPrefix string // Container'a geçilen env değişkenlerinin prefix'i
}

// AuthConfig, operatör JWT token ayarları.
type AuthConfig struct {
	JWTSecret         string // Token imzalama anahtarı — GİZLİ TUTULMALI
	AccessTokenExpiry int    // Dakika cinsinden (varsayılan: 60)

	// İlk operatör — operators tablosu boşsa açılışta oluşturulur.
	// İkisi de boşsa bootstrap atlanır.
	BootstrapUsername string
	BootstrapPassword string
}

// MonitorConfig, container health monitor ayarları.
type MonitorConfig struct {
	Interval      int // Saniye cinsinden sweep aralığı (varsayılan: 30)
	RetentionDays int // health_samples saklama süresi (varsayılan: 7)
}

// AlertConfig, health alert email ayarları.
// APIKey boş bırakılırsa alerting devre dışı kalır — log'a düşer.
type AlertConfig struct {
	ResendAPIKey string
	FromEmail    string
	ToEmail      string
}

// Load, environment variable'lardan Config oluşturur.
// .env dosyası varsa önce onu yükler (development kolaylığı için).
// Production'da bu dosya olmaz, gerçek env variable'lar kullanılır.
func Load() (*Config, error) {
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("SERVER_PORT", "8000"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	accessExpiry, err := strconv.Atoi(getEnv("JWT_ACCESS_EXPIRY_MINUTES", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_EXPIRY_MINUTES: %w", err)
	}

	interval, err := strconv.Atoi(getEnv("MONITOR_INTERVAL_SECONDS", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid MONITOR_INTERVAL_SECONDS: %w", err)
	}

	retention, err := strconv.Atoi(getEnv("MONITOR_RETENTION_DAYS", "7"))
	if err != nil {
		return nil, fmt.Errorf("invalid MONITOR_RETENTION_DAYS: %w", err)
	}

	jwtSecret := getEnv("JWT_SECRET", "")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	clusterName := getEnv("CLUSTER_NAME", "")
	if clusterName == "" {
		return nil, fmt.Errorf("CLUSTER_NAME environment variable is required")
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: port,
		},
		Database: DatabaseConfig{
			Path: getEnv("DATABASE_PATH", "./data/filo.db"),
		},
		Cluster: ClusterConfig{
			Name: clusterName,
		},
		Docker: DockerConfig{
			Image:     getEnv("DOCKER_CLIENT_IMAGE", "filo/client-server:latest"),
			EnvPrefix: getEnv("DOCKER_ENV_PREFIX", "FILO_"),
		},
		Auth: AuthConfig{
			JWTSecret:         jwtSecret,
			AccessTokenExpiry: accessExpiry,
			BootstrapUsername: getEnv("OPERATOR_USERNAME", ""),
			BootstrapPassword: getEnv("OPERATOR_PASSWORD", ""),
		},
		Monitor: MonitorConfig{
			Interval:      interval,
			RetentionDays: retention,
		},
		Alert: AlertConfig{
			ResendAPIKey: getEnv("RESEND_API_KEY", ""),
			FromEmail:    getEnv("ALERT_FROM_EMAIL", "alerts@filo.app"),
			ToEmail:      getEnv("ALERT_TO_EMAIL", ""),
		},
	}

	return cfg, nil
}

// Addr, HTTP server'ın dinleyeceği adresi döner (ör: "0.0.0.0:8000").
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv, environment variable'ı okur, yoksa fallback değeri döner.
func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}
