package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Gateway   GatewayConfig
	Discovery DiscoveryConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

// GatewayConfig holds payment gateway credentials. When KeyID is empty the
// server falls back to the in-process fake gateway (development only).
type GatewayConfig struct {
	KeyID     string
	KeySecret string
	Currency  string
	Timeout   time.Duration
}

type DiscoveryConfig struct {
	RadiusKm float64
}

func Load() *Config {
	_ = godotenv.Load()
	return &Config{
		Server: ServerConfig{
			Port:         getenv("PORT", "5000"),
			Env:          getenv("APP_ENV", "development"),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			DSN:             getenv("DATABASE_DSN", "host=localhost user=servease password=servease dbname=servease port=5432 sslmode=disable TimeZone=Asia/Kolkata"),
			MaxIdleConns:    getenvInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    getenvInt("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: time.Hour,
		},
		Gateway: GatewayConfig{
			KeyID:     os.Getenv("GATEWAY_KEY_ID"),
			KeySecret: os.Getenv("GATEWAY_KEY_SECRET"),
			Currency:  getenv("GATEWAY_CURRENCY", "INR"),
			Timeout:   15 * time.Second,
		},
		Discovery: DiscoveryConfig{
			RadiusKm: getenvFloat("DISCOVERY_RADIUS_KM", 5),
		},
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getenvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
