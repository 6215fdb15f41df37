// Package config loads per-process settings from the environment.
package config

import (
	"os"
	"strings"
	"time"
)

// Gateway configures cmd/api-gateway.
type Gateway struct {
	HTTPAddr        string
	CatalogAddr     string
	LedgerAddr      string
	ImageRoot       string
	BackendTimeout  time.Duration
	ShutdownTimeout time.Duration
	LogLevel        string
	OTLPEndpoint    string
	ServiceName     string
}

// Catalog configures cmd/catalog-service.
type Catalog struct {
	Addr         string
	Store        string
	RedisAddr    string
	KafkaBrokers []string
	KafkaGroupID string
	LogLevel     string
	OTLPEndpoint string
	ServiceName  string
}

// Ledger configures cmd/ledger-service.
type Ledger struct {
	Addr         string
	DBPath       string
	KafkaBrokers []string
	LogLevel     string
	OTLPEndpoint string
	ServiceName  string
}

// OrderCreatedTopic carries ledger events consumed by the catalog.
const OrderCreatedTopic = "orders.order_created"

func LoadGateway() Gateway {
	return Gateway{
		HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
		CatalogAddr:     getEnv("CATALOG_SERVICE_ADDR", ":9090"),
		LedgerAddr:      getEnv("LEDGER_SERVICE_ADDR", ":9091"),
		ImageRoot:       getEnv("PRODUCT_IMAGE_ROOT", "http://example.com/airship/images"),
		BackendTimeout:  getDuration("BACKEND_TIMEOUT", 5*time.Second),
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		OTLPEndpoint:    os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		ServiceName:     getEnv("OTEL_SERVICE_NAME", "api-gateway"),
	}
}

func LoadCatalog() Catalog {
	return Catalog{
		Addr:         ":" + getEnv("PORT", "9090"),
		Store:        getEnv("CATALOG_STORE", "redis"),
		RedisAddr:    getEnv("REDIS_ADDR", "redis-cache:6379"),
		KafkaBrokers: getList("KAFKA_BROKERS"),
		KafkaGroupID: getEnv("KAFKA_GROUP_ID", "catalog-service"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		OTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		ServiceName:  getEnv("OTEL_SERVICE_NAME", "catalog-service"),
	}
}

func LoadLedger() Ledger {
	return Ledger{
		Addr:         ":" + getEnv("PORT", "9091"),
		DBPath:       getEnv("LEDGER_DB_PATH", "./data/ledger.db"),
		KafkaBrokers: getList("KAFKA_BROKERS"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		OTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		ServiceName:  getEnv("OTEL_SERVICE_NAME", "ledger-service"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getDuration accepts Go duration strings ("750ms", "5s"); bad values fall back.
func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func getList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
