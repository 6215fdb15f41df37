package main

import (
	"context"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogv1 "github.com/jcmexdev/ecommerce-gateway/internal/api/catalog/v1"
	"github.com/jcmexdev/ecommerce-gateway/internal/catalog-service/app"
	"github.com/jcmexdev/ecommerce-gateway/internal/pkg/cache"
	"github.com/jcmexdev/ecommerce-gateway/internal/pkg/config"
	"github.com/jcmexdev/ecommerce-gateway/internal/pkg/events"
	"github.com/jcmexdev/ecommerce-gateway/internal/pkg/rpc"
	"github.com/jcmexdev/ecommerce-gateway/internal/pkg/telemetry"
)

const catalogNamespace = "catalog"

func main() {
	cfg := config.LoadCatalog()
	telemetry.InitLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdown, err := telemetry.SetupTracer(ctx, cfg.ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		slog.Error("failed to initialise tracer", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			slog.Error("tracer shutdown error", "error", err)
		}
	}()

	lis, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		slog.Error("failed to listen", "addr", cfg.Addr, "error", err)
		os.Exit(1)
	}

	var store cache.Cache
	switch cfg.Store {
	case "memory":
		store = cache.NewMemoryCache(catalogNamespace)
	default:
		store = cache.NewRedisCache(cfg.RedisAddr, catalogNamespace)
	}
	slog.Info("catalog store selected", "store", cfg.Store, "redis_addr", cfg.RedisAddr)

	catalogSrv := app.NewCatalogServer(store)
	grpcServer := rpc.NewServer()
	catalogv1.RegisterCatalogServer(grpcServer, catalogSrv)

	if len(cfg.KafkaBrokers) > 0 {
		consumer := events.NewKafkaConsumer(cfg.KafkaBrokers, config.OrderCreatedTopic, cfg.KafkaGroupID, catalogSrv.HandleOrderCreated)
		go func() {
			if err := consumer.Run(ctx); err != nil {
				slog.Error("order_created consumer stopped", "error", err)
			}
		}()
		slog.Info("consuming order events", "topic", config.OrderCreatedTopic, "brokers", cfg.KafkaBrokers)
	}

	go func() {
		<-ctx.Done()
		slog.Info("shutting down catalog service")
		grpcServer.GracefulStop()
	}()

	slog.Info("catalog service gRPC running", "addr", cfg.Addr)
	if err := grpcServer.Serve(lis); err != nil {
		slog.Error("failed to serve", "error", err)
		os.Exit(1)
	}
}
