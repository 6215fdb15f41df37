package main

import (
	"context"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	ledgerv1 "github.com/jcmexdev/ecommerce-gateway/internal/api/ledger/v1"
	"github.com/jcmexdev/ecommerce-gateway/internal/ledger-service/app"
	"github.com/jcmexdev/ecommerce-gateway/internal/ledger-service/sqlite"
	"github.com/jcmexdev/ecommerce-gateway/internal/pkg/config"
	"github.com/jcmexdev/ecommerce-gateway/internal/pkg/events"
	"github.com/jcmexdev/ecommerce-gateway/internal/pkg/rpc"
	"github.com/jcmexdev/ecommerce-gateway/internal/pkg/telemetry"
)

func main() {
	cfg := config.LoadLedger()
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

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		slog.Error("failed to create data directory", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}
	repo, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open ledger database", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer repo.Close()

	var publisher events.Publisher = events.NoopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.KafkaBrokers, config.OrderCreatedTopic)
		slog.Info("publishing order events", "topic", config.OrderCreatedTopic, "brokers", cfg.KafkaBrokers)
	}
	defer publisher.Close()

	lis, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		slog.Error("failed to listen", "addr", cfg.Addr, "error", err)
		os.Exit(1)
	}

	grpcServer := rpc.NewServer()
	ledgerv1.RegisterLedgerServer(grpcServer, app.NewLedgerServer(repo, publisher))

	go func() {
		<-ctx.Done()
		slog.Info("shutting down ledger service")
		grpcServer.GracefulStop()
	}()

	slog.Info("ledger service gRPC running", "addr", cfg.Addr, "db", cfg.DBPath)
	if err := grpcServer.Serve(lis); err != nil {
		slog.Error("failed to serve", "error", err)
		os.Exit(1)
	}
}
