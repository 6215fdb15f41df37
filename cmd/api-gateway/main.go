package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"google.golang.org/grpc"

	"github.com/jcmexdev/ecommerce-gateway/internal/api-gateway/core/services"
	"github.com/jcmexdev/ecommerce-gateway/internal/api-gateway/infra/adapters/service"
	"github.com/jcmexdev/ecommerce-gateway/internal/api-gateway/infra/httpx"
	catalogv1 "github.com/jcmexdev/ecommerce-gateway/internal/api/catalog/v1"
	ledgerv1 "github.com/jcmexdev/ecommerce-gateway/internal/api/ledger/v1"
	"github.com/jcmexdev/ecommerce-gateway/internal/pkg/config"
	"github.com/jcmexdev/ecommerce-gateway/internal/pkg/metrics"
	"github.com/jcmexdev/ecommerce-gateway/internal/pkg/rpc"
	"github.com/jcmexdev/ecommerce-gateway/internal/pkg/telemetry"
)

func main() {
	cfg := config.LoadGateway()
	telemetry.InitLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := telemetry.SetupTracer(ctx, cfg.ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		slog.Error("failed to initialise tracer", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTracer(shutdownCtx); err != nil {
			slog.Error("tracer shutdown error", "error", err)
		}
	}()

	catalogConn := createGRPCConn(cfg.CatalogAddr)
	defer catalogConn.Close()

	ledgerConn := createGRPCConn(cfg.LedgerAddr)
	defer ledgerConn.Close()

	catalog := service.NewGRPCCatalogClient(catalogv1.NewCatalogClient(catalogConn), cfg.BackendTimeout)
	ledger := service.NewGRPCLedgerClient(ledgerv1.NewLedgerClient(ledgerConn), cfg.BackendTimeout)

	reg := metrics.NewRegistry()
	gateway := services.NewGateway(catalog, ledger, cfg.ImageRoot, services.WithBatchObserver(reg))
	router := httpx.NewRouter(httpx.NewHandler(gateway), reg)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		<-ctx.Done()
		slog.Info("shutting down api gateway")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("http shutdown error", "error", err)
		}
	}()

	slog.Info("api gateway running",
		"addr", cfg.HTTPAddr,
		"catalog_addr", cfg.CatalogAddr,
		"ledger_addr", cfg.LedgerAddr,
		"image_root", cfg.ImageRoot,
	)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("http server failed", "error", err)
		os.Exit(1)
	}
}

func createGRPCConn(addr string) *grpc.ClientConn {
	conn, err := rpc.Dial(addr)
	if err != nil {
		slog.Error("could not connect", "addr", addr, "error", err)
		os.Exit(1)
	}
	return conn
}
