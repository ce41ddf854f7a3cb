package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/hongminglow/pos-audit-be/internal/config"
	"github.com/hongminglow/pos-audit-be/internal/logger"
	"github.com/hongminglow/pos-audit-be/internal/monitor"
	"github.com/hongminglow/pos-audit-be/internal/server"
	"github.com/hongminglow/pos-audit-be/internal/storage"
	"github.com/hongminglow/pos-audit-be/internal/storage/postgres"
	"github.com/hongminglow/pos-audit-be/internal/storage/sqlite"
)

func main() {
	loadLocalEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zl := logger.Must(logger.New(cfg.LogLevel))
	defer func() { _ = zl.Sync() }()
	zap.ReplaceGlobals(zl)

	ctx := context.Background()
	store, err := openStore(ctx, cfg)
	if err != nil {
		zl.Fatal("init database", zap.Error(err))
	}
	defer store.Close()

	pingCtx, cancelPing := context.WithTimeout(ctx, 5*time.Second)
	if err := store.Ping(pingCtx); err != nil {
		zl.Error("database not reachable at startup", zap.Error(err))
	} else {
		zl.Info("database connected", zap.String("driver", cfg.DatabaseDriver))
	}
	cancelPing()

	var mon *monitor.Monitor
	if cfg.HealthCheckSchedule != "" {
		mon = monitor.New(store, logger.Named(zl, "monitor"))
		if err := mon.Start(cfg.HealthCheckSchedule); err != nil {
			zl.Fatal("start monitor", zap.Error(err))
		}
	}

	srv := server.New(cfg, store, zl)

	go func() {
		zl.Info("POS audit backend listening", zap.String("addr", cfg.HTTPAddress()))
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("http server error", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		zl.Error("graceful shutdown error", zap.Error(err))
	}
	if mon != nil {
		mon.Stop()
	}
}

func openStore(ctx context.Context, cfg config.Config) (storage.Store, error) {
	switch cfg.DatabaseDriver {
	case config.DriverSQLite:
		s, err := sqlite.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if cfg.SQLiteBootstrap {
			if err := s.EnsureSchema(ctx); err != nil {
				s.Close()
				return nil, err
			}
		}
		return s, nil
	default:
		return postgres.New(ctx, cfg.DatabaseURL)
	}
}

func loadLocalEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found; relying on existing environment")
	}
}
