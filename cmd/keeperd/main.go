// Package main provides the keeper server binary: the dice HTTP API, the
// observer WebSocket and, when enabled, the gRPC dice service.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/keeper/internal/config"
	"github.com/cory-johannsen/keeper/internal/game/command"
	"github.com/cory-johannsen/keeper/internal/game/dice"
	"github.com/cory-johannsen/keeper/internal/game/engine"
	"github.com/cory-johannsen/keeper/internal/observability"
	"github.com/cory-johannsen/keeper/internal/server"
	"github.com/cory-johannsen/keeper/internal/storage"
	"github.com/cory-johannsen/keeper/internal/transport/grpcapi"
	"github.com/cory-johannsen/keeper/internal/transport/httpapi"
	"github.com/cory-johannsen/keeper/internal/transport/ws"
)

func main() {
	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}

	if err := run(context.Background(), cfg, storage.Open, logger); err != nil {
		logger.Error("server error", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}

// run serves until a signal, ctx cancellation or a service failure. The sheet
// store is closed before run returns, on every path.
func run(ctx context.Context, cfg config.Config, open func(context.Context, config.Config) (*storage.Backend, error), logger *zap.Logger) error {
	start := time.Now()

	logger.Info("starting keeper",
		zap.String("http_addr", cfg.Server.Addr()),
		zap.String("storage", cfg.Storage.Backend),
	)

	backend, err := open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("opening sheet store: %w", err)
	}
	defer backend.Close()
	if err := backend.Ready(ctx); err != nil {
		logger.Warn("sheet store not ready", zap.Error(err))
	}
	store := backend.Store

	registry := command.DefaultRegistry()
	roller := dice.NewLoggedRoller(dice.NewCryptoSource(), logger)
	eng := engine.New(store, roller, logger)
	hub := ws.NewHub(logger)
	dispatcher := command.NewDispatcher(registry, eng, roller, hub, logger)

	handler := httpapi.NewHandler(httpapi.Deps{
		Dispatcher:     dispatcher,
		Commands:       registry,
		Store:          store,
		Ready:          backend.Ready,
		Observers:      hub.Handler(),
		Retention:      cfg.Storage.Retention,
		StaticDir:      cfg.Server.StaticDir,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Logger:         logger,
	})

	lifecycle := server.NewLifecycle(logger)

	if cfg.Storage.SweepInterval > 0 {
		lifecycle.Add("sweeper", server.NewSweeper(store, cfg.Storage.Retention, cfg.Storage.SweepInterval, logger))
	}
	observersDone := make(chan struct{})
	lifecycle.Add("observers", &server.FuncService{
		StartFn: func() error {
			<-observersDone
			return nil
		},
		StopFn: func() {
			hub.CloseAll()
			close(observersDone)
		},
	})
	lifecycle.Add("http", httpapi.NewServer(cfg.Server.Addr(), handler, cfg.Server.ShutdownTimeout, logger))
	if cfg.GRPC.Enabled {
		lifecycle.Add("grpc", grpcapi.NewServer(cfg.GRPC.Addr(), grpcapi.NewService(dispatcher, logger), logger))
	}

	logger.Info("keeper initialized",
		zap.Duration("startup", time.Since(start)),
		zap.Strings("services", lifecycle.Names()),
	)

	return lifecycle.Run(ctx)
}
