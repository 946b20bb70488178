package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/klasora/console-go/internal/demoserver"
	"github.com/klasora/console-go/pkg/config"
	"github.com/klasora/console-go/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	srv, err := demoserver.New(cfg.DemoServer, logr)
	if err != nil {
		logr.Sugar().Fatalw("failed to build demo server", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv.Start(ctx)
	defer srv.Stop()

	addr := fmt.Sprintf(":%d", cfg.DemoServer.Port)
	logr.Sugar().Infow("demo server starting", "addr", addr, "env", cfg.Env)
	if err := srv.Router().Run(addr); err != nil {
		logr.Sugar().Fatalw("demo server failed", "error", err)
	}
}
