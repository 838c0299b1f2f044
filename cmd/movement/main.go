package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/amirasaad/corebank/infra/initializer"
	"github.com/amirasaad/corebank/pkg/app"
	"github.com/amirasaad/corebank/pkg/config"
	"github.com/amirasaad/corebank/webapi"
	log "github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}
	if cfg.ServiceName == "" || cfg.ServiceName == "corebank" {
		cfg.ServiceName = "movement"
	}

	deps, cleanup, err := initializer.InitializeMovement(cfg)
	defer cleanup() //nolint: errcheck
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	logger := deps.Logger

	movementApp := app.NewMovement(deps, cfg)
	fiberApp := webapi.SetupMovementApp(movementApp)
	consumer := initializer.NewConsumer(cfg.RabbitMQ, movementApp.EventHandler(), logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return initializer.Run(ctx, consumer)
	})
	g.Go(func() error {
		addr := cfg.Server.Addr()
		logger.Info("Starting server", "env", cfg.Env, "address", addr, "scheme", cfg.Server.Scheme)
		return fiberApp.Listen(addr)
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down")
		return fiberApp.ShutdownWithTimeout(10 * time.Second)
	})
	return g.Wait()
}
