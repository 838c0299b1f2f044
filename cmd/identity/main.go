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
		cfg.ServiceName = "identity"
	}

	deps, cleanup, err := initializer.InitializeIdentity(cfg)
	defer cleanup() //nolint: errcheck
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	fiberApp := webapi.SetupIdentityApp(app.NewIdentity(deps, cfg))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		deps.Logger.Info("Shutting down")
		_ = fiberApp.ShutdownWithTimeout(10 * time.Second)
	}()

	addr := cfg.Server.Addr()
	deps.Logger.Info("Starting server", "env", cfg.Env, "address", addr, "scheme", cfg.Server.Scheme)
	return fiberApp.Listen(addr)
}
