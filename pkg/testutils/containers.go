package testutils

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcrabbitmq "github.com/testcontainers/testcontainers-go/modules/rabbitmq"
	"github.com/testcontainers/testcontainers-go/wait"
)

// StartPostgres starts a Postgres container and returns it with its DSN.
func StartPostgres(ctx context.Context) (*tcpostgres.PostgresContainer, string, error) {
	pg, err := tcpostgres.Run(
		ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start Postgres container: %w", err)
	}
	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", err
	}
	return pg, dsn, nil
}

// StartRabbitMQ starts a RabbitMQ broker and returns it with its AMQP URL.
func StartRabbitMQ(ctx context.Context) (*tcrabbitmq.RabbitMQContainer, string, error) {
	rmq, err := tcrabbitmq.Run(ctx,
		"rabbitmq:3.13-management",
		tcrabbitmq.WithAdminUsername("guest"),
		tcrabbitmq.WithAdminPassword("guest"),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start RabbitMQ container: %w", err)
	}
	url, err := rmq.AmqpURL(ctx)
	if err != nil {
		return nil, "", err
	}
	return rmq, url, nil
}

// MigrationsPath is the absolute path of the SQL migrations directory.
func MigrationsPath() string {
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(filename), "../../internal/migrations")
}
