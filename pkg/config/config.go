package config

import (
	"fmt"
	"time"
)

type DB struct {
	Url            string `envconfig:"URL"`
	MigrationsPath string `envconfig:"MIGRATIONS_PATH"`
	MaxOpenConns   int    `envconfig:"MAX_OPEN_CONNS" default:"25"`
}

type RabbitMQ struct {
	URL                string        `envconfig:"URL"`
	Exchange           string        `envconfig:"EXCHANGE" default:"customer.events"`
	Queue              string        `envconfig:"QUEUE" default:"movement.customer-events"`
	RoutingKey         string        `envconfig:"ROUTING_KEY" default:"customer.lifecycle"`
	DeadLetterExchange string        `envconfig:"DEAD_LETTER_EXCHANGE"`
	Prefetch           int           `envconfig:"PREFETCH" default:"10"`
	Workers            int           `envconfig:"WORKERS" default:"4"`
	DialTimeout        time.Duration `envconfig:"DIAL_TIMEOUT" default:"5s"`
}

// Identity points the movement service at the customer identity service.
type Identity struct {
	BaseURL string        `envconfig:"BASE_URL" default:"http://localhost:8080/customers"`
	Timeout time.Duration `envconfig:"TIMEOUT" default:"3s"`
}

type Redis struct {
	URL          string        `envconfig:"URL"`
	KeyPrefix    string        `envconfig:"KEY_PREFIX" default:"corebank:"`
	ProcessedTTL time.Duration `envconfig:"PROCESSED_TTL" default:"72h"`
}

type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"json"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[corebank]"`
}

type Server struct {
	Scheme string `envconfig:"SCHEME" default:"http"`
	Host   string `envconfig:"HOST" default:"localhost"`
	Port   int    `envconfig:"PORT" default:"3000"`
}

// Addr is the listen address of the HTTP server.
func (s *Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type App struct {
	Env         string     `envconfig:"APP_ENV" default:"development"`
	ServiceName string     `envconfig:"SERVICE_NAME" default:"corebank"`
	Server      *Server    `envconfig:"SERVER"`
	Log         *Log       `envconfig:"LOG"`
	DB          *DB        `envconfig:"DATABASE"`
	RabbitMQ    *RabbitMQ  `envconfig:"RABBITMQ"`
	Identity    *Identity  `envconfig:"IDENTITY"`
	Redis       *Redis     `envconfig:"REDIS"`
	RateLimit   *RateLimit `envconfig:"RATE_LIMIT"`
}
