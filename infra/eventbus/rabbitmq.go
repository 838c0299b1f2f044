package eventbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/amirasaad/corebank/pkg/config"
	"github.com/amirasaad/corebank/pkg/domain/events"
	"github.com/amirasaad/corebank/pkg/eventbus"
	amqp "github.com/rabbitmq/amqp091-go"
)

const exchangeKind = "topic"

// ErrDeliveriesClosed is returned by Start when the broker closes the
// delivery stream before the context is cancelled.
var ErrDeliveriesClosed = errors.New("rabbitmq: delivery channel closed")

func dial(cfg *config.RabbitMQ) (*amqp.Connection, error) {
	timeout := cfg.DialTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return amqp.DialConfig(cfg.URL, amqp.Config{Dial: amqp.DefaultDial(timeout)})
}

func declareExchange(ch *amqp.Channel, name string) error {
	return ch.ExchangeDeclare(
		name,
		exchangeKind,
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
}

// RabbitPublisher publishes lifecycle events to a durable topic exchange.
// The connection is opened on first use and reopened on the next publish
// after it drops.
type RabbitPublisher struct {
	cfg    *config.RabbitMQ
	logger *slog.Logger

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewRabbitPublisher creates a publisher. It does not connect.
func NewRabbitPublisher(cfg *config.RabbitMQ, logger *slog.Logger) *RabbitPublisher {
	return &RabbitPublisher{
		cfg:    cfg,
		logger: logger.With("bus", "rabbitmq", "exchange", cfg.Exchange),
	}
}

// Publish sends evt as persistent JSON. Failures are logged and dropped.
func (p *RabbitPublisher) Publish(ctx context.Context, evt events.Event) {
	log := p.logger.With("event_id", evt.ID(), "action", evt.Type())

	body, err := events.Encode(evt)
	if err != nil {
		log.Error("Event encoding failed", "error", err)
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channel()
	if err != nil {
		log.Error("Event publish failed", "error", err)
		return
	}
	err = ch.PublishWithContext(ctx,
		p.cfg.Exchange,
		p.cfg.RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    evt.ID().String(),
			Type:         string(evt.Type()),
			Timestamp:    evt.OccurredAt(),
			Body:         body,
		},
	)
	if err != nil {
		p.reset()
		log.Error("Event publish failed", "error", err)
		return
	}
	log.Info("Event published")
}

// channel returns an open channel, dialing when needed. Callers hold p.mu.
func (p *RabbitPublisher) channel() (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	if p.conn == nil || p.conn.IsClosed() {
		conn, err := dial(p.cfg)
		if err != nil {
			return nil, fmt.Errorf("dial: %w", err)
		}
		p.conn = conn
	}
	ch, err := p.conn.Channel()
	if err != nil {
		p.reset()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := declareExchange(ch, p.cfg.Exchange); err != nil {
		p.reset()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	p.ch = ch
	return ch, nil
}

func (p *RabbitPublisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

// Close releases the broker connection.
func (p *RabbitPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reset()
	return nil
}

// RabbitConsumer binds the service queue to the lifecycle exchange and feeds
// deliveries to a handler on a fixed pool of workers.
//
// A delivery is acked when the handler succeeds. Any failure, including a
// body that does not decode, is rejected without requeue so the broker
// routes it to the dead-letter exchange when one is configured.
type RabbitConsumer struct {
	cfg     *config.RabbitMQ
	handler eventbus.HandlerFunc
	logger  *slog.Logger

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewRabbitConsumer creates a consumer. Start connects and declares topology.
func NewRabbitConsumer(cfg *config.RabbitMQ, handler eventbus.HandlerFunc, logger *slog.Logger) *RabbitConsumer {
	return &RabbitConsumer{
		cfg:     cfg,
		handler: handler,
		logger:  logger.With("bus", "rabbitmq", "queue", cfg.Queue),
	}
}

// Start consumes until ctx is cancelled or the delivery stream closes.
func (c *RabbitConsumer) Start(ctx context.Context) error {
	deliveries, err := c.setup()
	if err != nil {
		return err
	}

	workers := c.cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	c.logger.Info("Consumer started", "workers", workers, "routing_key", c.cfg.RoutingKey)

	var closed bool
	var closedOnce sync.Once
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case d, ok := <-deliveries:
					if !ok {
						closedOnce.Do(func() { closed = true })
						return
					}
					c.handle(ctx, d)
				}
			}
		}()
	}
	wg.Wait()

	if closed && ctx.Err() == nil {
		c.logger.Error("Consumer stopped", "error", ErrDeliveriesClosed)
		return ErrDeliveriesClosed
	}
	c.logger.Info("Consumer stopped")
	return nil
}

func (c *RabbitConsumer) setup() (<-chan amqp.Delivery, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	conn, err := dial(c.cfg)
	if err != nil {
		return nil, fmt.Errorf("dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	c.conn, c.ch = conn, ch

	if err := declareExchange(ch, c.cfg.Exchange); err != nil {
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	var args amqp.Table
	if dlx := c.cfg.DeadLetterExchange; dlx != "" {
		if err := c.declareDeadLetter(ch, dlx); err != nil {
			return nil, err
		}
		args = amqp.Table{"x-dead-letter-exchange": dlx}
	}

	q, err := ch.QueueDeclare(
		c.cfg.Queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		args,
	)
	if err != nil {
		return nil, fmt.Errorf("declare queue: %w", err)
	}
	if err := ch.QueueBind(q.Name, c.cfg.RoutingKey, c.cfg.Exchange, false, nil); err != nil {
		return nil, fmt.Errorf("bind queue: %w", err)
	}
	if c.cfg.Prefetch > 0 {
		if err := ch.Qos(c.cfg.Prefetch, 0, false); err != nil {
			return nil, fmt.Errorf("set qos: %w", err)
		}
	}

	deliveries, err := ch.Consume(
		q.Name,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("consume: %w", err)
	}
	return deliveries, nil
}

// declareDeadLetter declares the dead-letter exchange and a parking queue
// bound to every routing key, so rejected events stay inspectable.
func (c *RabbitConsumer) declareDeadLetter(ch *amqp.Channel, dlx string) error {
	if err := declareExchange(ch, dlx); err != nil {
		return fmt.Errorf("declare dead-letter exchange: %w", err)
	}
	dlq := c.cfg.Queue + ".dlq"
	if _, err := ch.QueueDeclare(dlq, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare dead-letter queue: %w", err)
	}
	if err := ch.QueueBind(dlq, "#", dlx, false, nil); err != nil {
		return fmt.Errorf("bind dead-letter queue: %w", err)
	}
	return nil
}

func (c *RabbitConsumer) handle(ctx context.Context, d amqp.Delivery) {
	log := c.logger.With("message_id", d.MessageId, "delivery_tag", d.DeliveryTag)
	defer func() {
		if r := recover(); r != nil {
			log.Error("Panic recovered in event handler", "panic", r, "stack", string(debug.Stack()))
			c.reject(log, d)
		}
	}()

	evt, err := events.Decode(d.Body)
	if err != nil {
		log.Warn("Undecodable message rejected", "error", err)
		c.reject(log, d)
		return
	}
	log = log.With("event_id", evt.ID(), "action", evt.Type())

	if err := c.handler(ctx, evt); err != nil {
		log.Error("Event handling failed", "error", err)
		c.reject(log, d)
		return
	}
	if err := d.Ack(false); err != nil {
		log.Error("Ack failed", "error", err)
		return
	}
	log.Debug("Event handled")
}

func (c *RabbitConsumer) reject(log *slog.Logger, d amqp.Delivery) {
	if err := d.Nack(false, false); err != nil {
		log.Error("Nack failed", "error", err)
	}
}

// Close stops the channel and connection.
func (c *RabbitConsumer) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	var errs []error
	if c.ch != nil {
		errs = append(errs, c.ch.Close())
		c.ch = nil
	}
	if c.conn != nil {
		errs = append(errs, c.conn.Close())
		c.conn = nil
	}
	return errors.Join(errs...)
}

var (
	_ eventbus.Publisher = (*RabbitPublisher)(nil)
	_ eventbus.Consumer  = (*RabbitConsumer)(nil)
)
