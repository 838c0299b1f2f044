package common

import (
	"context"
	"log/slog"

	"github.com/amirasaad/corebank/pkg/domain/events"
	"github.com/amirasaad/corebank/pkg/eventbus"
	"github.com/amirasaad/corebank/pkg/repository"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// KeyExtractor extracts an idempotency key from an event
type KeyExtractor func(events.Event) string

// EventIDKey keys events by their envelope id.
func EventIDKey(e events.Event) string {
	if e.ID() == uuid.Nil {
		return ""
	}
	return e.ID().String()
}

// IdempotencyTracker tracks processed events by key
type IdempotencyTracker struct {
	store    repository.ProcessedEventStore
	inflight singleflight.Group
}

// NewIdempotencyTracker creates a tracker backed by store.
func NewIdempotencyTracker(store repository.ProcessedEventStore) *IdempotencyTracker {
	return &IdempotencyTracker{store: store}
}

// WithIdempotency wraps a handler with idempotency checking middleware.
// A key that was already processed is skipped; concurrent deliveries of the
// same key share one handler call and its result. Keys are marked only after
// the handler succeeds, so a failed attempt can be retried.
func WithIdempotency(
	handler eventbus.HandlerFunc,
	tracker *IdempotencyTracker,
	keyExtractor KeyExtractor,
	handlerName string,
	logger *slog.Logger,
) eventbus.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(ctx context.Context, e events.Event) error {
		key := keyExtractor(e)
		if key == "" {
			return handler(ctx, e)
		}

		log := logger.With(
			"handler", handlerName,
			"action", e.Type(),
			"idempotency_key", key,
		)

		if tracker.seen(ctx, key, log) {
			log.Info("[SKIP] Event already processed")
			return nil
		}

		_, err, shared := tracker.inflight.Do(key, func() (any, error) {
			if tracker.seen(ctx, key, log) {
				return nil, nil
			}
			if err := handler(ctx, e); err != nil {
				return nil, err
			}
			if err := tracker.store.MarkProcessed(ctx, key); err != nil {
				log.Warn("Failed to record processed event", "error", err)
			}
			return nil, nil
		})
		if shared {
			log.Debug("Concurrent delivery collapsed")
		}
		return err
	}
}

// seen treats a store failure as unseen; handlers behind the guard are
// idempotent on their own, so reprocessing is safe.
func (t *IdempotencyTracker) seen(ctx context.Context, key string, log *slog.Logger) bool {
	ok, err := t.store.Seen(ctx, key)
	if err != nil {
		log.Warn("Idempotency lookup failed", "error", err)
		return false
	}
	return ok
}
