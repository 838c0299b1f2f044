package eventbus

import (
	"context"

	"github.com/amirasaad/corebank/pkg/domain/events"
)

// Publisher hands customer lifecycle events to the broker. Publishing is
// fire-and-forget: failures are logged by the implementation and never
// surface to the caller.
type Publisher interface {
	Publish(ctx context.Context, evt events.Event)
}

// HandlerFunc processes one decoded event. A non-nil error rejects the
// delivery.
type HandlerFunc func(ctx context.Context, evt events.Event) error

// Consumer delivers broker messages to a HandlerFunc until ctx is cancelled.
type Consumer interface {
	Start(ctx context.Context) error
	Close() error
}
