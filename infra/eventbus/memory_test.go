package eventbus

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/amirasaad/corebank/pkg/domain/customer"
	"github.com/amirasaad/corebank/pkg/domain/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryPublisher_RecordsAndFansOut(t *testing.T) {
	bus := NewWithMemory(slog.Default())
	var seen []events.Action
	bus.Subscribe(func(_ context.Context, evt events.Event) error {
		seen = append(seen, evt.Type())
		return nil
	})
	bus.Subscribe(func(context.Context, events.Event) error {
		return errors.New("handler down")
	})

	bus.Publish(context.Background(), events.NewCustomerCreated(customer.Snapshot{CustomerID: "c-1"}))
	bus.Publish(context.Background(), events.NewCustomerDeleted("c-1", "Jose", "Lema"))

	require.Len(t, bus.Published(), 2)
	assert.Equal(t, []events.Action{events.ActionCustomerCreated, events.ActionCustomerDeleted}, seen)

	bus.ClearPublished()
	assert.Empty(t, bus.Published())
}
