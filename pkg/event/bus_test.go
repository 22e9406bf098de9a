package event

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublishDispatchesInRegistrationOrder(t *testing.T) {
	bus := NewBus()

	var order []string
	bus.Subscribe("t", func(ctx context.Context, payload interface{}) {
		order = append(order, "first")
	})
	bus.Subscribe("t", func(ctx context.Context, payload interface{}) {
		order = append(order, "second")
	})

	bus.Publish(context.Background(), "t", nil)
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestPublishIsTopicScoped(t *testing.T) {
	bus := NewBus()

	called := false
	bus.Subscribe("a", func(ctx context.Context, payload interface{}) {
		called = true
	})

	bus.Publish(context.Background(), "b", nil)
	assert.False(t, called)
}

func TestPublishPassesPayload(t *testing.T) {
	bus := NewBus()

	var got interface{}
	bus.Subscribe("t", func(ctx context.Context, payload interface{}) {
		got = payload
	})

	bus.Publish(context.Background(), "t", 42)
	assert.Equal(t, 42, got)
}

func TestPublishWithoutSubscribersIsNoop(t *testing.T) {
	bus := NewBus()
	assert.NotPanics(t, func() {
		bus.Publish(context.Background(), "t", nil)
	})
}
