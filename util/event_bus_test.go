// util/event_bus_test.go
package util_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/harborworks/causeway-api/util"
)

func TestPublishDetachesPublisherCancellation(t *testing.T) {
	bus := util.NewEventBus()
	seen := make(chan error, 1)
	bus.Subscribe("test.event", func(ctx context.Context, event util.Event) error {
		seen <- ctx.Err()
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	bus.Publish(ctx, "test.event", nil)

	select {
	case err := <-seen:
		assert.NoError(t, err, "handler context must not inherit the publisher's cancellation")
	case <-time.After(time.Second):
		t.Fatal("handler never ran")
	}
}
