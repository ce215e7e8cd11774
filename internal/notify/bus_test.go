package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusDeliversToSubscribers(t *testing.T) {
	bus := NewBus(8)
	defer bus.Close()

	received := make(chan Event, 1)
	bus.Subscribe(func(ev Event) {
		received <- ev
	})

	bus.Publish("tile.requested", 42)

	select {
	case ev := <-received:
		assert.Equal(t, "tile.requested", ev.Name)
		assert.Equal(t, uint64(42), ev.TileKey)
	case <-time.After(2 * time.Second):
		require.Fail(t, "event was not delivered")
	}
}

func TestBusPublishNeverBlocks(t *testing.T) {
	bus := NewBus(1)
	defer bus.Close()

	block := make(chan struct{})
	bus.Subscribe(func(Event) {
		<-block
	})

	start := time.Now()
	for i := 0; i < 100; i++ {
		bus.Publish("tile.retrieved", uint64(i))
	}
	assert.Less(t, time.Since(start), time.Second)

	close(block)
}
