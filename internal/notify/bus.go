package notify

import (
	"sync"

	"github.com/mapgrid/tilefetch/internal/source"
)

// Event is one tile lifecycle notification.
type Event struct {
	Name    string
	TileKey uint64
}

// Bus is an in-process fire-and-forget notifier. Events are handed to
// a dedicated dispatch goroutine through a buffered channel and dropped
// when the buffer is full, so publishers never block on observers.
type Bus struct {
	events chan Event
	done   chan struct{}

	mu        sync.RWMutex
	observers []func(Event)
}

var _ source.Notifier = (*Bus)(nil)

func NewBus(buffer int) *Bus {
	if buffer <= 0 {
		buffer = 64
	}
	b := &Bus{
		events: make(chan Event, buffer),
		done:   make(chan struct{}),
	}
	go b.dispatch()
	return b
}

func (b *Bus) Subscribe(fn func(Event)) {
	b.mu.Lock()
	b.observers = append(b.observers, fn)
	b.mu.Unlock()
}

func (b *Bus) Publish(event string, tileKey uint64) {
	select {
	case b.events <- Event{Name: event, TileKey: tileKey}:
	default:
		// Observers are behind; dropping beats blocking the fetch path.
	}
}

func (b *Bus) dispatch() {
	for {
		select {
		case ev := <-b.events:
			b.mu.RLock()
			observers := b.observers
			b.mu.RUnlock()

			for _, fn := range observers {
				fn(ev)
			}
		case <-b.done:
			return
		}
	}
}

func (b *Bus) Close() {
	close(b.done)
}
