package source

// Tile lifecycle events published to the notification bus.
const (
	// EventTileRequested fires immediately before network activity
	// begins for a tile. Never fires on a cache hit.
	EventTileRequested = "tile.requested"

	// EventTileRetrieved fires when the pipeline completes for a tile
	// that fired EventTileRequested, success and terminal failure alike.
	EventTileRetrieved = "tile.retrieved"
)

// Notifier delivers lifecycle events to observers. Publish must never
// block the fetch path; delivery is best-effort with no acknowledgment.
type Notifier interface {
	Publish(event string, tileKey uint64)
}

type nopNotifier struct{}

func (nopNotifier) Publish(string, uint64) {}
