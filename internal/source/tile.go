package source

import (
	"github.com/paulmach/orb/maptile"
)

// Tile identifies one raster tile in the quad-tree tile pyramid.
// Coordinates are expected to be normalized by the projection
// collaborator before the pipeline touches the cache or the network.
type Tile struct {
	X int
	Y int
	Z int
}

// Key encodes the tile as a single integer: zoom level in the top six
// bits, quadkey in the rest. Deterministic across processes; used as
// the payload of lifecycle notifications.
func (t Tile) Key() uint64 {
	qk := maptile.New(uint32(t.X), uint32(t.Y), maptile.Zoom(t.Z)).Quadkey()
	return uint64(t.Z)<<58 | qk
}
