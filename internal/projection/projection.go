package projection

import (
	"github.com/paulmach/orb/maptile"

	"github.com/mapgrid/tilefetch/internal/source"
)

// Mercator is the standard web-mercator tile pyramid: X wraps around
// the antimeridian, Y clamps to the pole rows, zoom is bounded.
type Mercator struct {
	MinZoom int
	MaxZoom int
}

var _ source.Projection = (*Mercator)(nil)

func New(minZoom, maxZoom int) *Mercator {
	return &Mercator{
		MinZoom: minZoom,
		MaxZoom: maxZoom,
	}
}

func (p *Mercator) Normalize(t source.Tile) source.Tile {
	if t.Z < 0 {
		return t
	}

	n := 1 << uint(t.Z)
	t.X = ((t.X % n) + n) % n
	if t.Y < 0 {
		t.Y = 0
	}
	if t.Y > n-1 {
		t.Y = n - 1
	}

	return t
}

func (p *Mercator) Contains(t source.Tile) bool {
	if t.Z < p.MinZoom || t.Z > p.MaxZoom {
		return false
	}
	if t.X < 0 || t.Y < 0 {
		return false
	}
	return maptile.New(uint32(t.X), uint32(t.Y), maptile.Zoom(t.Z)).Valid()
}
