package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTileKeyIsDeterministic(t *testing.T) {
	a := Tile{X: 2, Y: 3, Z: 5}
	b := Tile{X: 2, Y: 3, Z: 5}
	assert.Equal(t, a.Key(), b.Key())
}

func TestTileKeyDistinguishesTiles(t *testing.T) {
	keys := map[uint64]Tile{}
	tiles := []Tile{
		{X: 0, Y: 0, Z: 0},
		{X: 0, Y: 0, Z: 1},
		{X: 1, Y: 0, Z: 1},
		{X: 0, Y: 1, Z: 1},
		{X: 2, Y: 3, Z: 5},
		{X: 3, Y: 2, Z: 5},
	}
	for _, tile := range tiles {
		key := tile.Key()
		prev, dup := keys[key]
		assert.False(t, dup, "key collision between %+v and %+v", prev, tile)
		keys[key] = tile
	}
}
