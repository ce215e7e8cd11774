package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mapgrid/tilefetch/internal/source"
)

func TestMapCacheRoundtrip(t *testing.T) {
	c := NewMapCache()
	key := TileCacheKey{SourceKey: "osm", X: 1, Y: 2, Z: 3}

	_, exists, err := c.Get(key)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, c.Set(key, []byte("tile")))

	data, exists, err := c.Get(key)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, TileCacheValue("tile"), data)
}

func TestMapCacheSeparatesSources(t *testing.T) {
	c := NewMapCache()

	require.NoError(t, c.Set(TileCacheKey{SourceKey: "base", X: 1, Y: 2, Z: 3}, []byte("base-tile")))
	require.NoError(t, c.Set(TileCacheKey{SourceKey: "overlay", X: 1, Y: 2, Z: 3}, []byte("overlay-tile")))

	data, exists, err := c.Get(TileCacheKey{SourceKey: "base", X: 1, Y: 2, Z: 3})
	require.NoError(t, err)
	require.True(t, exists)
	assert.Equal(t, TileCacheValue("base-tile"), data)

	data, exists, err = c.Get(TileCacheKey{SourceKey: "overlay", X: 1, Y: 2, Z: 3})
	require.NoError(t, err)
	require.True(t, exists)
	assert.Equal(t, TileCacheValue("overlay-tile"), data)
}

func TestGatewayMapsTileToCacheKey(t *testing.T) {
	c := NewMapCache()
	g := NewGateway(c)

	require.NoError(t, g.Store(source.Tile{X: 4, Y: 5, Z: 6}, "osm", []byte("tile")))

	data, exists, err := c.Get(TileCacheKey{SourceKey: "osm", X: 4, Y: 5, Z: 6})
	require.NoError(t, err)
	require.True(t, exists)
	assert.Equal(t, TileCacheValue("tile"), data)

	got, exists, err := g.Lookup(source.Tile{X: 4, Y: 5, Z: 6}, "osm")
	require.NoError(t, err)
	require.True(t, exists)
	assert.Equal(t, []byte("tile"), got)
}
