package cache

import (
	"github.com/mapgrid/tilefetch/internal/source"
)

// Gateway adapts a TileCache backend to the pipeline's cache contract.
type Gateway struct {
	cache TileCache
}

var _ source.Cache = (*Gateway)(nil)

func NewGateway(c TileCache) *Gateway {
	return &Gateway{cache: c}
}

func (g *Gateway) Lookup(t source.Tile, sourceKey string) ([]byte, bool, error) {
	return g.cache.Get(TileCacheKey{SourceKey: sourceKey, X: t.X, Y: t.Y, Z: t.Z})
}

func (g *Gateway) Store(t source.Tile, sourceKey string, data []byte) error {
	return g.cache.Set(TileCacheKey{SourceKey: sourceKey, X: t.X, Y: t.Y, Z: t.Z}, data)
}
