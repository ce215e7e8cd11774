package cache

// TileCacheKey addresses one cached tile for one source. SourceKey
// separates entries of different tile sources sharing the same cache.
type TileCacheKey struct {
	SourceKey string
	X         int
	Y         int
	Z         int
}

type TileCacheValue []byte

type TileCache interface {
	Get(TileCacheKey) (TileCacheValue, bool, error)
	Set(TileCacheKey, TileCacheValue) error
}
