package source

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"sync/atomic"
	"time"

	_ "image/jpeg"

	"github.com/mapgrid/tilefetch/pkg/logger"
	"github.com/mapgrid/tilefetch/pkg/metrics"
)

// Defaults applied by New when the corresponding option is zero.
const (
	DefaultRetryCount     = 3
	DefaultRequestTimeout = 60 * time.Second
)

// ErrNoResolver reports a Source constructed without a Resolver. This
// is a configuration fault, not a runtime fetch failure.
var ErrNoResolver = errors.New("source: no resolver configured")

// ErrNoSuchTile reports a tile outside the source's tile pyramid,
// distinct from a fetch that found no image.
var ErrNoSuchTile = errors.New("source: no such tile")

var errEmptyBody = errors.New("empty response body")

// Projection normalizes tile coordinates and answers pyramid
// membership. Implemented by internal/projection.
type Projection interface {
	Normalize(t Tile) Tile
	Contains(t Tile) bool
}

// Cache is the external tile cache, consulted before any network
// activity and populated after a complete successful fetch. Values are
// encoded image bytes. The sourceKey separates entries of different
// sources sharing one cache.
type Cache interface {
	Lookup(t Tile, sourceKey string) ([]byte, bool, error)
	Store(t Tile, sourceKey string, data []byte) error
}

// Options configures a Source. Resolver is required; everything else
// has a usable zero value.
type Options struct {
	Resolver   Resolver
	Transport  Transport
	Cache      Cache
	Projection Projection
	Notifier   Notifier
	Logger     logger.Logger

	// CacheKey distinguishes this source's entries in a shared cache.
	CacheKey string

	RetryCount int
	Timeout    time.Duration
	Cacheable  bool
	Hidden     bool
}

// Source obtains tile images: cache first, then one or more network
// locations fetched under a bounded retry budget and composited in
// resolver order. Safe for concurrent use by many tiles in parallel.
type Source struct {
	resolver   Resolver
	transport  Transport
	cache      Cache
	projection Projection
	notifier   Notifier
	log        logger.Logger

	cacheKey   string
	retryCount int
	timeout    time.Duration
	cacheable  bool
	hidden     atomic.Bool

	defaults *DefaultImages
}

func New(opts Options) (*Source, error) {
	if opts.Resolver == nil {
		return nil, ErrNoResolver
	}
	if opts.Transport == nil {
		opts.Transport = NewHTTPTransport("")
	}
	if opts.Projection == nil {
		opts.Projection = identityProjection{}
	}
	if opts.Notifier == nil {
		opts.Notifier = nopNotifier{}
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	if opts.RetryCount < 1 {
		opts.RetryCount = DefaultRetryCount
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultRequestTimeout
	}

	s := &Source{
		resolver:   opts.Resolver,
		transport:  opts.Transport,
		cache:      opts.Cache,
		projection: opts.Projection,
		notifier:   opts.Notifier,
		log:        opts.Logger,
		cacheKey:   opts.CacheKey,
		retryCount: opts.RetryCount,
		timeout:    opts.Timeout,
		cacheable:  opts.Cacheable,
		defaults:   NewDefaultImages(),
	}
	s.hidden.Store(opts.Hidden)

	return s, nil
}

// Defaults returns the per-zoom default image registry of this source.
func (s *Source) Defaults() *DefaultImages {
	return s.defaults
}

// SetHidden logically disables or re-enables the source. A hidden
// source never serves, fetches or caches.
func (s *Source) SetHidden(hidden bool) {
	s.hidden.Store(hidden)
}

func (s *Source) Hidden() bool {
	return s.hidden.Load()
}

// Image returns the tile's image, a substituted default image, or nil
// when no content could be obtained. Network and cache failures are
// absorbed; the only error is ErrNoSuchTile for tiles outside the
// pyramid.
func (s *Source) Image(ctx context.Context, t Tile) (image.Image, error) {
	if s.hidden.Load() {
		return nil, nil
	}

	t = s.projection.Normalize(t)
	if !s.projection.Contains(t) {
		return nil, ErrNoSuchTile
	}

	metrics.TileRequests.Inc()

	if img, ok := s.cachedImage(t); ok {
		return img, nil
	}

	locations := s.resolver.Resolve(t)
	if len(locations) == 0 {
		return nil, nil
	}

	s.notifier.Publish(EventTileRequested, t.Key())

	var (
		img      image.Image
		raw      []byte
		complete = true
	)
	if len(locations) == 1 {
		img, raw = s.fetchSingle(ctx, t, locations[0])
	} else {
		var layers []image.Image
		layers, complete = s.fanOut(ctx, locations)
		img = composite(layers)
	}

	// Cache only complete results: a partial fan-out must be refetched
	// next time, not served from the cache missing layers.
	if img != nil && complete {
		s.storeCached(t, img, raw)
	}

	s.notifier.Publish(EventTileRetrieved, t.Key())

	return img, nil
}

// fetchSingle handles the one-location path, including default image
// substitution on an explicit no-content response.
func (s *Source) fetchSingle(ctx context.Context, t Tile, location string) (image.Image, []byte) {
	out := s.fetchLocation(ctx, location)

	switch out.kind {
	case outcomeSuccess:
		img, err := decode(out.data)
		if err != nil {
			s.log.Warn("fetched tile does not decode",
				"z", t.Z, "x", t.X, "y", t.Y, "error", err)
			return nil, nil
		}
		return img, out.data
	case outcomeEmpty:
		if img, ok := s.defaults.Lookup(t.Z); ok {
			return img, nil
		}
		return nil, nil
	case outcomeNotFound:
		s.log.Debug("tile not found upstream", "z", t.Z, "x", t.X, "y", t.Y)
		return nil, nil
	default:
		s.log.Warn("tile fetch failed",
			"z", t.Z, "x", t.X, "y", t.Y, "error", out.err)
		return nil, nil
	}
}

func (s *Source) cachedImage(t Tile) (image.Image, bool) {
	if !s.cacheable || s.cache == nil {
		return nil, false
	}

	data, ok, err := s.cache.Lookup(t, s.cacheKey)
	if err != nil {
		s.log.Warn("cache lookup failed", "z", t.Z, "x", t.X, "y", t.Y, "error", err)
		return nil, false
	}
	if !ok {
		metrics.CacheMisses.Inc()
		return nil, false
	}

	img, err := decode(data)
	if err != nil {
		s.log.Warn("cached tile does not decode", "z", t.Z, "x", t.X, "y", t.Y, "error", err)
		metrics.CacheMisses.Inc()
		return nil, false
	}

	metrics.CacheHits.Inc()
	return img, true
}

// storeCached writes the final image to the cache. Single-location
// fetches pass the raw upstream bytes through unchanged so warm reads
// are bit-identical; composited and substituted images are encoded to
// PNG first.
func (s *Source) storeCached(t Tile, img image.Image, raw []byte) {
	if !s.cacheable || s.cache == nil {
		return
	}

	data := raw
	if data == nil {
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			s.log.Error("failed to encode tile for caching",
				"z", t.Z, "x", t.X, "y", t.Y, "error", err)
			return
		}
		data = buf.Bytes()
	}

	if err := s.cache.Store(t, s.cacheKey, data); err != nil {
		s.log.Warn("cache store failed", "z", t.Z, "x", t.X, "y", t.Y, "error", err)
	}
}

// identityProjection is the fallback when no projection collaborator is
// wired: every tile is already normalized and exists.
type identityProjection struct{}

func (identityProjection) Normalize(t Tile) Tile { return t }
func (identityProjection) Contains(Tile) bool    { return true }
