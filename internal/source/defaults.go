package source

import (
	"image"
	"sync"
)

// DefaultImages holds per-zoom fallback tiles substituted when the
// remote source reports an explicit no-content for a tile that exists.
// Entries live for the lifetime of the owning Source; there is no
// removal.
type DefaultImages struct {
	mu     sync.RWMutex
	byZoom map[int]image.Image
}

func NewDefaultImages() *DefaultImages {
	return &DefaultImages{
		byZoom: make(map[int]image.Image),
	}
}

func (d *DefaultImages) Register(zoom int, img image.Image) {
	d.mu.Lock()
	d.byZoom[zoom] = img
	d.mu.Unlock()
}

func (d *DefaultImages) Lookup(zoom int) (image.Image, bool) {
	d.mu.RLock()
	img, ok := d.byZoom[zoom]
	d.mu.RUnlock()
	return img, ok
}
