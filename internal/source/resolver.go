package source

import (
	"fmt"
)

// Resolver maps a tile to the ordered list of locations to fetch.
// Location 0 is the bottom-most layer; later locations are drawn on
// top of it. Resolution must be deterministic for a given tile. An
// empty result means the tile has nothing to fetch.
type Resolver interface {
	Resolve(t Tile) []string
}

// URLResolver produces a single z/x/y.png location per tile.
type URLResolver struct {
	BaseURL string
}

func (r URLResolver) Resolve(t Tile) []string {
	return []string{fmt.Sprintf("%s/%d/%d/%d.png", r.BaseURL, t.Z, t.X, t.Y)}
}

// LayeredResolver concatenates the locations of several resolvers,
// earliest-first = bottom-most layer.
type LayeredResolver struct {
	layers []Resolver
}

func Layers(layers ...Resolver) LayeredResolver {
	return LayeredResolver{layers: layers}
}

func (r LayeredResolver) Resolve(t Tile) []string {
	var locations []string
	for _, layer := range r.layers {
		locations = append(locations, layer.Resolve(t)...)
	}
	return locations
}
