package source

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// composite merges the non-nil images in order into one tile image.
// Index 0 is the bottom layer; each later image is alpha-blended on
// top at the same origin. A single usable image is returned unchanged,
// without redrawing.
func composite(layers []image.Image) image.Image {
	var kept []image.Image
	for _, img := range layers {
		if img != nil {
			kept = append(kept, img)
		}
	}

	switch len(kept) {
	case 0:
		return nil
	case 1:
		return kept[0]
	}

	canvas := image.NewRGBA(kept[0].Bounds())
	for _, img := range kept {
		xdraw.Draw(canvas, canvas.Bounds(), img, img.Bounds().Min, xdraw.Over)
	}

	return canvas
}
