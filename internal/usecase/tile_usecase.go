package usecase

import (
	"bytes"
	"context"
	"fmt"
	"image/png"

	"github.com/mapgrid/tilefetch/internal/source"
	"github.com/mapgrid/tilefetch/pkg/logger"
)

// TileUseCase runs the acquisition pipeline and encodes results for
// the HTTP surface.
type TileUseCase struct {
	source *source.Source
	logger logger.Logger
}

func NewTileUseCase(src *source.Source, l logger.Logger) *TileUseCase {
	return &TileUseCase{
		source: src,
		logger: l,
	}
}

// GetTile returns the PNG-encoded tile image. A nil slice with a nil
// error means the pipeline completed with no content for this tile.
func (uc *TileUseCase) GetTile(ctx context.Context, z, x, y int) ([]byte, error) {
	img, err := uc.source.Image(ctx, source.Tile{X: x, Y: y, Z: z})
	if err != nil {
		return nil, err
	}
	if img == nil {
		uc.logger.Debug("no content for tile", "z", z, "x", x, "y", y)
		return nil, nil
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		uc.logger.Error("failed to encode tile", "z", z, "x", x, "y", y, "error", err)
		return nil, fmt.Errorf("failed to encode tile: %w", err)
	}

	return buf.Bytes(), nil
}
