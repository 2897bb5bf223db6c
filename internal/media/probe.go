package media

import (
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration
	"os"

	_ "golang.org/x/image/webp" // WebP decoder registration
)

// Dimensions returns the pixel width and height of an image file without
// decoding its pixels. Videos and unrecognized formats return an error;
// callers that cannot place such media skip it.
func Dimensions(path string) (width, height int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("open media %s: %w", path, err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("probe media %s: %w", path, err)
	}
	return cfg.Width, cfg.Height, nil
}
