package media

import (
	"fmt"
	"image"
	"os"

	_ "image/jpeg"
	_ "image/png"
)

// LoadStill decodes a still image (PNG or JPEG) from disk.
func LoadStill(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open still image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode still image %s: %w", path, err)
	}
	return img, nil
}
