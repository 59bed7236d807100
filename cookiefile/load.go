package cookiefile

import (
	"fmt"
	"image"
	_ "image/png" // register the PNG decoder
	"os"

	"github.com/gogpu/lightcookie"
)

// LoadMetadata reads the calibration record saved next to pngPath.
func LoadMetadata(pngPath string) (lightcookie.Metadata, error) {
	data, err := os.ReadFile(SidecarPath(pngPath)) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return lightcookie.Metadata{}, fmt.Errorf("cookiefile: %w", err)
	}
	m, err := lightcookie.ParseMetadata(data)
	if err != nil {
		return lightcookie.Metadata{}, fmt.Errorf("cookiefile: %s: %w", SidecarPath(pngPath), err)
	}
	return m, nil
}

// LoadBuffer decodes a saved cookie back into a luminance buffer.
func LoadBuffer(pngPath string) (*lightcookie.Buffer, error) {
	f, err := os.Open(pngPath) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, fmt.Errorf("cookiefile: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("cookiefile: decode %s: %w", pngPath, err)
	}
	buf, err := lightcookie.BufferFromImage(img)
	if err != nil {
		return nil, fmt.Errorf("cookiefile: %s: %w", pngPath, err)
	}
	return buf, nil
}
