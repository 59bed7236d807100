package softscene

import (
	"errors"
	"image"
	"sync"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/draw"

	"github.com/gogpu/lightcookie"
)

// Target is a CPU-backed offscreen color target using *image.RGBA.
type Target struct {
	scene *Scene

	size int

	mu       sync.Mutex
	img      *image.RGBA
	released bool
}

var _ lightcookie.Target = (*Target)(nil)

func newTarget(s *Scene, size int) *Target {
	return &Target{
		scene: s,
		size:  size,
		img:   image.NewRGBA(image.Rect(0, 0, size, size)),
	}
}

// Size returns the edge length in pixels.
func (t *Target) Size() int {
	return t.size
}

// Format returns the pixel format of the target.
func (t *Target) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// ReadPixels returns a copy of the target contents.
func (t *Target) ReadPixels() (image.Image, error) {
	if err := t.scene.FailReadback; err != nil {
		return nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.released {
		return nil, errors.New("softscene: read from released target")
	}

	out := image.NewRGBA(t.img.Bounds())
	copy(out.Pix, t.img.Pix)
	return out, nil
}

// Release frees the target.
func (t *Target) Release() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.released {
		return errors.New("softscene: target released twice")
	}
	t.released = true
	t.img = nil
	t.scene.release()
	return nil
}

// write replaces the target contents with img.
func (t *Target) write(img image.Image) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.released {
		return errors.New("softscene: render into released target")
	}
	draw.Draw(t.img, t.img.Bounds(), img, img.Bounds().Min, draw.Src)
	return nil
}
