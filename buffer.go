package lightcookie

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
)

// Luminance weights (ITU-R BT.601) used to convert captured color to gray.
const (
	lumaR = 0.299
	lumaG = 0.587
	lumaB = 0.114
)

// Buffer is a square grid of luminance values in [0,1], stored row-major.
//
// A Buffer is a plain value: it owns its data and needs no release. It
// implements image.Image as 16-bit gray so it can be encoded or drawn
// directly.
type Buffer struct {
	size int
	data []float32
}

// NewBuffer creates a black buffer of size x size pixels.
// It panics if size is not positive.
func NewBuffer(size int) *Buffer {
	if size <= 0 {
		panic(fmt.Sprintf("lightcookie: buffer size must be positive, got %d", size))
	}
	return &Buffer{
		size: size,
		data: make([]float32, size*size),
	}
}

// wrapBuffer adopts data as a size x size buffer without copying.
func wrapBuffer(size int, data []float32) *Buffer {
	return &Buffer{size: size, data: data}
}

// Size returns the width (and height) of the buffer.
func (b *Buffer) Size() int {
	return b.size
}

// Data returns the raw luminance values, row-major.
func (b *Buffer) Data() []float32 {
	return b.data
}

// Get returns the luminance at (x, y), or 0 outside the buffer.
func (b *Buffer) Get(x, y int) float32 {
	if x < 0 || x >= b.size || y < 0 || y >= b.size {
		return 0
	}
	return b.data[y*b.size+x]
}

// Set sets the luminance at (x, y). Out-of-range coordinates are ignored.
func (b *Buffer) Set(x, y int, v float32) {
	if x < 0 || x >= b.size || y < 0 || y >= b.size {
		return
	}
	b.data[y*b.size+x] = v
}

// Fill sets every pixel to v.
func (b *Buffer) Fill(v float32) {
	for i := range b.data {
		b.data[i] = v
	}
}

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	c := &Buffer{size: b.size, data: make([]float32, len(b.data))}
	copy(c.data, b.data)
	return c
}

// Equal reports whether both buffers have the same size and values.
func (b *Buffer) Equal(o *Buffer) bool {
	if b == nil || o == nil {
		return b == o
	}
	if b.size != o.size {
		return false
	}
	for i, v := range b.data {
		if o.data[i] != v {
			return false
		}
	}
	return true
}

// Mean returns the average luminance.
func (b *Buffer) Mean() float64 {
	var sum float64
	for _, v := range b.data {
		sum += float64(v)
	}
	return sum / float64(len(b.data))
}

// BufferFromImage converts a square image to a luminance buffer using
// perceptual weights 0.299R + 0.587G + 0.114B.
func BufferFromImage(img image.Image) (*Buffer, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w != h || w == 0 {
		return nil, fmt.Errorf("lightcookie: image must be square and non-empty, got %dx%d", w, h)
	}

	buf := NewBuffer(w)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			l := (lumaR*float64(r) + lumaG*float64(g) + lumaB*float64(b)) / 0xffff
			buf.data[y*w+x] = float32(clamp01(l))
		}
	}
	return buf, nil
}

// ToImage converts the buffer to an opaque image with R=G=B=luminance.
func (b *Buffer) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.size, b.size))
	for i, v := range b.data {
		c := to8(v)
		j := i * 4
		img.Pix[j+0] = c
		img.Pix[j+1] = c
		img.Pix[j+2] = c
		img.Pix[j+3] = 0xff
	}
	return img
}

// EncodePNG writes the buffer as an RGBA PNG.
func (b *Buffer) EncodePNG(w io.Writer) error {
	return png.Encode(w, b.ToImage())
}

// PNG returns the buffer encoded as PNG bytes.
func (b *Buffer) PNG() ([]byte, error) {
	var out bytes.Buffer
	if err := b.EncodePNG(&out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// SavePNG saves the buffer to a PNG file.
func (b *Buffer) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := b.EncodePNG(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// At implements the image.Image interface.
func (b *Buffer) At(x, y int) color.Color {
	if x < 0 || x >= b.size || y < 0 || y >= b.size {
		return color.Gray16{}
	}
	return color.Gray16{Y: uint16(math.Round(clamp01(float64(b.data[y*b.size+x])) * 0xffff))}
}

// Bounds implements the image.Image interface.
func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.size, b.size)
}

// ColorModel implements the image.Image interface.
func (b *Buffer) ColorModel() color.Model {
	return color.Gray16Model
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func to8(v float32) uint8 {
	return uint8(math.Round(clamp01(float64(v)) * 255))
}
