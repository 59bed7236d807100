package lightcookie

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"
)

func TestNewBuffer(t *testing.T) {
	b := NewBuffer(8)

	if b.Size() != 8 {
		t.Errorf("Size() = %d, want 8", b.Size())
	}
	if len(b.Data()) != 64 {
		t.Errorf("len(Data()) = %d, want 64", len(b.Data()))
	}
	if b.Mean() != 0 {
		t.Errorf("Mean() = %v, want 0", b.Mean())
	}
}

func TestNewBufferPanicsOnEmpty(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewBuffer(0) should panic")
		}
	}()
	NewBuffer(0)
}

func TestBufferGetSet(t *testing.T) {
	b := NewBuffer(4)
	b.Set(1, 2, 0.5)
	b.Set(-1, 0, 1) // ignored
	b.Set(0, 4, 1)  // ignored

	if got := b.Get(1, 2); got != 0.5 {
		t.Errorf("Get(1,2) = %v, want 0.5", got)
	}
	if got := b.Data()[2*4+1]; got != 0.5 {
		t.Errorf("row-major index = %v, want 0.5", got)
	}
	if got := b.Get(9, 9); got != 0 {
		t.Errorf("Get(out of range) = %v, want 0", got)
	}
}

func TestBufferCloneEqual(t *testing.T) {
	b := NewBuffer(3)
	b.Fill(0.25)
	c := b.Clone()

	if !b.Equal(c) {
		t.Error("clone should equal original")
	}
	c.Set(0, 0, 1)
	if b.Equal(c) {
		t.Error("modifying the clone must not affect the original")
	}
	if b.Get(0, 0) != 0.25 {
		t.Errorf("original changed to %v", b.Get(0, 0))
	}
	if b.Equal(NewBuffer(4)) {
		t.Error("buffers of different size should not be equal")
	}
}

func TestBufferFromImageLuminance(t *testing.T) {
	tests := []struct {
		name string
		c    color.Color
		want float64
	}{
		{"white", color.White, 1},
		{"black", color.Black, 0},
		{"red", color.RGBA{R: 255, A: 255}, 0.299},
		{"green", color.RGBA{G: 255, A: 255}, 0.587},
		{"blue", color.RGBA{B: 255, A: 255}, 0.114},
		{"gray", color.Gray{Y: 128}, 128.0 / 255},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := BufferFromImage(uniformFrame(4, tt.c))
			if err != nil {
				t.Fatalf("BufferFromImage() error = %v", err)
			}
			if got := float64(b.Get(2, 2)); !approx(got, tt.want, 1e-6) {
				t.Errorf("luminance = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBufferFromImageRejectsNonSquare(t *testing.T) {
	if _, err := BufferFromImage(image.NewRGBA(image.Rect(0, 0, 4, 2))); err == nil {
		t.Error("BufferFromImage(4x2) error = nil, want error")
	}
	if _, err := BufferFromImage(image.NewRGBA(image.Rect(0, 0, 0, 0))); err == nil {
		t.Error("BufferFromImage(empty) error = nil, want error")
	}
}

func TestBufferToImageMonochrome(t *testing.T) {
	b := NewBuffer(2)
	b.Set(0, 0, 1)
	b.Set(1, 0, 0.5)
	b.Set(0, 1, 1.5) // clamped

	img := b.ToImage()
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			c := img.NRGBAAt(x, y)
			if c.R != c.G || c.G != c.B {
				t.Errorf("(%d,%d) = %v, want R=G=B", x, y, c)
			}
			if c.A != 255 {
				t.Errorf("(%d,%d) alpha = %d, want 255", x, y, c.A)
			}
		}
	}
	if got := img.NRGBAAt(1, 0).R; got != 128 {
		t.Errorf("0.5 -> %d, want 128", got)
	}
	if got := img.NRGBAAt(0, 1).R; got != 255 {
		t.Errorf("1.5 -> %d, want 255 (clamped)", got)
	}
}

func TestBufferImageInterface(t *testing.T) {
	var _ image.Image = (*Buffer)(nil)

	b := NewBuffer(4)
	b.Set(1, 1, 1)

	if b.Bounds() != image.Rect(0, 0, 4, 4) {
		t.Errorf("Bounds() = %v", b.Bounds())
	}
	if got := b.At(1, 1).(color.Gray16).Y; got != 0xffff {
		t.Errorf("At(1,1) = %d, want 65535", got)
	}
	if b.ColorModel() != color.Gray16Model {
		t.Error("ColorModel() should be Gray16Model")
	}
}

func TestBufferPNGRoundTrip(t *testing.T) {
	b := NewBuffer(16)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			b.Set(x, y, float32(x)/15)
		}
	}

	data, err := b.PNG()
	if err != nil {
		t.Fatalf("PNG() error = %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	back, err := BufferFromImage(img)
	if err != nil {
		t.Fatalf("BufferFromImage() error = %v", err)
	}
	for i, v := range b.Data() {
		if !approx(float64(back.Data()[i]), float64(v), 1.0/255) {
			t.Fatalf("pixel %d = %v, want ~%v", i, back.Data()[i], v)
		}
	}
}

func TestBufferSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	b := NewBuffer(8)
	b.Fill(1)

	if err := b.SavePNG(path); err != nil {
		t.Fatalf("SavePNG() error = %v", err)
	}
	if err := b.SavePNG(filepath.Join(t.TempDir(), "missing", "out.png")); err == nil {
		t.Error("SavePNG() into a missing directory should fail")
	}
}
