package softscene

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/gogpu/gg"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/gogpu/lightcookie"
)

// goldenAngle spreads soft shadow samples evenly over the light disc.
const goldenAngle = 2.399963229728653

type sensor struct {
	scene    *Scene
	desc     lightcookie.SensorDesc
	released bool
}

// Release destroys the sensor.
func (s *sensor) Release() error {
	if s.released {
		return errors.New("softscene: sensor released twice")
	}
	s.released = true
	s.scene.release()
	return nil
}

// Render draws the scene as seen from the sensor into t.
func (s *sensor) Render(t lightcookie.Target) error {
	if s.released {
		return errors.New("softscene: render with released sensor")
	}
	if err := s.scene.FailRender; err != nil {
		return err
	}
	target, ok := t.(*Target)
	if !ok {
		return fmt.Errorf("softscene: cannot render into %T", t)
	}

	frame, err := s.frame(target.Size())
	if err != nil {
		return err
	}
	return target.write(frame)
}

// frame renders one gray frame. Soft shadows average several passes with
// the occluders shifted as seen from points on the light disc.
func (s *sensor) frame(size int) (*image.RGBA, error) {
	out := image.NewRGBA(image.Rect(0, 0, size, size))
	bg := uint8(math.Round(luminance(s.background()) * 255))
	for i := 0; i < len(out.Pix); i += 4 {
		out.Pix[i+0] = bg
		out.Pix[i+1] = bg
		out.Pix[i+2] = bg
		out.Pix[i+3] = 0xff
	}

	light := s.desc.Light
	if light == nil || !light.Enabled() {
		return out, nil
	}

	radius, samples := s.scene.soft()
	shadows := light.ShadowMode()
	if shadows != lightcookie.ShadowsSoft {
		samples = 1
	}

	acc := make([]float64, size*size)
	for k := 0; k < samples; k++ {
		jx, jy := jitter(k, samples)
		if err := s.pass(acc, size, cookieMean(light.Cookie()), shadows, jx*radius, jy*radius); err != nil {
			return nil, err
		}
	}

	inv := 1 / float64(samples)
	for i, v := range acc {
		c := uint8(math.Round(clamp01(v*inv) * 255))
		j := i * 4
		out.Pix[j+0] = c
		out.Pix[j+1] = c
		out.Pix[j+2] = c
	}
	return out, nil
}

// pass renders the backdrops and their shadows once and adds the resulting
// luminance to acc. (jx, jy) shifts each occluder per unit of its distance
// to the backdrop.
func (s *sensor) pass(acc []float64, size int, lit float64, shadows lightcookie.ShadowMode, jx, jy float64) error {
	dc := gg.NewContext(size, size)
	defer func() { _ = dc.Close() }()
	dc.ClearWithColor(gg.FromColor(s.background()))

	proj := s.projector(size)
	for _, b := range s.scene.liveBackdrops() {
		center := s.desc.Transform.Local(b.desc.Transform.Position)
		if center.Z <= s.desc.Near || center.Z >= s.desc.Far {
			continue
		}

		r, g, bl, _ := b.desc.Color.RGBA()
		dc.SetRGB(lit*float64(r)/0xffff, lit*float64(g)/0xffff, lit*float64(bl)/0xffff)
		if err := fillQuad(dc, proj, s.backdropCorners(b.desc)); err != nil {
			return err
		}

		if shadows == lightcookie.ShadowsNone || !b.desc.ReceiveShadows {
			continue
		}
		for _, o := range s.scene.Occluders() {
			if !o.casts() {
				continue
			}
			oz := s.desc.Transform.Local(o.Pose.Position).Z
			if oz <= s.desc.Near || oz >= center.Z {
				continue
			}
			spread := center.Z - oz
			shift := r3.Vec{X: jx * spread, Y: jy * spread}

			dc.SetRGBA(0, 0, 0, clamp01(o.Opacity))
			if err := s.stamp(dc, proj, o, shift); err != nil {
				return err
			}
		}
	}

	img := dc.Image()
	bounds := img.Bounds()
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			acc[y*size+x] += luminance(img.At(bounds.Min.X+x, bounds.Min.Y+y))
		}
	}
	return nil
}

func (s *sensor) background() color.Color {
	if s.desc.Background == nil {
		return color.Black
	}
	return s.desc.Background
}

// projector maps a sensor-local point to pixel coordinates.
type projector struct {
	scale, half float64
}

func (s *sensor) projector(size int) projector {
	return projector{
		scale: float64(size) / (2 * s.desc.HalfExtent),
		half:  float64(size) / 2,
	}
}

func (p projector) pixel(local r3.Vec) (x, y float64) {
	return p.half + local.X*p.scale, p.half - local.Y*p.scale
}

// stamp draws the silhouette of o shifted by shift (sensor-local units).
func (s *sensor) stamp(dc *gg.Context, proj projector, o *Occluder, shift r3.Vec) error {
	switch o.Shape {
	case ShapeSphere:
		c := r3.Add(s.desc.Transform.Local(o.Pose.Position), shift)
		x, y := proj.pixel(c)
		dc.DrawCircle(x, y, o.Size*proj.scale)
		return dc.Fill()
	case ShapeQuad:
		var local [4]r3.Vec
		for i, p := range o.corners() {
			local[i] = r3.Add(s.desc.Transform.Local(p), shift)
		}
		return fillQuad(dc, proj, local)
	}
	return fmt.Errorf("softscene: unknown shape %v", o.Shape)
}

func fillQuad(dc *gg.Context, proj projector, local [4]r3.Vec) error {
	for i, p := range local {
		x, y := proj.pixel(p)
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	dc.ClosePath()
	return dc.Fill()
}

// backdropCorners returns the corners of a backdrop in the sensor's local
// frame.
func (s *sensor) backdropCorners(desc lightcookie.BackdropDesc) [4]r3.Vec {
	var local [4]r3.Vec
	for i, p := range Quad(desc.Transform, desc.Size/2).corners() {
		local[i] = s.desc.Transform.Local(p)
	}
	return local
}

// jitter returns the k-th of n points on the unit disc. A single sample
// sits at the center.
func jitter(k, n int) (float64, float64) {
	if n <= 1 {
		return 0, 0
	}
	r := math.Sqrt((float64(k) + 0.5) / float64(n))
	a := float64(k) * goldenAngle
	return r * math.Cos(a), r * math.Sin(a)
}

// cookieMean is the average luminance of a cookie, 1 when there is none.
func cookieMean(img image.Image) float64 {
	if img == nil {
		return 1
	}
	b := img.Bounds()
	if b.Empty() {
		return 1
	}
	var sum float64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			sum += luminance(img.At(x, y))
		}
	}
	return sum / float64(b.Dx()*b.Dy())
}

func luminance(c color.Color) float64 {
	r, g, b, _ := c.RGBA()
	return (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 0xffff
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
