package lightcookie

import (
	"errors"
	"testing"
)

func TestGenerateRejectsFilterConfigBeforeCapture(t *testing.T) {
	rec := &recorder{}
	light := newFakeLight(rec)
	host := newFakeHost(rec, light)

	_, err := NewGenerator(host).Generate(validSpec(), DefaultCalibration(),
		SmoothingSpec{Method: MethodGaussian, Radius: 11, Iterations: 1}, light)

	if !errors.Is(err, ErrFilterConfiguration) {
		t.Fatalf("error = %v, want ErrFilterConfiguration", err)
	}
	if len(rec.events) != 0 {
		t.Errorf("events = %v, want none", rec.events)
	}
}

func TestGenerateRejectsCalibration(t *testing.T) {
	rec := &recorder{}
	light := newFakeLight(rec)
	host := newFakeHost(rec, light)

	_, err := NewGenerator(host).Generate(validSpec(), MaskCalibration{ShadowOpacity: 2},
		SmoothingSpec{Method: MethodNone}, light)

	if !errors.Is(err, ErrInvalidConfiguration) {
		t.Fatalf("error = %v, want ErrInvalidConfiguration", err)
	}
	if len(rec.events) != 0 {
		t.Errorf("events = %v, want none", rec.events)
	}
}

func TestGeneratePipeline(t *testing.T) {
	rec := &recorder{}
	light := newFakeLight(rec)
	host := newFakeHost(rec, light)
	host.frame = discFrame(40)

	gen := NewGenerator(host)
	cal := MaskCalibration{ShadowOpacity: 0.5, BrightnessLift: 0}

	raw, err := gen.Generate(validSpec(), DefaultCalibration(), SmoothingSpec{Method: MethodNone}, light)
	if err != nil {
		t.Fatalf("Generate(raw) error = %v", err)
	}
	if raw.Get(128, 128) != 0 || raw.Get(0, 0) != 1 {
		t.Fatalf("raw center=%v corner=%v, want 0 and 1", raw.Get(128, 128), raw.Get(0, 0))
	}

	out, err := gen.Generate(validSpec(), cal, SmoothingSpec{Method: MethodGaussian, Radius: 3, Iterations: 2}, light)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	// Opacity 0.5 lifts full shadow to 0.5; the disc interior is far from
	// the edge so smoothing keeps it.
	if got := out.Get(128, 128); !approx(float64(got), 0.5, 1e-5) {
		t.Errorf("center = %v, want 0.5", got)
	}
	if got := out.Get(0, 0); !approx(float64(got), 1, 1e-5) {
		t.Errorf("corner = %v, want 1", got)
	}
	if host.live != 0 {
		t.Errorf("live resources = %d, want 0", host.live)
	}
}

func TestGenerateWithSettings(t *testing.T) {
	rec := &recorder{}
	light := newFakeLight(rec)
	host := newFakeHost(rec, light)

	s := DefaultSettings()
	s.Resolution = 1024

	out, err := NewGenerator(host).GenerateWithSettings(s, light)
	if err != nil {
		t.Fatalf("GenerateWithSettings() error = %v", err)
	}
	if out.Size() != 1024 {
		t.Errorf("Size() = %d, want 1024", out.Size())
	}
}

func TestGeneratePreview(t *testing.T) {
	rec := &recorder{}
	light := newFakeLight(rec)
	host := newFakeHost(rec, light)

	s := DefaultSettings()
	s.Resolution = 2048

	out, err := NewGenerator(host).Preview(s, light)
	if err != nil {
		t.Fatalf("Preview() error = %v", err)
	}
	if out.Size() != PreviewResolution {
		t.Errorf("Size() = %d, want %d", out.Size(), PreviewResolution)
	}
}

func TestGeneratePropagatesRenderFailure(t *testing.T) {
	rec := &recorder{}
	light := newFakeLight(rec)
	host := newFakeHost(rec, light)
	host.renderErr = errors.New("boom")

	_, err := NewGenerator(host).GenerateWithSettings(DefaultSettings(), light)
	if !errors.Is(err, ErrRenderFailure) {
		t.Errorf("error = %v, want ErrRenderFailure", err)
	}
}
