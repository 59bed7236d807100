package lightcookie

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/gogpu/lightcookie/internal/filter"
)

// Method selects a smoothing filter. Values match the integers stored in
// cookie metadata, so existing constants must never be renumbered.
type Method int

const (
	MethodNone Method = iota
	MethodGaussian
	MethodBox
	MethodMedian
	MethodPenumbra
)

// MaxIterations is the largest accepted SmoothingSpec.Iterations.
const MaxIterations = 5

// Smoother is one smoothing filter over a square luminance plane.
type Smoother interface {
	// Name is the display name, also accepted by ParseMethod.
	Name() string

	// RadiusRange returns the inclusive radius domain.
	RadiusRange() (min, max int)

	// Smooth reads src and writes dst, both size*size values.
	// dst never aliases src. radius is within RadiusRange.
	Smooth(dst, src []float32, size, radius int)
}

var (
	smoothersMu sync.RWMutex
	smoothers   = map[Method]Smoother{}
)

// RegisterSmoother makes s available under m, replacing any previous
// registration. MethodNone cannot be registered.
func RegisterSmoother(m Method, s Smoother) {
	if m == MethodNone {
		panic("lightcookie: cannot register a smoother for MethodNone")
	}
	if s == nil {
		panic("lightcookie: RegisterSmoother with nil smoother")
	}
	smoothersMu.Lock()
	smoothers[m] = s
	smoothersMu.Unlock()
}

// LookupSmoother returns the smoother registered for m.
func LookupSmoother(m Method) (Smoother, bool) {
	smoothersMu.RLock()
	s, ok := smoothers[m]
	smoothersMu.RUnlock()
	return s, ok
}

// Methods returns every selectable method in ascending order, MethodNone
// first.
func Methods() []Method {
	smoothersMu.RLock()
	out := make([]Method, 0, len(smoothers)+1)
	out = append(out, MethodNone)
	for m := range smoothers {
		out = append(out, m)
	}
	smoothersMu.RUnlock()
	slices.Sort(out)
	return out
}

// String returns the registered smoother's name.
func (m Method) String() string {
	if m == MethodNone {
		return "None"
	}
	if s, ok := LookupSmoother(m); ok {
		return s.Name()
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// ParseMethod resolves a method by name, ignoring case. Both short names
// ("gaussian") and the names stored by older tools ("GaussianBlur",
// "MedianFilter") are accepted.
func ParseMethod(name string) (Method, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.TrimSuffix(key, "blur")
	key = strings.TrimSuffix(key, "filter")
	if key == "none" || key == "" {
		return MethodNone, nil
	}
	for _, m := range Methods() {
		if strings.ToLower(m.String()) == key {
			return m, nil
		}
	}
	return MethodNone, fmt.Errorf("%w: unknown smoothing method %q", ErrFilterConfiguration, name)
}

// SmoothingSpec selects a method, its radius and how many times to apply it.
type SmoothingSpec struct {
	Method     Method
	Radius     int
	Iterations int
}

// Validate checks the spec against the registered smoother's domain.
// MethodNone is always valid.
func (s SmoothingSpec) Validate() error {
	_, err := s.smoother()
	return err
}

func (s SmoothingSpec) smoother() (Smoother, error) {
	if s.Method == MethodNone {
		return nil, nil
	}
	sm, ok := LookupSmoother(s.Method)
	if !ok {
		return nil, s.reject("unknown method")
	}
	lo, hi := sm.RadiusRange()
	if s.Radius < lo || s.Radius > hi {
		return nil, s.reject(fmt.Sprintf("radius outside [%d,%d]", lo, hi))
	}
	if s.Iterations < 1 || s.Iterations > MaxIterations {
		return nil, s.reject(fmt.Sprintf("iterations outside [1,%d]", MaxIterations))
	}
	return sm, nil
}

func (s SmoothingSpec) reject(reason string) error {
	return &FilterConfigError{
		Method:     s.Method,
		Radius:     s.Radius,
		Iterations: s.Iterations,
		Reason:     reason,
	}
}

// Smooth applies spec to src and returns the result.
//
// MethodNone returns src itself. Otherwise the result is a new buffer and
// src is never written. Iteration i reads the output of iteration i-1;
// intermediate planes go back to the scratch pool as soon as they have been
// read.
func Smooth(src *Buffer, spec SmoothingSpec) (*Buffer, error) {
	sm, err := spec.smoother()
	if err != nil {
		return nil, err
	}
	if sm == nil {
		return src, nil
	}
	if src == nil || src.size <= 0 {
		return nil, invalidf("smoothing an empty buffer")
	}

	n := src.size
	cur := src.data
	for i := 0; i < spec.Iterations; i++ {
		out := filter.GetPlane(n * n)
		sm.Smooth(out, cur, n, spec.Radius)
		if i > 0 {
			filter.PutPlane(cur)
		}
		cur = out
	}

	Logger().Debug("lightcookie: smoothed",
		"method", spec.Method, "radius", spec.Radius, "iterations", spec.Iterations, "size", n)

	return wrapBuffer(n, cur), nil
}
