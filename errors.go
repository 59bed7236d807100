package lightcookie

import (
	"errors"
	"fmt"
)

// Sentinel errors. Use errors.Is to test for them; typed errors below
// unwrap to the matching sentinel.
var (
	// ErrInvalidConfiguration is returned when a capture cannot be set up:
	// no light, a light without a transform to sense from, or a malformed
	// RenderSpec. No scene state is mutated when it is returned.
	ErrInvalidConfiguration = errors.New("lightcookie: invalid configuration")

	// ErrRenderFailure is returned when the host fails during a capture,
	// from creating the sensor to reading the pixels back. Scene state has
	// been restored when it is returned.
	ErrRenderFailure = errors.New("lightcookie: render failed")

	// ErrFilterConfiguration is returned when a SmoothingSpec names an
	// unknown method or a radius or iteration count outside its domain.
	ErrFilterConfiguration = errors.New("lightcookie: invalid filter configuration")
)

// RenderError reports the host stage that failed during a capture.
type RenderError struct {
	// Stage is one of "sensor", "backdrop", "lighting", "target", "render"
	// or "readback".
	Stage string
	Err   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("lightcookie: %s failed: %v", e.Stage, e.Err)
}

// Unwrap returns both ErrRenderFailure and the underlying host error.
func (e *RenderError) Unwrap() []error {
	return []error{ErrRenderFailure, e.Err}
}

// FilterConfigError describes a rejected SmoothingSpec.
type FilterConfigError struct {
	Method     Method
	Radius     int
	Iterations int
	Reason     string
}

func (e *FilterConfigError) Error() string {
	return fmt.Sprintf("lightcookie: smoothing %v radius=%d iterations=%d: %s",
		e.Method, e.Radius, e.Iterations, e.Reason)
}

// Is reports whether target is ErrFilterConfiguration.
func (e *FilterConfigError) Is(target error) bool {
	return target == ErrFilterConfiguration
}

// invalidf wraps ErrInvalidConfiguration with a formatted reason.
func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfiguration, fmt.Sprintf(format, args...))
}
