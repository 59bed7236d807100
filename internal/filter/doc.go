// Package filter provides the numeric smoothing kernels used on cookie masks.
//
// Every routine operates on a single luminance plane stored as a row-major
// []float32 of width*height values. Sampling outside the plane uses
// clamp-to-edge: the last valid row or column is repeated, never wrapped or
// zero-padded.
//
// The package contains:
//   - Gaussian and box kernels (separable, two passes)
//   - Windowed median
//   - Luminance-adaptive penumbra blur
//
// Routines never allocate their output; callers pass dst planes, and
// scratch planes come from the package pool (GetPlane / PutPlane).
package filter
