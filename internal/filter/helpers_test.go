package filter

// Test helper functions shared across filter tests.

// newPlane creates a width*height plane filled with v.
func newPlane(width, height int, v float32) []float32 {
	p := make([]float32, width*height)
	for i := range p {
		p[i] = v
	}
	return p
}

// impulsePlane creates a dark plane with a single 1.0 value at (cx, cy).
func impulsePlane(width, height, cx, cy int) []float32 {
	p := make([]float32, width*height)
	p[cy*width+cx] = 1
	return p
}

// toFloat64 widens a plane for gonum helpers.
func toFloat64(p []float32) []float64 {
	out := make([]float64, len(p))
	for i, v := range p {
		out[i] = float64(v)
	}
	return out
}

// absf32 returns the absolute value of a float32.
func absf32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
