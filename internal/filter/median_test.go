package filter

import "testing"

func TestMedianConstant(t *testing.T) {
	const w, h = 12, 12
	for _, radius := range []int{1, 2, 3, 7} {
		src := newPlane(w, h, 0.37)
		dst := make([]float32, w*h)

		Median(dst, src, w, h, radius)

		for i, v := range dst {
			if v != 0.37 {
				t.Fatalf("r=%d: dst[%d] = %v, want 0.37", radius, i, v)
			}
		}
	}
}

func TestMedianRemovesSpeck(t *testing.T) {
	const w, h = 7, 7
	src := newPlane(w, h, 1)
	src[3*w+3] = 0
	dst := make([]float32, w*h)

	Median(dst, src, w, h, 1)

	if got := dst[3*w+3]; got != 1 {
		t.Errorf("speck = %v, want 1 (single dark pixel must be removed)", got)
	}
}

func TestMedianMiddleIndex(t *testing.T) {
	// 3x1 row [0, 0.5, 1] with radius 1: the center window (clamped rows
	// repeat the same row) is {0,0,0,0.5,0.5,0.5,1,1,1}, middle is 0.5.
	src := []float32{0, 0.5, 1}
	dst := make([]float32, 3)

	Median(dst, src, 3, 1, 1)

	want := []float32{0, 0.5, 1}
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("dst[%d] = %v, want %v", i, dst[i], want[i])
		}
	}
}

func TestMedianZeroRadiusCopies(t *testing.T) {
	src := []float32{0.1, 0.2, 0.3, 0.4}
	dst := make([]float32, 4)

	Median(dst, src, 2, 2, 0)

	for i := range src {
		if dst[i] != src[i] {
			t.Errorf("dst[%d] = %v, want %v", i, dst[i], src[i])
		}
	}
}
