package filter

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
)

func TestGaussianKernelZeroRadius(t *testing.T) {
	kernel := GaussianKernel(0)

	if len(kernel) != 1 {
		t.Errorf("GaussianKernel(0) len = %d, want 1", len(kernel))
	}

	if kernel[0] != 1.0 {
		t.Errorf("GaussianKernel(0)[0] = %v, want 1.0", kernel[0])
	}
}

func TestGaussianKernelNegativeRadius(t *testing.T) {
	kernel := GaussianKernel(-5)

	if len(kernel) != 1 {
		t.Errorf("GaussianKernel(-5) len = %d, want 1", len(kernel))
	}
}

func TestGaussianKernelNormalized(t *testing.T) {
	for r := 1; r <= 10; r++ {
		sum := floats.Sum(toFloat64(GaussianKernel(r)))
		if math.Abs(sum-1.0) > 1e-5 {
			t.Errorf("GaussianKernel(%d) sum = %v, want ~1.0", r, sum)
		}
	}
}

func TestGaussianKernelSymmetric(t *testing.T) {
	kernel := GaussianKernel(5)
	n := len(kernel)

	for i := 0; i < n/2; i++ {
		j := n - 1 - i
		if kernel[i] != kernel[j] {
			t.Errorf("kernel[%d] = %v != kernel[%d] = %v (asymmetric)", i, kernel[i], j, kernel[j])
		}
	}
}

func TestGaussianKernelSize(t *testing.T) {
	tests := []struct {
		radius   int
		wantSize int
	}{
		{1, 3},
		{2, 5},
		{3, 7},
		{5, 11},
		{10, 21},
	}

	for _, tt := range tests {
		kernel := GaussianKernel(tt.radius)
		if len(kernel) != tt.wantSize {
			t.Errorf("GaussianKernel(%d) len = %d, want %d", tt.radius, len(kernel), tt.wantSize)
		}
	}
}

func TestGaussianKernelSigma(t *testing.T) {
	// With sigma = radius/3 the edge tap is exp(-4.5) times the center tap.
	kernel := GaussianKernel(3)
	ratio := float64(kernel[0] / kernel[3])
	want := math.Exp(-4.5)

	if math.Abs(ratio-want) > 1e-6 {
		t.Errorf("edge/center ratio = %v, want %v", ratio, want)
	}
}

func TestGaussianKernelPeakAtCenter(t *testing.T) {
	kernel := GaussianKernel(5)
	center := KernelCenter(len(kernel))

	for i, v := range kernel {
		if i != center && v >= kernel[center] {
			t.Errorf("kernel[%d] = %v >= center %v", i, v, kernel[center])
		}
	}
}

func TestBoxKernel(t *testing.T) {
	tests := []struct {
		radius   int
		wantSize int
		wantVal  float32
	}{
		{0, 1, 1.0},
		{1, 3, 1.0 / 3},
		{2, 5, 0.2},
		{5, 11, 1.0 / 11},
	}

	for _, tt := range tests {
		kernel := BoxKernel(tt.radius)
		if len(kernel) != tt.wantSize {
			t.Errorf("BoxKernel(%d) len = %d, want %d", tt.radius, len(kernel), tt.wantSize)
			continue
		}
		for i, v := range kernel {
			if absf32(v-tt.wantVal) > 1e-7 {
				t.Errorf("BoxKernel(%d)[%d] = %v, want %v", tt.radius, i, v, tt.wantVal)
			}
		}
	}
}

func TestCachedGaussianKernel(t *testing.T) {
	k1 := CachedGaussianKernel(4)
	k2 := CachedGaussianKernel(4)

	if &k1[0] != &k2[0] {
		t.Error("CachedGaussianKernel should return the same slice for the same radius")
	}

	fresh := GaussianKernel(4)
	for i := range fresh {
		if fresh[i] != k1[i] {
			t.Errorf("cached[%d] = %v, want %v", i, k1[i], fresh[i])
		}
	}
}

func TestKernelCacheEviction(t *testing.T) {
	c := newKernelCache(4)
	for r := 1; r <= 10; r++ {
		c.get(r)
	}

	c.mu.RLock()
	n := len(c.cache)
	c.mu.RUnlock()

	if n > 4 {
		t.Errorf("cache size = %d, want <= 4", n)
	}
}
