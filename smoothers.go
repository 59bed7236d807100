package lightcookie

import "github.com/gogpu/lightcookie/internal/filter"

// Radius domain shared by the built-in smoothers.
const (
	MinRadius = 1
	MaxRadius = 10
)

func init() {
	RegisterSmoother(MethodGaussian, gaussianSmoother{})
	RegisterSmoother(MethodBox, boxSmoother{})
	RegisterSmoother(MethodMedian, medianSmoother{})
	RegisterSmoother(MethodPenumbra, penumbraSmoother{})
}

type gaussianSmoother struct{}

func (gaussianSmoother) Name() string            { return "Gaussian" }
func (gaussianSmoother) RadiusRange() (int, int) { return MinRadius, MaxRadius }

func (gaussianSmoother) Smooth(dst, src []float32, size, radius int) {
	separable(dst, src, size, filter.CachedGaussianKernel(radius))
}

type boxSmoother struct{}

func (boxSmoother) Name() string            { return "Box" }
func (boxSmoother) RadiusRange() (int, int) { return MinRadius, MaxRadius }

func (boxSmoother) Smooth(dst, src []float32, size, radius int) {
	separable(dst, src, size, filter.BoxKernel(radius))
}

// separable runs a two-pass convolution with a pooled scratch plane.
func separable(dst, src []float32, size int, kernel []float32) {
	tmp := filter.GetPlane(size * size)
	filter.SeparableConvolve(dst, src, tmp, size, size, kernel)
	filter.PutPlane(tmp)
}

type medianSmoother struct{}

func (medianSmoother) Name() string            { return "Median" }
func (medianSmoother) RadiusRange() (int, int) { return MinRadius, MaxRadius }

func (medianSmoother) Smooth(dst, src []float32, size, radius int) {
	filter.Median(dst, src, size, size, radius)
}

// penumbraSmoother blurs darker pixels over a wider disc.
type penumbraSmoother struct{}

func (penumbraSmoother) Name() string            { return "Penumbra" }
func (penumbraSmoother) RadiusRange() (int, int) { return MinRadius, MaxRadius }

func (penumbraSmoother) Smooth(dst, src []float32, size, radius int) {
	filter.Penumbra(dst, src, size, size, radius)
}
