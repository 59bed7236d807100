package filter

import "math"

// DynamicRadius returns the sampling radius the penumbra blur uses for a
// pixel of luminance c: max(1, round(radius*(1-c))).
//
// Halves round to even: radius 3 at c=0.5 gives 2 and radius 5 gives 2.
func DynamicRadius(radius int, c float32) int {
	blurAmount := 1 - float64(c)
	r := int(math.RoundToEven(float64(radius) * blurAmount))
	if r < 1 {
		return 1
	}
	return r
}

// Penumbra applies a luminance-adaptive blur: darker pixels are averaged
// over a wider disc than brighter ones.
//
// For each pixel the window radius comes from DynamicRadius. Taps inside
// the circle of that radius are weighted by 1 - distance/radius, and the
// weighted sum is divided by the number of taps (not by the weight sum), so
// the filter also darkens, which is what gives the soft penumbra falloff.
//
// dst must not alias src.
func Penumbra(dst, src []float32, width, height, radius int) {
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			index := y*width + x
			center := src[index]
			dr := DynamicRadius(radius, center)
			fdr := float64(dr)

			var sum float64
			count := 0

			for dy := -dr; dy <= dr; dy++ {
				row := clampIndex(y+dy, height) * width
				for dx := -dr; dx <= dr; dx++ {
					distance := math.Sqrt(float64(dx*dx + dy*dy))
					if distance > fdr {
						continue
					}
					weight := 1 - distance/fdr
					sum += float64(src[row+clampIndex(x+dx, width)]) * weight
					count++
				}
			}

			if count == 0 {
				dst[index] = center
				continue
			}
			dst[index] = float32(sum / float64(count))
		}
	}
}

// PenumbraTaps returns how many taps the penumbra blur includes for a pixel
// of luminance c: the lattice points within distance DynamicRadius of the
// center.
func PenumbraTaps(radius int, c float32) int {
	dr := DynamicRadius(radius, c)
	count := 0
	for dy := -dr; dy <= dr; dy++ {
		for dx := -dr; dx <= dr; dx++ {
			if dx*dx+dy*dy <= dr*dr {
				count++
			}
		}
	}
	return count
}
