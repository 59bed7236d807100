package filter

import "slices"

// Median replaces each value with the middle element of its sorted
// (2*radius+1)² neighborhood.
//
// The picked element is window[len(window)/2]. Windows always have odd
// length here, but the index rule is kept as is so results stay identical
// to masks produced by earlier releases.
//
// dst must not alias src.
func Median(dst, src []float32, width, height, radius int) {
	if radius <= 0 {
		copy(dst, src)
		return
	}

	side := radius*2 + 1
	window := make([]float32, side*side)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			count := 0

			for dy := -radius; dy <= radius; dy++ {
				row := clampIndex(y+dy, height) * width
				for dx := -radius; dx <= radius; dx++ {
					window[count] = src[row+clampIndex(x+dx, width)]
					count++
				}
			}

			slices.Sort(window[:count])
			dst[y*width+x] = window[count/2]
		}
	}
}
