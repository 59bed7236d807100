package filter

// SeparableConvolve applies a 1D kernel horizontally and then vertically.
//
// The horizontal pass reads src and writes tmp; the vertical pass reads tmp
// and writes dst, so the result is a true two-pass separable blur. All three
// planes must hold width*height values. dst may alias src but not tmp.
func SeparableConvolve(dst, src, tmp []float32, width, height int, kernel []float32) {
	convolveHorizontal(src, tmp, width, height, kernel)
	convolveVertical(tmp, dst, width, height, kernel)
}

// convolveHorizontal applies 1D horizontal convolution with edge extension.
func convolveHorizontal(src, dst []float32, width, height int, kernel []float32) {
	kernelSize := len(kernel)
	halfKernel := KernelCenter(kernelSize)

	for y := 0; y < height; y++ {
		row := y * width
		for x := 0; x < width; x++ {
			var sum float32

			for k := 0; k < kernelSize; k++ {
				kx := clampIndex(x+k-halfKernel, width)
				sum += src[row+kx] * kernel[k]
			}

			dst[row+x] = sum
		}
	}
}

// convolveVertical applies 1D vertical convolution with edge extension.
func convolveVertical(src, dst []float32, width, height int, kernel []float32) {
	kernelSize := len(kernel)
	halfKernel := KernelCenter(kernelSize)

	for y := 0; y < height; y++ {
		row := y * width
		for x := 0; x < width; x++ {
			var sum float32

			for k := 0; k < kernelSize; k++ {
				ky := clampIndex(y+k-halfKernel, height)
				sum += src[ky*width+x] * kernel[k]
			}

			dst[row+x] = sum
		}
	}
}

// clampIndex clamps i to [0, n-1].
func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
