package cookiefile

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/gogpu/lightcookie"
)

// Thumbnail scales buf to a size x size gray image for previews. Sizes
// below 1 use lightcookie.PreviewResolution.
func Thumbnail(buf *lightcookie.Buffer, size int) *image.Gray {
	if size < 1 {
		size = lightcookie.PreviewResolution
	}
	dst := image.NewGray(image.Rect(0, 0, size, size))
	if size == buf.Size() {
		draw.Draw(dst, dst.Bounds(), buf, image.Point{}, draw.Src)
		return dst
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), buf, buf.Bounds(), draw.Src, nil)
	return dst
}
