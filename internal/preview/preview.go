// Package preview downscales large images for on-screen display. The
// filtered data kept in the store is never touched; only the canvas copy
// shrinks.
package preview

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/transform"
)

// MaxWidth and MaxHeight bound the displayed copy of an image. Anything
// within the bounds is returned as is.
const (
	MaxWidth  = 2048
	MaxHeight = 1536
)

// Downscale returns img resized to fit within maxW x maxH, preserving the
// aspect ratio. Images already within bounds are returned unchanged.
func Downscale(img image.Image, maxW, maxH int) image.Image {
	if img == nil {
		return nil
	}

	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w <= maxW && h <= maxH || w == 0 || h == 0 {
		return img
	}

	scale := float64(maxW) / float64(w)
	if s := float64(maxH) / float64(h); s < scale {
		scale = s
	}

	dstW := int(math.Round(float64(w) * scale))
	dstH := int(math.Round(float64(h) * scale))
	if dstW < 1 {
		dstW = 1
	}
	if dstH < 1 {
		dstH = 1
	}

	return transform.Resize(img, dstW, dstH, transform.Lanczos)
}

// ForDisplay applies the default display bounds.
func ForDisplay(img image.Image) image.Image {
	return Downscale(img, MaxWidth, MaxHeight)
}
