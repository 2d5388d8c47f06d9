// Package conversion translates between Go's image.Image and OpenCV Mats.
// Mats use BGR channel order; all conversions go through whole-row byte
// slices rather than per-pixel accessors.
package conversion

import (
	"fmt"
	"image"
	"image/color"

	"filterdeck/internal/cv/safe"

	"gocv.io/x/gocv"
)

// MatToImage converts a guarded Mat to a standard Go image.
func MatToImage(src *safe.Mat) (image.Image, error) {
	if err := safe.ValidateMatForOperation(src, "Mat to image conversion"); err != nil {
		return nil, err
	}

	rows := src.Rows()
	cols := src.Cols()

	data, err := src.ToBytes()
	if err != nil {
		return nil, fmt.Errorf("Mat byte access failed: %w", err)
	}

	switch channels := src.Channels(); channels {
	case 1:
		return grayFromBytes(data, cols, rows)
	case 3:
		return rgbaFromBGR(data, cols, rows)
	case 4:
		return rgbaFromBGRA(data, cols, rows)
	default:
		return nil, fmt.Errorf("unsupported channel count: %d", channels)
	}
}

// ImageToMat converts a standard Go image to an opaque 3-channel BGR Mat.
// Alpha is discarded: premultiplied sources are unmultiplied first so the
// color channels survive, then the transparency itself is dropped. Every
// rendition derived from the Mat is opaque.
func ImageToMat(img image.Image, tracker safe.Tracker, tag string) (*safe.Mat, error) {
	if img == nil {
		return nil, fmt.Errorf("input image is nil")
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if err := safe.ValidateDimensions(width, height, "image to Mat conversion"); err != nil {
		return nil, err
	}

	var bgr []byte
	switch typed := img.(type) {
	case *image.RGBA:
		bgr = bgrFromRGBA(typed, bounds)
	case *image.NRGBA:
		bgr = bgrFromPix(typed.Pix, typed.Stride, bounds, 4)
	case *image.Gray:
		bgr = bgrFromGray(typed, bounds)
	default:
		bgr = bgrFromGeneric(img, bounds)
	}

	mat, err := gocv.NewMatFromBytes(height, width, gocv.MatTypeCV8UC3, bgr)
	if err != nil {
		return nil, fmt.Errorf("Mat creation from bytes failed: %w", err)
	}

	return safe.Adopt(mat, tracker, tag)
}

func grayFromBytes(data []byte, width, height int) (*image.Gray, error) {
	if len(data) < width*height {
		return nil, fmt.Errorf("gray data too short: %d for %dx%d", len(data), width, height)
	}

	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		copy(img.Pix[y*img.Stride:y*img.Stride+width], data[y*width:])
	}
	return img, nil
}

func rgbaFromBGR(data []byte, width, height int) (*image.RGBA, error) {
	if len(data) < width*height*3 {
		return nil, fmt.Errorf("BGR data too short: %d for %dx%d", len(data), width, height)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		srcRow := data[y*width*3:]
		dstRow := img.Pix[y*img.Stride:]
		for x := 0; x < width; x++ {
			dstRow[x*4+0] = srcRow[x*3+2]
			dstRow[x*4+1] = srcRow[x*3+1]
			dstRow[x*4+2] = srcRow[x*3+0]
			dstRow[x*4+3] = 255
		}
	}
	return img, nil
}

func rgbaFromBGRA(data []byte, width, height int) (*image.RGBA, error) {
	if len(data) < width*height*4 {
		return nil, fmt.Errorf("BGRA data too short: %d for %dx%d", len(data), width, height)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		srcRow := data[y*width*4:]
		dstRow := img.Pix[y*img.Stride:]
		for x := 0; x < width; x++ {
			dstRow[x*4+0] = srcRow[x*4+2]
			dstRow[x*4+1] = srcRow[x*4+1]
			dstRow[x*4+2] = srcRow[x*4+0]
			dstRow[x*4+3] = srcRow[x*4+3]
		}
	}
	return img, nil
}

// bgrFromRGBA unmultiplies partially transparent pixels before dropping the
// alpha channel; RGBA stores premultiplied color.
func bgrFromRGBA(img *image.RGBA, bounds image.Rectangle) []byte {
	width := bounds.Dx()
	height := bounds.Dy()

	bgr := make([]byte, width*height*3)
	for y := 0; y < height; y++ {
		srcRow := img.Pix[y*img.Stride:]
		dstRow := bgr[y*width*3:]
		for x := 0; x < width; x++ {
			r := srcRow[x*4+0]
			g := srcRow[x*4+1]
			b := srcRow[x*4+2]
			if a := srcRow[x*4+3]; a != 0 && a != 255 {
				r = uint8(uint32(r) * 255 / uint32(a))
				g = uint8(uint32(g) * 255 / uint32(a))
				b = uint8(uint32(b) * 255 / uint32(a))
			}
			dstRow[x*3+0] = b
			dstRow[x*3+1] = g
			dstRow[x*3+2] = r
		}
	}
	return bgr
}

// bgrFromPix handles straight-alpha 4-byte pixel layouts (NRGBA), with R,G,B
// in the first three bytes.
func bgrFromPix(pix []byte, stride int, bounds image.Rectangle, pixelSize int) []byte {
	width := bounds.Dx()
	height := bounds.Dy()

	bgr := make([]byte, width*height*3)
	for y := 0; y < height; y++ {
		srcRow := pix[y*stride:]
		dstRow := bgr[y*width*3:]
		for x := 0; x < width; x++ {
			dstRow[x*3+0] = srcRow[x*pixelSize+2]
			dstRow[x*3+1] = srcRow[x*pixelSize+1]
			dstRow[x*3+2] = srcRow[x*pixelSize+0]
		}
	}
	return bgr
}

func bgrFromGray(img *image.Gray, bounds image.Rectangle) []byte {
	width := bounds.Dx()
	height := bounds.Dy()

	bgr := make([]byte, width*height*3)
	for y := 0; y < height; y++ {
		srcRow := img.Pix[y*img.Stride:]
		dstRow := bgr[y*width*3:]
		for x := 0; x < width; x++ {
			v := srcRow[x]
			dstRow[x*3+0] = v
			dstRow[x*3+1] = v
			dstRow[x*3+2] = v
		}
	}
	return bgr
}

func bgrFromGeneric(img image.Image, bounds image.Rectangle) []byte {
	width := bounds.Dx()
	height := bounds.Dy()

	bgr := make([]byte, width*height*3)
	for y := 0; y < height; y++ {
		dstRow := bgr[y*width*3:]
		for x := 0; x < width; x++ {
			c := color.RGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.RGBA)
			dstRow[x*3+0] = c.B
			dstRow[x*3+1] = c.G
			dstRow[x*3+2] = c.R
		}
	}
	return bgr
}
