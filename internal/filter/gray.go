package filter

import (
	"fmt"

	"gocv.io/x/gocv"
)

// The grayscale family: mono is a neutral rendition, noir deepens shadows and
// boosts contrast, tonal flattens contrast for a softer print look.

func monoPreset(src gocv.Mat) (gocv.Mat, error) {
	gray, err := toGray(src)
	if err != nil {
		return gocv.NewMat(), err
	}
	defer gray.Close()

	return grayToBGR(gray)
}

func noirPreset(src gocv.Mat) (gocv.Mat, error) {
	gray, err := toGray(src)
	if err != nil {
		return gocv.NewMat(), err
	}
	defer gray.Close()

	deepened := gocv.NewMat()
	defer deepened.Close()
	gocv.ConvertScaleAbs(gray, &deepened, 1.35, -28)

	return grayToBGR(deepened)
}

func tonalPreset(src gocv.Mat) (gocv.Mat, error) {
	gray, err := toGray(src)
	if err != nil {
		return gocv.NewMat(), err
	}
	defer gray.Close()

	softened := gocv.NewMat()
	defer softened.Close()
	gocv.ConvertScaleAbs(gray, &softened, 0.82, 28)

	return grayToBGR(softened)
}

func toGray(src gocv.Mat) (gocv.Mat, error) {
	if src.Channels() == 1 {
		return src.Clone(), nil
	}
	if src.Channels() != 3 {
		return gocv.NewMat(), fmt.Errorf("grayscale conversion requires 1 or 3 channels, got %d", src.Channels())
	}

	gray := gocv.NewMat()
	gocv.CvtColor(src, &gray, gocv.ColorBGRToGray)
	return gray, nil
}

// grayToBGR replicates the single channel so the output stays a 3-channel
// image like every other preset's.
func grayToBGR(gray gocv.Mat) (gocv.Mat, error) {
	out := gocv.NewMat()
	gocv.CvtColor(gray, &out, gocv.ColorGrayToBGR)
	if out.Empty() {
		out.Close()
		return gocv.NewMat(), fmt.Errorf("gray to BGR conversion produced empty output")
	}
	return out, nil
}
