package filter

import (
	"fmt"

	"gocv.io/x/gocv"
)

// chromePreset boosts saturation and brightness in HSV space for a punchy,
// glossy rendition.
func chromePreset(src gocv.Mat) (gocv.Mat, error) {
	if src.Channels() != 3 {
		return gocv.NewMat(), fmt.Errorf("chrome preset requires 3 channels, got %d", src.Channels())
	}

	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(src, &hsv, gocv.ColorBGRToHSV)

	channels := gocv.Split(hsv)
	if len(channels) != 3 {
		for _, ch := range channels {
			ch.Close()
		}
		return gocv.NewMat(), fmt.Errorf("HSV split yielded %d channels", len(channels))
	}
	defer func() {
		for _, ch := range channels {
			ch.Close()
		}
	}()

	saturation := gocv.NewMat()
	defer saturation.Close()
	gocv.ConvertScaleAbs(channels[1], &saturation, 1.35, 0)

	value := gocv.NewMat()
	defer value.Close()
	gocv.ConvertScaleAbs(channels[2], &value, 1.08, 4)

	merged := gocv.NewMat()
	defer merged.Close()
	gocv.Merge([]gocv.Mat{channels[0], saturation, value}, &merged)

	out := gocv.NewMat()
	gocv.CvtColor(merged, &out, gocv.ColorHSVToBGR)
	return out, nil
}

// fadePreset washes the image out: partial desaturation toward its grayscale
// rendition with lifted blacks.
func fadePreset(src gocv.Mat) (gocv.Mat, error) {
	gray, err := toGray(src)
	if err != nil {
		return gocv.NewMat(), err
	}
	defer gray.Close()

	grayBGR, err := grayToBGR(gray)
	if err != nil {
		return gocv.NewMat(), err
	}
	defer grayBGR.Close()

	out := gocv.NewMat()
	gocv.AddWeighted(src, 0.62, grayBGR, 0.38, 16, &out)
	return out, nil
}
