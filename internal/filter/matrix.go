package filter

import (
	"fmt"

	"gocv.io/x/gocv"
)

// colorMatrix is a 3x4 transformation applied per pixel: each output channel
// is a weighted sum of the input channels plus a bias. Rows and columns are
// in BGR order to match Mat channel layout:
//
//	[B']   [m0  m1  m2  | m3 ]   [B]
//	[G'] = [m4  m5  m6  | m7 ] * [G]
//	[R']   [m8  m9  m10 | m11]   [R]
//	                             [1]
//
// Results saturate to [0, 255].
type colorMatrix [12]float32

// The toning presets. Weights are chosen so each output channel's
// coefficients sum close to 1, shifting hue without crushing exposure.
var (
	// instant: warm, slightly faded instant-film look.
	instantMatrix = colorMatrix{
		0.52, 0.15, 0.08, 0,
		0.10, 0.66, 0.20, 4,
		0.08, 0.26, 0.75, 6,
	}

	// process: cool cross-process shift, lifted blues and greens.
	processMatrix = colorMatrix{
		0.85, 0.18, 0.04, 10,
		0.06, 0.88, 0.10, 6,
		0.02, 0.12, 0.80, 0,
	}

	// transfer: amber vintage tone, close to a classic sepia.
	transferMatrix = colorMatrix{
		0.25, 0.45, 0.20, 0,
		0.14, 0.64, 0.30, 2,
		0.12, 0.35, 0.78, 4,
	}
)

func (m colorMatrix) apply(src gocv.Mat) (gocv.Mat, error) {
	if src.Channels() != 3 {
		return gocv.NewMat(), fmt.Errorf("color matrix requires 3 channels, got %d", src.Channels())
	}

	tm := gocv.NewMatWithSize(3, 4, gocv.MatTypeCV32FC1)
	defer tm.Close()
	for row := 0; row < 3; row++ {
		for col := 0; col < 4; col++ {
			tm.SetFloatAt(row, col, m[row*4+col])
		}
	}

	out := gocv.NewMat()
	gocv.Transform(src, &out, tm)
	return out, nil
}

func instantPreset(src gocv.Mat) (gocv.Mat, error) {
	return instantMatrix.apply(src)
}

func processPreset(src gocv.Mat) (gocv.Mat, error) {
	return processMatrix.apply(src)
}

func transferPreset(src gocv.Mat) (gocv.Mat, error) {
	return transferMatrix.apply(src)
}
