package filter

import (
	"context"
	"image"

	"filterdeck/internal/cv/safe"
	"filterdeck/internal/logger"

	"gocv.io/x/gocv"
)

// preset transforms a BGR source Mat into a new Mat. The returned Mat's
// extent may differ from the source's; the engine restores it.
type preset func(src gocv.Mat) (gocv.Mat, error)

var presets = map[Kind]preset{
	Chrome:   chromePreset,
	Fade:     fadePreset,
	Instant:  instantPreset,
	Mono:     monoPreset,
	Noir:     noirPreset,
	Process:  processPreset,
	Tonal:    tonalPreset,
	Transfer: transferPreset,
}

// Engine applies preset transforms. It is stateless between calls and
// deterministic for identical inputs.
type Engine struct {
	tracker safe.Tracker
	log     logger.Logger
}

func NewEngine(tracker safe.Tracker, log logger.Logger) *Engine {
	return &Engine{tracker: tracker, log: log}
}

// Apply produces the filtered rendition of src for the given kind. With
// kind None (or any non-preset value) it returns a pixel-identical copy.
// The output always has src's exact pixel dimensions.
//
// When a preset is unavailable or yields no output, Apply falls back to the
// unfiltered copy rather than returning an error; the closed preset set makes
// that path unreachable in normal operation.
func (e *Engine) Apply(ctx context.Context, src *safe.Mat, kind Kind) (*safe.Mat, error) {
	if err := safe.ValidateMatForOperation(src, "filter apply"); err != nil {
		return nil, err
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if !kind.IsPreset() {
		return src.Clone()
	}

	transform, ok := presets[kind]
	if !ok {
		e.log.Debug("FilterEngine", "preset unavailable, falling back to original", map[string]interface{}{
			"kind": kind.String(),
		})
		return src.Clone()
	}

	// The source's read lock is held across the transform so a concurrent
	// release cannot pull the pixel data out from under the preset.
	var out gocv.Mat
	var srcW, srcH int
	applyErr := src.WithRaw(func(raw gocv.Mat) error {
		srcW = raw.Cols()
		srcH = raw.Rows()
		var terr error
		out, terr = transform(raw)
		return terr
	})
	if applyErr != nil || out.Empty() {
		out.Close()
		e.log.Debug("FilterEngine", "preset produced no output, falling back to original", map[string]interface{}{
			"kind":  kind.String(),
			"error": errString(applyErr),
		})
		return src.Clone()
	}

	restored, err := e.restoreExtent(out, srcW, srcH, kind)
	if err != nil {
		return nil, err
	}

	return safe.Adopt(restored, e.tracker, "filtered_"+kind.String())
}

// restoreExtent rescales out back to the source dimensions when a preset
// altered the pixel extent. The linear scale is computed independently per
// axis: scaleX = srcW/outW, scaleY = srcH/outH.
func (e *Engine) restoreExtent(out gocv.Mat, srcW, srcH int, kind Kind) (gocv.Mat, error) {
	if out.Cols() == srcW && out.Rows() == srcH {
		return out, nil
	}

	scaleX := float64(srcW) / float64(out.Cols())
	scaleY := float64(srcH) / float64(out.Rows())
	e.log.Debug("FilterEngine", "restoring output extent", map[string]interface{}{
		"kind":    kind.String(),
		"scale_x": scaleX,
		"scale_y": scaleY,
	})

	restored := gocv.NewMat()
	gocv.Resize(out, &restored, image.Pt(srcW, srcH), scaleX, scaleY, gocv.InterpolationLinear)
	out.Close()

	return restored, nil
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
