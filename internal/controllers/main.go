package controllers

import (
	"context"
	"fmt"
	"io"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"

	"filterdeck/internal/export"
	"filterdeck/internal/filter"
	"filterdeck/internal/logger"
	"filterdeck/internal/models"
	"filterdeck/internal/picker"
	"filterdeck/internal/pipeline"
	"filterdeck/internal/preview"
	"filterdeck/internal/views"
)

// MainController connects the view's events to the pipeline, the picker, and
// the exporter. Long-running work happens on background goroutines; UI
// updates go back through the view, which marshals onto the event loop.
type MainController struct {
	coordinator *pipeline.Coordinator
	session     *models.Session
	exporter    *export.Exporter
	log         logger.Logger

	mu       sync.RWMutex
	mainView *views.MainView
	window   fyne.Window

	ctx    context.Context
	cancel context.CancelFunc
}

func NewMainController(ctx context.Context, coordinator *pipeline.Coordinator, session *models.Session, exporter *export.Exporter, log logger.Logger) *MainController {
	controllerCtx, cancel := context.WithCancel(ctx)
	return &MainController{
		coordinator: coordinator,
		session:     session,
		exporter:    exporter,
		log:         log,
		ctx:         controllerCtx,
		cancel:      cancel,
	}
}

// SetMainView associates the view and wires its event handlers.
func (mc *MainController) SetMainView(view *views.MainView) {
	mc.mu.Lock()
	mc.mainView = view
	mc.window = view.Window()
	mc.mu.Unlock()

	view.SetOpenHandler(mc.PickImage)
	view.SetExportHandler(mc.ExportImage)
	view.SetSaveAsHandler(mc.SaveImageAs)
	view.SetFilterChangeHandler(mc.SelectFilter)
}

func (mc *MainController) view() *views.MainView {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return mc.mainView
}

// PickImage runs one pick request. Cancellation leaves all prior state
// untouched.
func (mc *MainController) PickImage() {
	view := mc.view()
	if view == nil {
		return
	}

	results := picker.Request(view.Window())

	go func() {
		mc.handlePickResult(<-results)
	}()
}

// handlePickResult consumes one pick outcome. Cancellation and dialog
// failure leave the loaded image, the processed image, and the session
// untouched.
func (mc *MainController) handlePickResult(result *picker.Result) {
	if result == nil || result.Cancelled() {
		mc.log.Debug("MainController", "pick cancelled", nil)
		return
	}
	if result.Err != nil {
		mc.showError(result.Err)
		return
	}

	if view := mc.view(); view != nil {
		view.UpdateStatus("Loading image...")
	}
	mc.loadImage(result.Reader)
}

func (mc *MainController) loadImage(reader fyne.URIReadCloser) {
	view := mc.view()
	if view == nil {
		reader.Close()
		return
	}

	data, err := io.ReadAll(reader)
	uri := reader.URI()
	reader.Close()
	if err != nil {
		mc.showError(fmt.Errorf("read %s: %w", uri.Name(), err))
		view.UpdateStatus("Ready")
		return
	}

	imageData, err := mc.coordinator.LoadImageFromBytes(data, uri.Extension())
	if err != nil {
		mc.showError(err)
		view.UpdateStatus("Ready")
		return
	}
	imageData.OriginalURI = uri

	view.SetSourceImage(preview.ForDisplay(imageData.Image))
	view.SetFilteredImage(nil)
	view.SetImageLoaded(true)
	view.SetProcessedAvailable(false)
	view.UpdateImageInfo(imageData.Width, imageData.Height, imageData.Format)
	view.UpdateStatus("Image loaded")

	// A fresh pick defaults to passthrough until a preset is selected.
	mc.SelectFilter(filter.None)
}

// SelectFilter records the choice and recomputes the processed image from
// the source. With no image loaded this is a guarded no-op.
func (mc *MainController) SelectFilter(kind filter.Kind) {
	view := mc.view()
	if view == nil {
		return
	}

	if !mc.session.HasImage() {
		return
	}
	if mc.session.IsProcessing() {
		mc.log.Debug("MainController", "filter application already running", map[string]interface{}{
			"requested": kind.String(),
		})
		return
	}

	mc.session.FilterSelected(kind)
	view.SetProcessingActive(true)
	view.UpdateStatus("Applying " + kind.DisplayName() + "...")

	go func() {
		processed, err := mc.coordinator.ApplyFilter(mc.ctx, kind)

		view.SetProcessingActive(false)
		if err != nil {
			mc.showError(err)
			view.UpdateStatus("Ready")
			return
		}

		view.SetFilteredImage(preview.ForDisplay(processed.Image))
		view.SetProcessedAvailable(true)
		view.UpdateStatus(kind.DisplayName() + " applied")
	}()
}

// ExportImage dispatches a fire-and-forget library write of the processed
// image. Without one it silently no-ops.
func (mc *MainController) ExportImage() {
	processed := mc.coordinator.Processed()
	if processed == nil {
		return
	}

	mc.exporter.Export(processed)

	if view := mc.view(); view != nil {
		view.UpdateStatus("Exported to " + mc.exporter.LibraryDir())
	}
}

// SaveImageAs saves the processed image to an explicit location chosen in
// the save dialog.
func (mc *MainController) SaveImageAs() {
	view := mc.view()
	processed := mc.coordinator.Processed()
	if view == nil || processed == nil {
		return
	}

	fyne.Do(func() {
		dialog.ShowFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil {
				mc.showError(err)
				return
			}
			if writer == nil {
				return
			}

			view.UpdateStatus("Saving image...")
			go func() {
				defer writer.Close()
				if saveErr := mc.coordinator.SaveImage(writer, processed); saveErr != nil {
					mc.showError(saveErr)
					view.UpdateStatus("Ready")
					return
				}
				view.UpdateStatus("Saved " + writer.URI().Name())
			}()
		}, mc.window)
	})
}

func (mc *MainController) showError(err error) {
	mc.log.Error("MainController", err, nil)
	if view := mc.view(); view != nil {
		view.ShowError(err)
	}
}

// Shutdown cancels any in-flight work.
func (mc *MainController) Shutdown() {
	mc.cancel()
}
