package views

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"

	"filterdeck/internal/filter"
	"filterdeck/internal/views/components"
)

// MainView is the single application screen: toolbar on top, source and
// filtered image panes in the middle, status bar at the bottom.
type MainView struct {
	window        fyne.Window
	mainContainer *fyne.Container
	toolbar       *components.Toolbar
	imageDisplay  *components.ImageDisplay
	statusBar     *components.StatusBar

	openHandler         func()
	exportHandler       func()
	saveAsHandler       func()
	filterChangeHandler func(filter.Kind)
}

func NewMainView(window fyne.Window) *MainView {
	view := &MainView{window: window}
	view.initializeComponents()
	view.buildLayout()
	view.setupEventHandlers()
	return view
}

func (mv *MainView) initializeComponents() {
	mv.toolbar = components.NewToolbar()
	mv.imageDisplay = components.NewImageDisplay()
	mv.statusBar = components.NewStatusBar()
}

func (mv *MainView) buildLayout() {
	mv.mainContainer = container.NewBorder(
		mv.toolbar.GetContainer(),   // top
		mv.statusBar.GetContainer(), // bottom
		nil,
		nil,
		mv.imageDisplay.GetContainer(),
	)
	mv.window.SetContent(mv.mainContainer)
}

func (mv *MainView) setupEventHandlers() {
	mv.toolbar.SetOpenHandler(func() {
		if mv.openHandler != nil {
			mv.openHandler()
		}
	})
	mv.toolbar.SetExportHandler(func() {
		if mv.exportHandler != nil {
			mv.exportHandler()
		}
	})
	mv.toolbar.SetSaveAsHandler(func() {
		if mv.saveAsHandler != nil {
			mv.saveAsHandler()
		}
	})
	mv.toolbar.SetFilterChangeHandler(func(kind filter.Kind) {
		if mv.filterChangeHandler != nil {
			mv.filterChangeHandler(kind)
		}
	})
}

// Event handler setters, called by the controller.

func (mv *MainView) SetOpenHandler(handler func())                    { mv.openHandler = handler }
func (mv *MainView) SetExportHandler(handler func())                  { mv.exportHandler = handler }
func (mv *MainView) SetSaveAsHandler(handler func())                  { mv.saveAsHandler = handler }
func (mv *MainView) SetFilterChangeHandler(handler func(filter.Kind)) { mv.filterChangeHandler = handler }

// UI update methods, called by the controller. All marshal onto the Fyne
// event loop.

func (mv *MainView) SetSourceImage(img image.Image) {
	fyne.Do(func() {
		mv.imageDisplay.SetSourceImage(img)
	})
}

func (mv *MainView) SetFilteredImage(img image.Image) {
	fyne.Do(func() {
		mv.imageDisplay.SetFilteredImage(img)
	})
}

func (mv *MainView) UpdateStatus(status string) {
	fyne.Do(func() {
		mv.statusBar.SetStatus(status)
	})
}

func (mv *MainView) UpdateImageInfo(width, height int, format string) {
	fyne.Do(func() {
		mv.statusBar.SetImageInfo(width, height, format)
	})
}

func (mv *MainView) SetMemoryInfo(matBytes, goBytes int64) {
	fyne.Do(func() {
		mv.statusBar.SetMemoryInfo(matBytes, goBytes)
	})
}

func (mv *MainView) SetImageLoaded(loaded bool) {
	fyne.Do(func() {
		mv.toolbar.SetImageLoaded(loaded)
	})
}

func (mv *MainView) SetProcessedAvailable(available bool) {
	fyne.Do(func() {
		mv.toolbar.SetProcessedAvailable(available)
	})
}

func (mv *MainView) SetProcessingActive(active bool) {
	fyne.Do(func() {
		mv.toolbar.SetProcessingActive(active)
	})
}

func (mv *MainView) ShowError(err error) {
	fyne.Do(func() {
		dialog.ShowError(err, mv.window)
	})
}

func (mv *MainView) ShowConfirm(title, message string, callback func(bool)) {
	fyne.Do(func() {
		dialog.ShowConfirm(title, message, callback, mv.window)
	})
}

func (mv *MainView) Window() fyne.Window {
	return mv.window
}

func (mv *MainView) Show() {
	mv.window.Show()
}
