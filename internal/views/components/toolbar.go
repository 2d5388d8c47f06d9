package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"filterdeck/internal/filter"
)

// Toolbar holds the session actions: open an image, choose a preset filter,
// export to the library, save to an explicit location.
type Toolbar struct {
	container    *fyne.Container
	openButton   *widget.Button
	exportButton *widget.Button
	saveAsButton *widget.Button
	filterSelect *widget.Select

	openHandler         func()
	exportHandler       func()
	saveAsHandler       func()
	filterChangeHandler func(filter.Kind)

	selectionByLabel map[string]filter.Kind
	suppressEvents   bool
}

func NewToolbar() *Toolbar {
	t := &Toolbar{}
	t.createComponents()
	t.buildLayout()
	return t
}

func (t *Toolbar) createComponents() {
	t.openButton = widget.NewButton("Open Image", nil)
	t.openButton.Importance = widget.HighImportance
	t.openButton.OnTapped = func() {
		if t.openHandler != nil {
			t.openHandler()
		}
	}

	t.exportButton = widget.NewButton("Export to Library", nil)
	t.exportButton.Disable()
	t.exportButton.OnTapped = func() {
		if t.exportHandler != nil {
			t.exportHandler()
		}
	}

	t.saveAsButton = widget.NewButton("Save As…", nil)
	t.saveAsButton.Disable()
	t.saveAsButton.OnTapped = func() {
		if t.saveAsHandler != nil {
			t.saveAsHandler()
		}
	}

	t.selectionByLabel = make(map[string]filter.Kind)
	options := []string{filter.None.DisplayName()}
	t.selectionByLabel[filter.None.DisplayName()] = filter.None
	for _, kind := range filter.Kinds() {
		options = append(options, kind.DisplayName())
		t.selectionByLabel[kind.DisplayName()] = kind
	}

	t.filterSelect = widget.NewSelect(options, func(label string) {
		if t.suppressEvents || t.filterChangeHandler == nil {
			return
		}
		kind, ok := t.selectionByLabel[label]
		if !ok {
			return
		}
		t.filterChangeHandler(kind)
	})
	t.filterSelect.PlaceHolder = "Select filter"
	t.filterSelect.Disable()
}

func (t *Toolbar) buildLayout() {
	t.container = container.NewHBox(
		t.openButton,
		widget.NewSeparator(),
		widget.NewLabel("Filter:"),
		t.filterSelect,
		widget.NewSeparator(),
		t.exportButton,
		t.saveAsButton,
	)
}

func (t *Toolbar) SetOpenHandler(handler func())                   { t.openHandler = handler }
func (t *Toolbar) SetExportHandler(handler func())                 { t.exportHandler = handler }
func (t *Toolbar) SetSaveAsHandler(handler func())                 { t.saveAsHandler = handler }
func (t *Toolbar) SetFilterChangeHandler(handler func(filter.Kind)) { t.filterChangeHandler = handler }

// SetImageLoaded enables the filter selector once a source image exists and
// resets the selection to passthrough. The reset does not fire the change
// handler; the controller applies the passthrough itself.
func (t *Toolbar) SetImageLoaded(loaded bool) {
	t.suppressEvents = true
	defer func() { t.suppressEvents = false }()

	if loaded {
		t.filterSelect.Enable()
		t.filterSelect.SetSelected(filter.None.DisplayName())
	} else {
		t.filterSelect.Disable()
		t.filterSelect.ClearSelected()
	}
}

// SetProcessedAvailable toggles the actions that need a processed image.
func (t *Toolbar) SetProcessedAvailable(available bool) {
	if available {
		t.exportButton.Enable()
		t.saveAsButton.Enable()
	} else {
		t.exportButton.Disable()
		t.saveAsButton.Disable()
	}
}

// SetProcessingActive locks the selector while a filter application is in
// flight.
func (t *Toolbar) SetProcessingActive(active bool) {
	if active {
		t.filterSelect.Disable()
		t.openButton.Disable()
	} else {
		t.filterSelect.Enable()
		t.openButton.Enable()
	}
}

func (t *Toolbar) GetContainer() *fyne.Container {
	return t.container
}
