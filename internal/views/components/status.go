package components

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// StatusBar displays the session status, current image info, and memory use.
type StatusBar struct {
	container   *fyne.Container
	statusLabel *widget.Label
	imageInfo   *widget.Label
	memoryInfo  *widget.Label
}

func NewStatusBar() *StatusBar {
	sb := &StatusBar{}
	sb.statusLabel = widget.NewLabel("Ready")
	sb.imageInfo = widget.NewLabel("No image loaded")
	sb.memoryInfo = widget.NewLabel("Memory: --")
	sb.container = container.NewHBox(
		sb.statusLabel,
		widget.NewSeparator(),
		sb.imageInfo,
		widget.NewSeparator(),
		sb.memoryInfo,
	)
	return sb
}

func (sb *StatusBar) SetStatus(status string) {
	sb.statusLabel.SetText(status)
}

func (sb *StatusBar) SetImageInfo(width, height int, format string) {
	sb.imageInfo.SetText(fmt.Sprintf("Image: %dx%d, %s", width, height, format))
}

func (sb *StatusBar) SetMemoryInfo(matBytes, goBytes int64) {
	sb.memoryInfo.SetText(fmt.Sprintf("Memory: %d MB mats / %d MB heap",
		matBytes/(1024*1024), goBytes/(1024*1024)))
}

func (sb *StatusBar) Reset() {
	sb.statusLabel.SetText("Ready")
	sb.imageInfo.SetText("No image loaded")
	sb.memoryInfo.SetText("Memory: --")
}

func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}
