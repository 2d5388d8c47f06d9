package components

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
)

const (
	ImageAreaWidth  = 520
	ImageAreaHeight = 420
)

// ImageDisplay shows the source image and its filtered rendition side by
// side.
type ImageDisplay struct {
	container     *container.Split
	sourceImage   *canvas.Image
	filteredImage *canvas.Image

	sourcePlaceholder   image.Image
	filteredPlaceholder image.Image
}

func NewImageDisplay() *ImageDisplay {
	d := &ImageDisplay{}
	d.createComponents()
	d.setupLayout()
	return d
}

func (d *ImageDisplay) createComponents() {
	d.sourcePlaceholder = placeholderImage()
	d.filteredPlaceholder = placeholderImage()

	d.sourceImage = canvas.NewImageFromImage(d.sourcePlaceholder)
	d.sourceImage.FillMode = canvas.ImageFillContain
	d.sourceImage.ScaleMode = canvas.ImageScaleSmooth
	d.sourceImage.SetMinSize(fyne.NewSize(ImageAreaWidth, ImageAreaHeight))

	d.filteredImage = canvas.NewImageFromImage(d.filteredPlaceholder)
	d.filteredImage.FillMode = canvas.ImageFillContain
	d.filteredImage.ScaleMode = canvas.ImageScaleSmooth
	d.filteredImage.SetMinSize(fyne.NewSize(ImageAreaWidth, ImageAreaHeight))
}

func (d *ImageDisplay) setupLayout() {
	d.container = container.NewHSplit(d.sourceImage, d.filteredImage)
	d.container.SetOffset(0.5)
}

func placeholderImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, ImageAreaWidth, ImageAreaHeight))

	background := color.RGBA{R: 240, G: 240, B: 240, A: 255}
	border := color.RGBA{R: 200, G: 200, B: 200, A: 255}
	for y := 0; y < ImageAreaHeight; y++ {
		for x := 0; x < ImageAreaWidth; x++ {
			img.Set(x, y, background)
		}
	}
	for x := 0; x < ImageAreaWidth; x++ {
		img.Set(x, 0, border)
		img.Set(x, ImageAreaHeight-1, border)
	}
	for y := 0; y < ImageAreaHeight; y++ {
		img.Set(0, y, border)
		img.Set(ImageAreaWidth-1, y, border)
	}
	return img
}

// SetSourceImage replaces the source pane; nil restores the placeholder.
func (d *ImageDisplay) SetSourceImage(img image.Image) {
	if img == nil {
		img = d.sourcePlaceholder
	}
	d.sourceImage.Image = img
	d.sourceImage.Refresh()
}

// SetFilteredImage replaces the filtered pane; nil restores the placeholder.
func (d *ImageDisplay) SetFilteredImage(img image.Image) {
	if img == nil {
		img = d.filteredPlaceholder
	}
	d.filteredImage.Image = img
	d.filteredImage.Refresh()
}

func (d *ImageDisplay) GetContainer() fyne.CanvasObject {
	return d.container
}
