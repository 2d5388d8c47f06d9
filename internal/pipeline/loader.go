package pipeline

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"strings"
	"time"

	_ "golang.org/x/image/bmp"

	"filterdeck/internal/cv/conversion"
	"filterdeck/internal/cv/safe"
	"filterdeck/internal/logger"
	"filterdeck/internal/models"

	"fyne.io/fyne/v2"
)

type imageLoader struct {
	tracker safe.Tracker
	log     logger.Logger
}

func (l *imageLoader) LoadFromReader(reader fyne.URIReadCloser) (*models.ImageData, error) {
	originalURI := reader.URI()

	l.log.Debug("ImageLoader", "loading image", map[string]interface{}{
		"path":      originalURI.Path(),
		"extension": strings.ToLower(originalURI.Extension()),
	})

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	imageData, err := l.LoadFromBytes(data, strings.ToLower(originalURI.Extension()))
	if err != nil {
		return nil, err
	}

	imageData.OriginalURI = originalURI
	return imageData, nil
}

func (l *imageLoader) LoadFromBytes(data []byte, extension string) (*models.ImageData, error) {
	img, decodedFormat, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	mat, err := conversion.ImageToMat(img, l.tracker, "source_image")
	if err != nil {
		return nil, fmt.Errorf("failed to convert image to Mat: %w", err)
	}

	bounds := img.Bounds()
	imageData := &models.ImageData{
		Image:    img,
		Mat:      mat,
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
		Channels: mat.Channels(),
		Format:   determineFormat(extension, decodedFormat),
		LoadTime: time.Now(),
	}

	l.log.Info("ImageLoader", "image loaded", map[string]interface{}{
		"width":    imageData.Width,
		"height":   imageData.Height,
		"channels": imageData.Channels,
		"format":   imageData.Format,
	})

	return imageData, nil
}

func determineFormat(extension, decodedFormat string) string {
	switch extension {
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".png":
		return "png"
	case ".gif":
		return "gif"
	case ".bmp":
		return "bmp"
	default:
		if decodedFormat != "" {
			return decodedFormat
		}
		return "unknown"
	}
}
