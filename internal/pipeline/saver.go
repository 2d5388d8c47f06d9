package pipeline

import (
	"fmt"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"filterdeck/internal/logger"
	"filterdeck/internal/models"

	"fyne.io/fyne/v2"
)

const jpegQuality = 95

type imageSaver struct {
	log logger.Logger
}

// SaveToWriter encodes imageData to writer. With an empty format the choice
// follows the destination URI's extension, falling back to PNG.
func (s *imageSaver) SaveToWriter(writer io.Writer, imageData *models.ImageData, format string) error {
	if imageData == nil || imageData.Image == nil {
		return fmt.Errorf("no image data to save")
	}

	saveFormat := format
	if saveFormat == "" {
		if uriWriter, ok := writer.(fyne.URIWriteCloser); ok {
			saveFormat = formatForExtension(uriWriter.URI().Extension())
		} else {
			saveFormat = imageData.Format
		}
	}

	s.log.Debug("ImageSaver", "saving image", map[string]interface{}{
		"format": saveFormat,
		"width":  imageData.Width,
		"height": imageData.Height,
	})

	var err error
	switch saveFormat {
	case "jpeg":
		err = jpeg.Encode(writer, imageData.Image, &jpeg.Options{Quality: jpegQuality})
	case "png":
		err = png.Encode(writer, imageData.Image)
	default:
		if saveFormat != "" {
			s.log.Warning("ImageSaver", "format not supported, using PNG", map[string]interface{}{
				"requested_format": saveFormat,
			})
		}
		err = png.Encode(writer, imageData.Image)
	}

	if err != nil {
		s.log.Error("ImageSaver", err, map[string]interface{}{"format": saveFormat})
		return fmt.Errorf("encode %s: %w", saveFormat, err)
	}

	s.log.Info("ImageSaver", "image saved", map[string]interface{}{"format": saveFormat})
	return nil
}

func formatForExtension(ext string) string {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".png", "":
		return "png"
	default:
		return "png"
	}
}
