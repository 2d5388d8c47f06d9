// Package export writes processed images into the user's picture library.
// The write is fire and forget: the UI never observes the outcome.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"filterdeck/internal/logger"
	"filterdeck/internal/models"

	"github.com/anthonynsimon/bild/imgio"
)

const (
	libraryDirEnv  = "FILTERDECK_LIBRARY_DIR"
	librarySubdir  = "FilterDeck"
	exportTimeFmt  = "20060102_150405"
	exportJPEGQual = 95
)

// Exporter writes images into a library directory with auto-generated,
// timestamped names.
type Exporter struct {
	dir      string
	log      logger.Logger
	inFlight sync.WaitGroup
	seq      uint64
}

// NewExporter resolves the library directory: FILTERDECK_LIBRARY_DIR when
// set, otherwise <home>/Pictures/FilterDeck.
func NewExporter(log logger.Logger) *Exporter {
	dir := os.Getenv(libraryDirEnv)
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		dir = filepath.Join(home, "Pictures", librarySubdir)
	}
	return NewExporterAt(dir, log)
}

func NewExporterAt(dir string, log logger.Logger) *Exporter {
	return &Exporter{dir: dir, log: log}
}

func (e *Exporter) LibraryDir() string {
	return e.dir
}

// Export dispatches a library write for img and returns immediately. A nil
// image is a no-op. Failures are logged at debug level and never surfaced.
func (e *Exporter) Export(img *models.ImageData) {
	if img == nil || img.Image == nil {
		return
	}

	e.inFlight.Add(1)
	go func() {
		defer e.inFlight.Done()
		if err := e.write(img); err != nil {
			e.log.Debug("Exporter", "library write failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()
}

// write performs the actual library write synchronously.
func (e *Exporter) write(img *models.ImageData) error {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return fmt.Errorf("create library dir: %w", err)
	}

	format := img.Format
	if format != "jpeg" {
		format = "png"
	}

	path := filepath.Join(e.dir, e.fileName(format))
	encoder := imgio.PNGEncoder()
	if format == "jpeg" {
		encoder = imgio.JPEGEncoder(exportJPEGQual)
	}

	if err := imgio.Save(path, img.Image, encoder); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}

	e.log.Info("Exporter", "image exported", map[string]interface{}{
		"path":   path,
		"width":  img.Width,
		"height": img.Height,
	})
	return nil
}

// fileName generates a timestamped name with a sequence suffix so exports
// within the same second never collide.
func (e *Exporter) fileName(format string) string {
	ext := ".png"
	if format == "jpeg" {
		ext = ".jpg"
	}
	seq := atomic.AddUint64(&e.seq, 1)
	return fmt.Sprintf("filterdeck_%s_%03d%s", time.Now().Format(exportTimeFmt), seq, ext)
}

// Flush blocks until all dispatched writes have finished. Used by the
// shutdown sequence.
func (e *Exporter) Flush() {
	e.inFlight.Wait()
}
