package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"filterdeck/internal/cv/conversion"
	"filterdeck/internal/cv/safe"
	"filterdeck/internal/filter"
	"filterdeck/internal/logger"
	"filterdeck/internal/models"

	"fyne.io/fyne/v2"
)

// Coordinator owns the pick → filter → save pipeline: it loads images into
// the store's source slot, derives the processed slot through the filter
// engine, and encodes results on demand.
type Coordinator struct {
	store   *models.ImageStore
	session *models.Session
	engine  *filter.Engine
	loader  *imageLoader
	saver   *imageSaver
	log     logger.Logger
}

func NewCoordinator(tracker safe.Tracker, log logger.Logger, store *models.ImageStore, session *models.Session) *Coordinator {
	return &Coordinator{
		store:   store,
		session: session,
		engine:  filter.NewEngine(tracker, log),
		loader:  &imageLoader{tracker: tracker, log: log},
		saver:   &imageSaver{log: log},
		log:     log,
	}
}

// LoadImage decodes the picked image and installs it as the session source.
// The previous source and any processed rendition are discarded.
func (c *Coordinator) LoadImage(reader fyne.URIReadCloser) (*models.ImageData, error) {
	imageData, err := c.loader.LoadFromReader(reader)
	if err != nil {
		return nil, err
	}

	c.store.SetSource(imageData)
	c.session.ImagePicked()
	return imageData, nil
}

// LoadImageFromBytes is LoadImage for an already-read buffer.
func (c *Coordinator) LoadImageFromBytes(data []byte, extension string) (*models.ImageData, error) {
	imageData, err := c.loader.LoadFromBytes(data, extension)
	if err != nil {
		return nil, err
	}

	c.store.SetSource(imageData)
	c.session.ImagePicked()
	return imageData, nil
}

// ApplyFilter recomputes the processed slot from the current source with the
// given preset. filter.None yields a pixel-identical passthrough copy. The
// processed image always matches the source's pixel dimensions.
func (c *Coordinator) ApplyFilter(ctx context.Context, kind filter.Kind) (*models.ImageData, error) {
	source := c.store.Source()
	if source == nil {
		return nil, fmt.Errorf("no image loaded")
	}

	if !c.session.BeginProcessing() {
		return nil, fmt.Errorf("filter application already in progress")
	}

	start := time.Now()
	resultMat, err := c.engine.Apply(ctx, source.Mat, kind)
	if err != nil {
		c.session.AbortProcessing()
		return nil, fmt.Errorf("filter apply failed: %w", err)
	}

	resultImage, err := conversion.MatToImage(resultMat)
	if err != nil {
		resultMat.Close()
		c.session.AbortProcessing()
		return nil, fmt.Errorf("result conversion failed: %w", err)
	}

	took := time.Since(start)
	processed := &models.ImageData{
		Image:       resultImage,
		Mat:         resultMat,
		Width:       resultMat.Cols(),
		Height:      resultMat.Rows(),
		Channels:    resultMat.Channels(),
		Format:      source.Format,
		OriginalURI: source.OriginalURI,
		LoadTime:    source.LoadTime,
	}

	c.store.SetProcessed(processed, took)
	c.session.CompleteProcessing(took)

	c.log.Info("Coordinator", "filter applied", map[string]interface{}{
		"kind":    kind.String(),
		"width":   processed.Width,
		"height":  processed.Height,
		"took_ms": took.Milliseconds(),
	})

	return processed, nil
}

// SaveImage encodes imageData to writer, choosing the format from the
// destination extension.
func (c *Coordinator) SaveImage(writer io.Writer, imageData *models.ImageData) error {
	return c.saver.SaveToWriter(writer, imageData, "")
}

func (c *Coordinator) Source() *models.ImageData {
	return c.store.Source()
}

func (c *Coordinator) Processed() *models.ImageData {
	return c.store.Processed()
}

// Shutdown releases both image slots.
func (c *Coordinator) Shutdown() {
	c.store.Shutdown()
}
