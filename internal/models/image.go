package models

import (
	"image"
	"sync"
	"time"

	"filterdeck/internal/cv/safe"

	"fyne.io/fyne/v2"
)

// ImageData is a decoded raster image together with its Mat rendition and
// dimensions. Both views describe the same pixels.
type ImageData struct {
	Image       image.Image
	Mat         *safe.Mat
	Width       int
	Height      int
	Channels    int
	Format      string
	OriginalURI fyne.URI
	LoadTime    time.Time
}

// Release closes the Mat. The ImageData must not be used afterwards.
func (d *ImageData) Release() {
	if d != nil && d.Mat != nil {
		d.Mat.Close()
	}
}

// ImageStore holds the session's two image slots: the picked source and its
// filtered rendition. Both live only in process memory; replacing the source
// wholesale discards the processed slot.
type ImageStore struct {
	mu        sync.RWMutex
	source    *ImageData
	processed *ImageData

	totalLoaded   int64
	totalFiltered int64
	filterTime    time.Duration
}

func NewImageStore() *ImageStore {
	return &ImageStore{}
}

// SetSource replaces the source image and clears the processed slot, since a
// processed image is only ever derived from the current source.
func (s *ImageStore) SetSource(img *ImageData) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.source.Release()
	s.processed.Release()
	s.source = img
	s.processed = nil
	if img != nil {
		s.totalLoaded++
	}
}

func (s *ImageStore) Source() *ImageData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.source
}

// SetProcessed replaces the processed image with a freshly derived one.
func (s *ImageStore) SetProcessed(img *ImageData, took time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.processed.Release()
	s.processed = img
	if img != nil {
		s.totalFiltered++
		s.filterTime += took
	}
}

func (s *ImageStore) Processed() *ImageData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.processed
}

// Clear releases both slots.
func (s *ImageStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.source.Release()
	s.processed.Release()
	s.source = nil
	s.processed = nil
}

// Stats describes store activity for the performance log.
type Stats struct {
	HasSource         bool
	HasProcessed      bool
	TotalLoaded       int64
	TotalFiltered     int64
	AverageFilterTime time.Duration
}

func (s *ImageStore) GetStats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{
		HasSource:     s.source != nil,
		HasProcessed:  s.processed != nil,
		TotalLoaded:   s.totalLoaded,
		TotalFiltered: s.totalFiltered,
	}
	if s.totalFiltered > 0 {
		stats.AverageFilterTime = s.filterTime / time.Duration(s.totalFiltered)
	}
	return stats
}

// Shutdown releases all held resources.
func (s *ImageStore) Shutdown() {
	s.Clear()
}
