package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"filterdeck/internal/filter"
)

func TestSessionLifecycle(t *testing.T) {
	s := NewSession()
	assert.Equal(t, StateNoImage, s.State())
	assert.False(t, s.HasImage())

	s.ImagePicked()
	assert.Equal(t, StateImageSelected, s.State())
	assert.True(t, s.HasImage())

	s.FilterSelected(filter.Noir)
	assert.True(t, s.BeginProcessing())
	s.CompleteProcessing(15 * time.Millisecond)

	assert.Equal(t, StateFilterApplied, s.State())
	assert.Equal(t, filter.Noir, s.SelectedFilter())
	assert.Equal(t, 15*time.Millisecond, s.LastApplied())
}

func TestImagePickedResetsFilterSelection(t *testing.T) {
	s := NewSession()
	s.ImagePicked()
	s.FilterSelected(filter.Chrome)

	s.ImagePicked()
	assert.Equal(t, filter.None, s.SelectedFilter())
	assert.Equal(t, StateImageSelected, s.State())
}

func TestBeginProcessingGuards(t *testing.T) {
	s := NewSession()
	assert.False(t, s.BeginProcessing(), "no image selected")

	s.ImagePicked()
	assert.True(t, s.BeginProcessing())
	assert.True(t, s.IsProcessing())
	assert.False(t, s.BeginProcessing(), "already in flight")

	s.AbortProcessing()
	assert.False(t, s.IsProcessing())
	assert.Equal(t, StateImageSelected, s.State(), "abort must not advance state")
	assert.True(t, s.BeginProcessing())
}

func TestSessionReset(t *testing.T) {
	s := NewSession()
	s.ImagePicked()
	s.FilterSelected(filter.Fade)
	s.BeginProcessing()
	s.CompleteProcessing(time.Millisecond)

	s.Reset()
	assert.Equal(t, StateNoImage, s.State())
	assert.Equal(t, filter.None, s.SelectedFilter())
	assert.False(t, s.IsProcessing())
	assert.Zero(t, s.LastApplied())
}

func TestSessionStateString(t *testing.T) {
	assert.Equal(t, "no_image", StateNoImage.String())
	assert.Equal(t, "image_selected", StateImageSelected.String())
	assert.Equal(t, "filter_applied", StateFilterApplied.String())
	assert.Equal(t, "unknown", SessionState(9).String())
}
