package controllers

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filterdeck/internal/export"
	"filterdeck/internal/filter"
	"filterdeck/internal/logger"
	"filterdeck/internal/models"
	"filterdeck/internal/picker"
	"filterdeck/internal/pipeline"
)

func newTestController(t *testing.T) *MainController {
	t.Helper()

	log := logger.NewZerolog(io.Discard, zerolog.Disabled)
	store := models.NewImageStore()
	t.Cleanup(store.Shutdown)
	session := models.NewSession()
	coordinator := pipeline.NewCoordinator(nil, log, store, session)
	exporter := export.NewExporterAt(t.TempDir(), log)

	mc := NewMainController(context.Background(), coordinator, session, exporter, log)
	t.Cleanup(mc.Shutdown)
	return mc
}

func loadFixture(t *testing.T, mc *MainController) *models.ImageData {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 24, 18))
	for y := 0; y < 18; y++ {
		for x := 0; x < 24; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 10), G: uint8(y * 14), B: 99, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	loaded, err := mc.coordinator.LoadImageFromBytes(buf.Bytes(), ".png")
	require.NoError(t, err)
	return loaded
}

func TestCancelledPickLeavesStateUntouched(t *testing.T) {
	mc := newTestController(t)

	source := loadFixture(t, mc)
	mc.session.FilterSelected(filter.Noir)
	processed, err := mc.coordinator.ApplyFilter(context.Background(), filter.Noir)
	require.NoError(t, err)

	mc.handlePickResult(&picker.Result{})

	assert.Same(t, source, mc.coordinator.Source())
	assert.Same(t, processed, mc.coordinator.Processed())
	assert.Equal(t, filter.Noir, mc.session.SelectedFilter())
	assert.Equal(t, models.StateFilterApplied, mc.session.State())
}

func TestNilPickResultLeavesStateUntouched(t *testing.T) {
	mc := newTestController(t)
	source := loadFixture(t, mc)

	mc.handlePickResult(nil)

	assert.Same(t, source, mc.coordinator.Source())
	assert.True(t, mc.session.HasImage())
}

func TestFailedPickLeavesStateUntouched(t *testing.T) {
	mc := newTestController(t)

	source := loadFixture(t, mc)
	processed, err := mc.coordinator.ApplyFilter(context.Background(), filter.Mono)
	require.NoError(t, err)

	mc.handlePickResult(&picker.Result{Err: errors.New("dialog failed")})

	assert.Same(t, source, mc.coordinator.Source())
	assert.Same(t, processed, mc.coordinator.Processed())
}

func TestCancelledPickBeforeFirstImage(t *testing.T) {
	mc := newTestController(t)

	mc.handlePickResult(&picker.Result{})

	assert.Nil(t, mc.coordinator.Source())
	assert.Nil(t, mc.coordinator.Processed())
	assert.False(t, mc.session.HasImage())
}
