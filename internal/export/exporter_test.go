package export

import (
	"image"
	"image/color"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filterdeck/internal/logger"
	"filterdeck/internal/models"
)

func testLogger() logger.Logger {
	return logger.NewZerolog(io.Discard, zerolog.Disabled)
}

func testImageData(width, height int, format string) *models.ImageData {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	return &models.ImageData{Image: img, Width: width, Height: height, Format: format}
}

func exportedFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names
}

func TestExportWritesPNG(t *testing.T) {
	dir := t.TempDir()
	e := NewExporterAt(dir, testLogger())

	e.Export(testImageData(16, 12, "png"))
	e.Flush()

	names := exportedFiles(t, dir)
	require.Len(t, names, 1)
	assert.True(t, strings.HasPrefix(names[0], "filterdeck_"))
	assert.True(t, strings.HasSuffix(names[0], ".png"))

	f, err := os.Open(filepath.Join(dir, names[0]))
	require.NoError(t, err)
	defer f.Close()

	decoded, format, err := image.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 16, decoded.Bounds().Dx())
	assert.Equal(t, 12, decoded.Bounds().Dy())
}

func TestExportJPEGSource(t *testing.T) {
	dir := t.TempDir()
	e := NewExporterAt(dir, testLogger())

	e.Export(testImageData(8, 8, "jpeg"))
	e.Flush()

	names := exportedFiles(t, dir)
	require.Len(t, names, 1)
	assert.True(t, strings.HasSuffix(names[0], ".jpg"))
}

func TestExportNilIsNoOp(t *testing.T) {
	dir := t.TempDir()
	e := NewExporterAt(dir, testLogger())

	e.Export(nil)
	e.Export(&models.ImageData{})
	e.Flush()

	assert.Empty(t, exportedFiles(t, dir))
}

func TestExportNamesNeverCollide(t *testing.T) {
	dir := t.TempDir()
	e := NewExporterAt(dir, testLogger())

	for i := 0; i < 5; i++ {
		e.Export(testImageData(4, 4, "png"))
	}
	e.Flush()

	assert.Len(t, exportedFiles(t, dir), 5)
}

func TestExportUnwritableDirNeverSurfaces(t *testing.T) {
	e := NewExporterAt(filepath.Join(t.TempDir(), "missing", "\x00bad"), testLogger())

	assert.NotPanics(t, func() {
		e.Export(testImageData(4, 4, "png"))
		e.Flush()
	})
}

func TestNewExporterHonorsEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(libraryDirEnv, dir)

	e := NewExporter(testLogger())
	assert.Equal(t, dir, e.LibraryDir())
}
