package picker

import (
	"errors"
	"io"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/storage"
	"github.com/stretchr/testify/assert"
)

type stubReader struct {
	uri fyne.URI
}

func (s *stubReader) Read(p []byte) (int, error) { return 0, io.EOF }
func (s *stubReader) Close() error               { return nil }
func (s *stubReader) URI() fyne.URI              { return s.uri }

func TestResultCancelled(t *testing.T) {
	cancelled := &Result{}
	assert.True(t, cancelled.Cancelled())

	failed := &Result{Err: errors.New("dialog failed")}
	assert.False(t, failed.Cancelled())

	picked := &Result{Reader: &stubReader{uri: storage.NewFileURI("/photos/cat.png")}}
	assert.False(t, picked.Cancelled())
}

func TestImageExtensionsAreRasterFormats(t *testing.T) {
	assert.ElementsMatch(t,
		[]string{".png", ".jpg", ".jpeg", ".gif", ".bmp"},
		imageExtensions)
}
