// Package picker presents the system file-open dialog as an asynchronous
// request/response: one request yields exactly one result, with cancellation
// delivered as a nil result instead of a callback that never fires.
package picker

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
)

var imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp"}

// Result carries the outcome of one pick request. Reader is nil when the
// user cancelled or the dialog failed; Err is set only in the failure case.
type Result struct {
	Reader fyne.URIReadCloser
	Err    error
}

// Cancelled reports whether the user dismissed the dialog without a choice.
func (r *Result) Cancelled() bool {
	return r.Reader == nil && r.Err == nil
}

// Request shows the image-open dialog over parent and returns a channel that
// delivers exactly one Result and is then closed. The dialog dismisses
// itself after either outcome; the caller owns Reader and must close it.
//
// Must be called on the Fyne event loop.
func Request(parent fyne.Window) <-chan *Result {
	results := make(chan *Result, 1)

	fileOpen := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			results <- &Result{Err: err}
		} else {
			results <- &Result{Reader: reader}
		}
		close(results)
	}, parent)

	fileOpen.SetFilter(storage.NewExtensionFileFilter(imageExtensions))
	fileOpen.Show()

	return results
}
