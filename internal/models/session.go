package models

import (
	"sync"
	"time"

	"filterdeck/internal/filter"
)

// SessionState names the UI session's position in its lifecycle:
// NoImage → ImageSelected → FilterApplied, looping back to ImageSelected on
// re-filter and to NoImage-adjacent on re-pick.
type SessionState int

const (
	StateNoImage SessionState = iota
	StateImageSelected
	StateFilterApplied
)

func (s SessionState) String() string {
	switch s {
	case StateNoImage:
		return "no_image"
	case StateImageSelected:
		return "image_selected"
	case StateFilterApplied:
		return "filter_applied"
	default:
		return "unknown"
	}
}

// Session tracks the current state, the selected filter, and whether a
// filter application is in flight. All transitions are mutex-guarded since
// filtering completes on a background goroutine.
type Session struct {
	mu             sync.RWMutex
	state          SessionState
	selectedFilter filter.Kind
	processing     bool
	lastApplied    time.Duration
}

func NewSession() *Session {
	return &Session{state: StateNoImage}
}

func (s *Session) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// ImagePicked records a fresh source image: the filter selection resets and
// any previous processed state is forgotten.
func (s *Session) ImagePicked() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = StateImageSelected
	s.selectedFilter = filter.None
}

// FilterSelected records the user's filter choice.
func (s *Session) FilterSelected(kind filter.Kind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedFilter = kind
}

func (s *Session) SelectedFilter() filter.Kind {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedFilter
}

// HasImage reports whether a source image has been picked this session.
func (s *Session) HasImage() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state != StateNoImage
}

// BeginProcessing marks a filter application as in flight. It returns false
// when another application is already running or no image is selected.
func (s *Session) BeginProcessing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.processing || s.state == StateNoImage {
		return false
	}
	s.processing = true
	return true
}

// CompleteProcessing records the outcome of a filter application.
func (s *Session) CompleteProcessing(took time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.processing = false
	s.state = StateFilterApplied
	s.lastApplied = took
}

// AbortProcessing clears the in-flight flag without a state change.
func (s *Session) AbortProcessing() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.processing = false
}

func (s *Session) IsProcessing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.processing
}

func (s *Session) LastApplied() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastApplied
}

// Reset returns the session to its initial state.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = StateNoImage
	s.selectedFilter = filter.None
	s.processing = false
	s.lastApplied = 0
}
