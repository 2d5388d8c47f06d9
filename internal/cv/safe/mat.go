package safe

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"gocv.io/x/gocv"
)

// Tracker records Mat allocations and deallocations. Implemented by the
// memory manager; kept as a local interface to avoid an import cycle.
type Tracker interface {
	TrackAllocation(id uint64, size int64, tag string)
	TrackDeallocation(id uint64, tag string)
}

// Mat wraps a gocv.Mat with a validity flag, a mutex, and a finalizer so a
// released Mat can never be touched through this handle and a leaked handle
// is eventually closed by the garbage collector.
type Mat struct {
	mat     gocv.Mat
	isValid int32
	mu      sync.RWMutex
	id      uint64
	tracker Tracker
	tag     string
}

var nextMatID uint64

func New(rows, cols int, matType gocv.MatType) (*Mat, error) {
	return NewTracked(rows, cols, matType, nil, "")
}

func NewTracked(rows, cols int, matType gocv.MatType, tracker Tracker, tag string) (*Mat, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("invalid dimensions: %dx%d", cols, rows)
	}

	mat := gocv.NewMatWithSize(rows, cols, matType)
	if mat.Empty() {
		mat.Close()
		return nil, fmt.Errorf("failed to create Mat with size %dx%d", cols, rows)
	}

	return wrap(mat, tracker, tag), nil
}

// FromMat clones src into a new guarded Mat. The caller keeps ownership of
// src.
func FromMat(src gocv.Mat) (*Mat, error) {
	return FromMatTracked(src, nil, "")
}

func FromMatTracked(src gocv.Mat, tracker Tracker, tag string) (*Mat, error) {
	if src.Empty() {
		return nil, fmt.Errorf("source Mat is empty")
	}

	cloned := src.Clone()
	if cloned.Empty() {
		cloned.Close()
		return nil, fmt.Errorf("failed to clone Mat")
	}

	return wrap(cloned, tracker, tag), nil
}

// Adopt takes ownership of src without copying. src must not be used or
// closed by the caller afterwards.
func Adopt(src gocv.Mat, tracker Tracker, tag string) (*Mat, error) {
	if src.Empty() {
		src.Close()
		return nil, fmt.Errorf("cannot adopt empty Mat")
	}
	return wrap(src, tracker, tag), nil
}

func wrap(mat gocv.Mat, tracker Tracker, tag string) *Mat {
	m := &Mat{
		mat:     mat,
		isValid: 1,
		id:      atomic.AddUint64(&nextMatID, 1),
		tracker: tracker,
		tag:     tag,
	}

	if tracker != nil {
		size := int64(mat.Rows() * mat.Cols() * matTypeSize(mat.Type()))
		tracker.TrackAllocation(m.id, size, tag)
	}

	runtime.SetFinalizer(m, (*Mat).finalize)
	return m
}

func (m *Mat) IsValid() bool {
	return atomic.LoadInt32(&m.isValid) == 1
}

func (m *Mat) Empty() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.IsValid() {
		return true
	}
	return m.mat.Empty()
}

func (m *Mat) Rows() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.IsValid() {
		return 0
	}
	return m.mat.Rows()
}

func (m *Mat) Cols() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.IsValid() {
		return 0
	}
	return m.mat.Cols()
}

func (m *Mat) Channels() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.IsValid() {
		return 0
	}
	return m.mat.Channels()
}

func (m *Mat) Type() gocv.MatType {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.IsValid() {
		return gocv.MatTypeCV8UC1
	}
	return m.mat.Type()
}

func (m *Mat) Clone() (*Mat, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.IsValid() || m.mat.Empty() {
		return nil, fmt.Errorf("cannot clone released or empty Mat")
	}
	return FromMatTracked(m.mat, m.tracker, m.tag+"_clone")
}

// ToBytes returns a copy of the underlying pixel data in row-major order.
func (m *Mat) ToBytes() ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.IsValid() || m.mat.Empty() {
		return nil, fmt.Errorf("cannot read released or empty Mat")
	}
	return m.mat.ToBytes(), nil
}

// Raw exposes the wrapped gocv.Mat for use with gocv functions. The caller
// must not close it and must not retain it past the lifetime of m.
func (m *Mat) Raw() gocv.Mat {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.mat
}

// WithRaw runs fn with the underlying Mat while holding the read lock, so a
// concurrent Close cannot release the data mid-operation. fn must not call
// other methods on m.
func (m *Mat) WithRaw(fn func(raw gocv.Mat) error) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.IsValid() || m.mat.Empty() {
		return fmt.Errorf("cannot access released or empty Mat")
	}
	return fn(m.mat)
}

func (m *Mat) ID() uint64 {
	return m.id
}

func (m *Mat) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if atomic.CompareAndSwapInt32(&m.isValid, 1, 0) {
		if m.tracker != nil {
			m.tracker.TrackDeallocation(m.id, m.tag)
		}
		if !m.mat.Empty() {
			m.mat.Close()
		}
		runtime.SetFinalizer(m, nil)
	}
}

// finalize is last-resort cleanup when Close was never called.
func (m *Mat) finalize() {
	if atomic.LoadInt32(&m.isValid) == 1 {
		m.Close()
	}
}

func matTypeSize(matType gocv.MatType) int {
	switch matType {
	case gocv.MatTypeCV8UC1:
		return 1
	case gocv.MatTypeCV8UC3:
		return 3
	case gocv.MatTypeCV8UC4:
		return 4
	case gocv.MatTypeCV16UC1:
		return 2
	case gocv.MatTypeCV16UC3:
		return 6
	case gocv.MatTypeCV32FC1:
		return 4
	case gocv.MatTypeCV32FC3:
		return 12
	default:
		return 1
	}
}
