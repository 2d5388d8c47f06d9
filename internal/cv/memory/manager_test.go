package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrackingStats(t *testing.T) {
	m := NewManager(nil)

	m.TrackAllocation(1, 1000, "source_image")
	m.TrackAllocation(2, 500, "filtered_noir")

	alloc, dealloc, used := m.GetStats()
	assert.Equal(t, int64(2), alloc)
	assert.Equal(t, int64(0), dealloc)
	assert.Equal(t, int64(1500), used)

	m.TrackDeallocation(1, "source_image")

	alloc, dealloc, used = m.GetStats()
	assert.Equal(t, int64(2), alloc)
	assert.Equal(t, int64(1), dealloc)
	assert.Equal(t, int64(500), used)
}

func TestPeakMemory(t *testing.T) {
	m := NewManager(nil)

	m.TrackAllocation(1, 300, "a")
	m.TrackAllocation(2, 700, "b")
	m.TrackDeallocation(2, "b")
	m.TrackAllocation(3, 100, "c")

	m.mu.RLock()
	peak := m.stats.PeakMemory
	m.mu.RUnlock()
	assert.Equal(t, int64(1000), peak)
}

func TestUntrackedDeallocationIgnored(t *testing.T) {
	m := NewManager(nil)

	m.TrackAllocation(1, 100, "a")
	m.TrackDeallocation(99, "ghost")

	alloc, dealloc, used := m.GetStats()
	assert.Equal(t, int64(1), alloc)
	assert.Equal(t, int64(0), dealloc)
	assert.Equal(t, int64(100), used)
}

func TestLiveAllocations(t *testing.T) {
	m := NewManager(nil)

	m.TrackAllocation(1, 100, "first")
	m.TrackAllocation(2, 100, "second")
	m.TrackDeallocation(1, "first")

	assert.Equal(t, []string{"second"}, m.LiveAllocations())
}

func TestConcurrentTracking(t *testing.T) {
	m := NewManager(nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id uint64) {
			defer wg.Done()
			m.TrackAllocation(id, 10, "concurrent")
			m.TrackDeallocation(id, "concurrent")
		}(uint64(i))
	}
	wg.Wait()

	alloc, dealloc, used := m.GetStats()
	assert.Equal(t, int64(50), alloc)
	assert.Equal(t, int64(50), dealloc)
	assert.Equal(t, int64(0), used)
}
