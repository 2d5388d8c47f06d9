package memory

import (
	"sort"
	"sync"
	"time"

	"filterdeck/internal/logger"
)

// Manager tracks live Mat allocations so leaks show up in the periodic
// performance log instead of as silent native memory growth.
type Manager struct {
	mu          sync.RWMutex
	allocations map[uint64]record
	stats       Stats
	log         logger.Logger
}

type record struct {
	size      int64
	tag       string
	createdAt time.Time
}

type Stats struct {
	AllocCount   int64
	DeallocCount int64
	UsedMemory   int64
	PeakMemory   int64
}

func NewManager(log logger.Logger) *Manager {
	return &Manager{
		allocations: make(map[uint64]record),
		log:         log,
	}
}

func (m *Manager) TrackAllocation(id uint64, size int64, tag string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.allocations[id] = record{size: size, tag: tag, createdAt: time.Now()}
	m.stats.AllocCount++
	m.stats.UsedMemory += size
	if m.stats.UsedMemory > m.stats.PeakMemory {
		m.stats.PeakMemory = m.stats.UsedMemory
	}
}

func (m *Manager) TrackDeallocation(id uint64, tag string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, exists := m.allocations[id]
	if !exists {
		if m.log != nil {
			m.log.Warning("MemoryManager", "deallocation of untracked Mat", map[string]interface{}{
				"id":  id,
				"tag": tag,
			})
		}
		return
	}

	delete(m.allocations, id)
	m.stats.DeallocCount++
	m.stats.UsedMemory -= rec.size
}

func (m *Manager) GetStats() (allocCount, deallocCount, usedMemory int64) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stats.AllocCount, m.stats.DeallocCount, m.stats.UsedMemory
}

// LiveAllocations returns the tags of Mats still alive, oldest first. Used by
// the shutdown sequence to report leaks.
func (m *Manager) LiveAllocations() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	recs := make([]record, 0, len(m.allocations))
	for _, rec := range m.allocations {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool {
		return recs[i].createdAt.Before(recs[j].createdAt)
	})

	tags := make([]string, 0, len(recs))
	for _, rec := range recs {
		tags = append(tags, rec.tag)
	}
	return tags
}

// Shutdown logs any Mats that were never released.
func (m *Manager) Shutdown() {
	m.mu.RLock()
	live := len(m.allocations)
	used := m.stats.UsedMemory
	m.mu.RUnlock()

	if live > 0 && m.log != nil {
		m.log.Warning("MemoryManager", "unreleased Mats at shutdown", map[string]interface{}{
			"count":       live,
			"used_memory": used,
		})
	}
}
