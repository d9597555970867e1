package store

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/portfolio-generator/internal/types"
)

// DefaultCapacity bounds the memory store when no capacity is configured.
const DefaultCapacity = 10000

// MemoryOptions configures a Memory store. A zero TTL disables expiry.
type MemoryOptions struct {
	TTL      time.Duration
	Capacity int
	// JanitorInterval is how often expired entries are swept. Defaults to TTL/2.
	JanitorInterval time.Duration
	Logger          *zap.Logger
}

type memoryEntry struct {
	data     []byte
	storedAt time.Time
}

// Memory is an in-process Store. Entries expire after the TTL and the oldest
// entry is evicted once the capacity is reached.
type Memory struct {
	mu       sync.Mutex
	entries  map[string]memoryEntry
	ttl      time.Duration
	capacity int
	logger   *zap.Logger
	now      func() time.Time

	closed bool
	stop   chan struct{}
	done   chan struct{}
}

// NewMemory creates a memory store and starts its janitor when a TTL is set.
func NewMemory(opts MemoryOptions) *Memory {
	if opts.Capacity <= 0 {
		opts.Capacity = DefaultCapacity
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	m := &Memory{
		entries:  make(map[string]memoryEntry),
		ttl:      opts.TTL,
		capacity: opts.Capacity,
		logger:   opts.Logger,
		now:      time.Now,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}

	if opts.TTL <= 0 {
		close(m.done)
		return m
	}
	interval := opts.JanitorInterval
	if interval <= 0 {
		interval = opts.TTL / 2
	}
	go m.janitor(interval)
	return m
}

func (m *Memory) janitor(interval time.Duration) {
	defer close(m.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			if n := m.sweep(); n > 0 {
				m.logger.Debug("expired portfolio records removed", zap.Int("count", n))
			}
		}
	}
}

func (m *Memory) sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for k, e := range m.entries {
		if m.expired(e) {
			delete(m.entries, k)
			n++
		}
	}
	return n
}

func (m *Memory) expired(e memoryEntry) bool {
	return m.ttl > 0 && m.now().Sub(e.storedAt) >= m.ttl
}

// Put implements Store.
func (m *Memory) Put(_ context.Context, key string, rec *types.PortfolioRecord) error {
	data, err := encode(rec)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	if _, exists := m.entries[key]; !exists && len(m.entries) >= m.capacity {
		m.evictOldest()
	}
	m.entries[key] = memoryEntry{data: data, storedAt: m.now()}
	return nil
}

// evictOldest removes the least recently stored entry. Callers hold mu.
func (m *Memory) evictOldest() {
	var oldestKey string
	var oldest time.Time
	for k, e := range m.entries {
		if oldestKey == "" || e.storedAt.Before(oldest) {
			oldestKey, oldest = k, e.storedAt
		}
	}
	if oldestKey != "" {
		delete(m.entries, oldestKey)
		m.logger.Debug("portfolio record evicted", zap.String("key", oldestKey))
	}
}

// Get implements Store.
func (m *Memory) Get(_ context.Context, key string) (*types.PortfolioRecord, error) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil, ErrClosed
	}
	e, ok := m.entries[key]
	if ok && m.expired(e) {
		delete(m.entries, key)
		ok = false
	}
	m.mu.Unlock()

	if !ok {
		return nil, nil
	}
	return decode(e.data)
}

// Delete implements Store.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	delete(m.entries, key)
	return nil
}

// Len returns the number of stored entries, expired ones included until swept.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Close stops the janitor and drops all entries. Closing twice is a no-op.
func (m *Memory) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	m.entries = nil
	m.mu.Unlock()

	close(m.stop)
	<-m.done
	return nil
}
