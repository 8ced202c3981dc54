// Package dedupe defines the interface for idempotency tracking of
// submitted event proposals.
package dedupe

import (
	"context"
	"sync"
)

// Deduper records seen request IDs so a retried submission is acknowledged
// instead of committed twice.
type Deduper interface {
	// SeenAndRecord atomically checks if id was seen and records it if not.
	// Returns true if id was already seen, false if it was newly recorded.
	SeenAndRecord(ctx context.Context, id string) bool

	// Unrecord removes an ID from the seen list, allowing a retry. Used
	// when a submission was recorded but its commit was rejected.
	Unrecord(ctx context.Context, id string)

	Size() int
}

const defaultMaxSize = 10000

// inMemoryDeduper implements Deduper with a map plus a FIFO ring of IDs in
// insertion order; when the cap is reached the oldest entry is evicted.
type inMemoryDeduper struct {
	mu      sync.Mutex
	seen    map[string]struct{}
	ring    []string
	head    int
	maxSize int
}

// Option applies a configuration option to the deduper.
type Option func(*inMemoryDeduper)

// WithMaxSize bounds the number of remembered IDs.
func WithMaxSize(n int) Option {
	return func(d *inMemoryDeduper) {
		if n > 0 {
			d.maxSize = n
		}
	}
}

// NewInMemoryDeduper creates a bounded in-memory deduper.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{maxSize: defaultMaxSize}
	for _, opt := range opts {
		opt(d)
	}
	d.seen = make(map[string]struct{}, d.maxSize)
	d.ring = make([]string, 0, d.maxSize)
	return d
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.seen[id]; ok {
		return true
	}
	if len(d.ring) < d.maxSize {
		d.ring = append(d.ring, id)
	} else {
		delete(d.seen, d.ring[d.head])
		d.ring[d.head] = id
		d.head = (d.head + 1) % d.maxSize
	}
	d.seen[id] = struct{}{}
	return false
}

func (d *inMemoryDeduper) Unrecord(_ context.Context, id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.seen, id)
}

func (d *inMemoryDeduper) Size() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.seen)
}
