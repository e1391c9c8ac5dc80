// Package dedupe tracks play keys already seen while decoding a play table.
package dedupe

import (
	"context"
	"sync"
)

// defaultMaxSize comfortably holds a full season of plays.
const defaultMaxSize = 100_000

// Deduper records seen keys so repeated rows are dropped.
type Deduper interface {
	// SeenAndRecord reports whether key was already recorded, recording it
	// when it was not.
	SeenAndRecord(ctx context.Context, key string) bool

	Size() int64
}

// Key builds the identity of a play within a table.
func Key(gameID, playID string) string {
	return gameID + "/" + playID
}

// inMemoryDeduper keeps keys in a map. When maxSize > 0 the oldest keys are
// evicted first, tracked by a ring of insertion order.
type inMemoryDeduper struct {
	mu      sync.Mutex
	seen    map[string]struct{}
	ring    []string
	next    int
	maxSize int
}

// NewInMemoryDeduper creates a deduper with configuration options.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{maxSize: defaultMaxSize}
	for _, opt := range opts {
		opt(d)
	}
	d.seen = make(map[string]struct{})
	if d.maxSize > 0 {
		d.ring = make([]string, d.maxSize)
	}
	return d
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[key]; ok {
		return true
	}
	if d.maxSize <= 0 {
		d.seen[key] = struct{}{}
		return false
	}

	// The slot at next holds the oldest key once the ring has wrapped.
	if old := d.ring[d.next]; old != "" {
		delete(d.seen, old)
	}
	d.ring[d.next] = key
	d.seen[key] = struct{}{}
	d.next = (d.next + 1) % d.maxSize
	return false
}

func (d *inMemoryDeduper) Size() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return int64(len(d.seen))
}
