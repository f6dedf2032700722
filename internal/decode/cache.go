package decode

import (
	"sync"

	lru "github.com/hashicorp/golang-lru"
)

// Cache is the decoder's content-addressed cache (spec §4.3.3). It
// guarantees at-most-one concurrent computation per fingerprint:
// duplicate requests for a key already being computed block on the
// in-flight computation and receive its result, rather than re-running
// Viterbi (spec §5's cache contract).
type Cache struct {
	store *lru.Cache

	mu       sync.Mutex
	inflight map[string]*inflightCall
}

type inflightCall struct {
	wg  sync.WaitGroup
	val []Candidate
}

// NewCache returns a Cache bounded to size entries. A size of 0 means
// unbounded (backed by an arbitrarily large LRU).
func NewCache(size int) *Cache {
	if size <= 0 {
		size = 1 << 20
	}
	store, err := lru.New(size)
	if err != nil {
		// lru.New only fails for size <= 0, which is excluded above.
		panic(err)
	}
	return &Cache{store: store, inflight: make(map[string]*inflightCall)}
}

// GetOrCompute returns the cached value for key, computing it via
// compute exactly once even under concurrent callers.
func (c *Cache) GetOrCompute(key string, compute func() []Candidate) []Candidate {
	if v, ok := c.store.Get(key); ok {
		cands, _ := v.([]Candidate)
		return cands
	}

	c.mu.Lock()
	if call, ok := c.inflight[key]; ok {
		c.mu.Unlock()
		call.wg.Wait()
		return call.val
	}
	call := &inflightCall{}
	call.wg.Add(1)
	c.inflight[key] = call
	c.mu.Unlock()

	val := compute()
	call.val = val

	c.store.Add(key, val)

	c.mu.Lock()
	delete(c.inflight, key)
	c.mu.Unlock()

	call.wg.Done()
	return val
}

// Len returns the number of entries currently cached.
func (c *Cache) Len() int { return c.store.Len() }
