package internal

import (
	"sync"
)

// resultCache memoizes the most recently materialized table. It holds a
// single slot: a request for a different table evicts the previous result.
type resultCache struct {
	mu     sync.Mutex
	key    string
	frame  *DataFrame
	filled bool
}

func newResultCache() *resultCache {
	return &resultCache{}
}

func (c *resultCache) get(key string) (*DataFrame, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.filled && c.key == key {
		return c.frame, true
	}
	return nil, false
}

func (c *resultCache) put(key string, frame *DataFrame) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.key = key
	c.frame = frame
	c.filled = true
}

// last returns the cached frame regardless of key.
func (c *resultCache) last() (*DataFrame, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.filled {
		return c.frame, true
	}
	return nil, false
}
