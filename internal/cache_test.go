package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCacheEmpty(t *testing.T) {
	cache := newResultCache()

	_, ok := cache.get("a")
	assert.False(t, ok)

	_, ok = cache.last()
	assert.False(t, ok)
}

func TestCacheHit(t *testing.T) {
	cache := newResultCache()
	frame := &DataFrame{Columns: []string{"col"}}

	cache.put("a", frame)

	cached, ok := cache.get("a")
	assert.True(t, ok)
	assert.Equal(t, frame, cached)
}

func TestCacheEviction(t *testing.T) {
	cache := newResultCache()
	a := &DataFrame{Columns: []string{"a"}}
	b := &DataFrame{Columns: []string{"b"}}

	cache.put("a", a)
	cache.put("b", b)

	_, ok := cache.get("a")
	assert.False(t, ok)

	cached, ok := cache.get("b")
	assert.True(t, ok)
	assert.Equal(t, b, cached)
}

func TestCacheLast(t *testing.T) {
	cache := newResultCache()
	frame := &DataFrame{Columns: []string{"col"}, Rows: [][]interface{}{{1}}}

	cache.put("a", frame)

	last, ok := cache.last()
	assert.True(t, ok)
	assert.Equal(t, frame, last)
}
