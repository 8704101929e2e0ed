// Package pool provides object pooling for go-parseopt
// Used by the help and completion renderers and by diagnostic formatting
package pool

import (
	"strings"
	"sync"
)

// Pool provides a generic, type-safe object pool
type Pool[T any] struct {
	pool    sync.Pool
	reset   func(*T) // Optional reset function called before reuse
	maxSize int      // Maximum objects to keep (0 = unlimited)
	count   int64    // Current pool size (approximate)
	mutex   sync.RWMutex
}

// NewPool creates a new generic pool with the given factory function
func NewPool[T any](factory func() *T) *Pool[T] {
	return &Pool[T]{
		pool: sync.Pool{
			New: func() any {
				return factory()
			},
		},
	}
}

// NewPoolWithReset creates a pool with a reset function called before reuse
func NewPoolWithReset[T any](factory func() *T, reset func(*T)) *Pool[T] {
	p := NewPool(factory)
	p.reset = reset
	return p
}

// Get retrieves an object from the pool or creates a new one
func (p *Pool[T]) Get() *T {
	obj := p.pool.Get().(*T)
	if p.reset != nil {
		p.reset(obj)
	}
	if p.maxSize > 0 {
		p.mutex.Lock()
		if p.count > 0 {
			p.count--
		}
		p.mutex.Unlock()
	}
	return obj
}

// Put returns an object to the pool for reuse
func (p *Pool[T]) Put(obj *T) {
	if obj == nil {
		return
	}

	if p.maxSize > 0 {
		p.mutex.Lock()
		defer p.mutex.Unlock()
		if p.count >= int64(p.maxSize) {
			return
		}
		p.count++
	}

	p.pool.Put(obj)
}

// SetMaxSize sets the maximum number of objects to keep in the pool
func (p *Pool[T]) SetMaxSize(size int) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.maxSize = size
}

// Stats returns approximate pool statistics
func (p *Pool[T]) Stats() (count int64, maxSize int) {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return p.count, p.maxSize
}

// maxPooledBuilder bounds the capacity of builders kept for reuse so that a
// single huge usage screen does not pin memory forever.
const maxPooledBuilder = 64 << 10

// maxIdleBuilders bounds how many idle builders the shared pool keeps.
const maxIdleBuilders = 16

var builders = newBuilderPool()

func newBuilderPool() *Pool[strings.Builder] {
	p := NewPoolWithReset(
		func() *strings.Builder {
			b := &strings.Builder{}
			b.Grow(512)
			return b
		},
		func(b *strings.Builder) {
			b.Reset()
		},
	)
	p.SetMaxSize(maxIdleBuilders)
	return p
}

// GetBuilder retrieves an empty string builder for rendering
func GetBuilder() *strings.Builder {
	return builders.Get()
}

// PutBuilder returns a builder to the pool. Oversized builders are dropped.
func PutBuilder(b *strings.Builder) {
	if b == nil || b.Cap() > maxPooledBuilder {
		return
	}
	builders.Put(b)
}

// TokenSlice is a reusable scratch slice of argument tokens
type TokenSlice struct {
	*Pool[[]string]
}

// NewTokenSlicePool creates a pool of string slices with the given capacity
func NewTokenSlicePool(defaultCap int) *TokenSlice {
	return &TokenSlice{
		Pool: NewPoolWithReset(
			func() *[]string {
				slice := make([]string, 0, defaultCap)
				return &slice
			},
			func(slice *[]string) {
				*slice = (*slice)[:0] // Reset length but keep capacity
			},
		),
	}
}
