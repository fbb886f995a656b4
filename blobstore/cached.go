package blobstore

import (
	"context"
	"path"

	"github.com/hupe1980/gridkit/internal/cache"
)

// CacheConfig configures a Cached store.
type CacheConfig struct {
	// MaxBytes bounds the cached blob contents. Blobs larger than
	// MaxBytes are read through without caching.
	MaxBytes int64

	// Cacheable selects the blobs worth caching. Blobs whose content can
	// change behind the store's back (such as a commit pointer written by
	// another process) should be excluded. If nil, DefaultCacheable is
	// used.
	Cacheable func(name string) bool
}

// DefaultCacheable caches every blob except CURRENT commit pointers, which
// move with each save.
func DefaultCacheable(name string) bool {
	return path.Base(name) != "CURRENT"
}

// Cached wraps a BlobStore with an in-memory LRU of whole blob contents.
//
// Writes and deletes issued through the wrapper invalidate the affected
// entry. Changes made directly on the inner store are not observed, so
// only cache blobs that are written once.
type Cached struct {
	inner     BlobStore
	lru       *cache.LRU
	cacheable func(string) bool
}

// NewCached wraps inner with a read cache.
func NewCached(inner BlobStore, cfg CacheConfig) *Cached {
	cacheable := cfg.Cacheable
	if cacheable == nil {
		cacheable = DefaultCacheable
	}
	return &Cached{
		inner:     inner,
		lru:       cache.NewLRU(cfg.MaxBytes),
		cacheable: cacheable,
	}
}

// Open serves the blob from the cache, reading and caching it in full on
// a miss.
func (c *Cached) Open(ctx context.Context, name string) (Blob, error) {
	if !c.cacheable(name) {
		return c.inner.Open(ctx, name)
	}
	if data, ok := c.lru.Get(name); ok {
		return &memoryBlob{data: data}, nil
	}

	data, err := ReadAll(ctx, c.inner, name)
	if err != nil {
		return nil, err
	}
	c.lru.Set(name, data)
	return &memoryBlob{data: data}, nil
}

// Put writes through and drops any cached copy.
func (c *Cached) Put(ctx context.Context, name string, data []byte) error {
	c.lru.Remove(name)
	return c.inner.Put(ctx, name, data)
}

// Create writes through. The cached copy is dropped now and again when
// the blob becomes visible.
func (c *Cached) Create(ctx context.Context, name string) (WritableBlob, error) {
	c.lru.Remove(name)
	w, err := c.inner.Create(ctx, name)
	if err != nil {
		return nil, err
	}
	return &cachedWritableBlob{WritableBlob: w, name: name, lru: c.lru}, nil
}

// Delete removes the blob and its cached copy.
func (c *Cached) Delete(ctx context.Context, name string) error {
	c.lru.Remove(name)
	return c.inner.Delete(ctx, name)
}

// List passes through to the wrapped store.
func (c *Cached) List(ctx context.Context, prefix string) ([]string, error) {
	return c.inner.List(ctx, prefix)
}

// Stats returns the cache hit and miss counters.
func (c *Cached) Stats() (hits, misses int64) {
	return c.lru.Stats()
}

// CachedBytes returns the size of the cached contents.
func (c *Cached) CachedBytes() int64 {
	return c.lru.Size()
}

type cachedWritableBlob struct {
	WritableBlob
	name string
	lru  *cache.LRU
}

func (w *cachedWritableBlob) Close() error {
	err := w.WritableBlob.Close()
	w.lru.Remove(w.name)
	return err
}
