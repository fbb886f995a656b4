package blobstore

import (
	"context"
	"io"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// ThrottleConfig limits the write load a store puts on its backend.
type ThrottleConfig struct {
	// BytesPerSec caps the write bandwidth. If 0, unlimited.
	BytesPerSec int64

	// MaxConcurrentWrites caps the number of in-flight Put/Create calls.
	// If 0, unlimited.
	MaxConcurrentWrites int64
}

// Throttled wraps a BlobStore and limits its write bandwidth and
// concurrency. Reads pass through untouched.
type Throttled struct {
	inner   BlobStore
	limiter *rate.Limiter       // nil if unlimited
	sem     *semaphore.Weighted // nil if unlimited
}

// NewThrottled wraps inner with the given limits.
func NewThrottled(inner BlobStore, cfg ThrottleConfig) *Throttled {
	t := &Throttled{inner: inner}
	if cfg.BytesPerSec > 0 {
		t.limiter = rate.NewLimiter(rate.Limit(cfg.BytesPerSec), int(cfg.BytesPerSec))
	}
	if cfg.MaxConcurrentWrites > 0 {
		t.sem = semaphore.NewWeighted(cfg.MaxConcurrentWrites)
	}
	return t
}

// Open passes through to the wrapped store.
func (t *Throttled) Open(ctx context.Context, name string) (Blob, error) {
	return t.inner.Open(ctx, name)
}

// Put waits for bandwidth before writing data.
func (t *Throttled) Put(ctx context.Context, name string, data []byte) error {
	if err := t.acquire(ctx); err != nil {
		return err
	}
	defer t.release()

	if err := t.wait(ctx, len(data)); err != nil {
		return err
	}
	return t.inner.Put(ctx, name, data)
}

// Create returns a blob whose writes are paced by the limiter. The write
// slot is held until the blob is closed.
func (t *Throttled) Create(ctx context.Context, name string) (WritableBlob, error) {
	if err := t.acquire(ctx); err != nil {
		return nil, err
	}
	w, err := t.inner.Create(ctx, name)
	if err != nil {
		t.release()
		return nil, err
	}
	return &throttledBlob{WritableBlob: w, ctx: ctx, t: t}, nil
}

// Delete passes through to the wrapped store.
func (t *Throttled) Delete(ctx context.Context, name string) error {
	return t.inner.Delete(ctx, name)
}

// List passes through to the wrapped store.
func (t *Throttled) List(ctx context.Context, prefix string) ([]string, error) {
	return t.inner.List(ctx, prefix)
}

func (t *Throttled) acquire(ctx context.Context) error {
	if t.sem == nil {
		return nil
	}
	return t.sem.Acquire(ctx, 1)
}

func (t *Throttled) release() {
	if t.sem != nil {
		t.sem.Release(1)
	}
}

// wait blocks until n bytes may be written. Requests larger than the burst
// are split.
func (t *Throttled) wait(ctx context.Context, n int) error {
	if t.limiter == nil {
		return nil
	}
	burst := t.limiter.Burst()
	for n > 0 {
		chunk := min(n, burst)
		if err := t.limiter.WaitN(ctx, chunk); err != nil {
			return err
		}
		n -= chunk
	}
	return nil
}

type throttledBlob struct {
	WritableBlob
	ctx    context.Context
	t      *Throttled
	closed bool
}

func (b *throttledBlob) Write(p []byte) (int, error) {
	if b.closed {
		return 0, io.ErrClosedPipe
	}
	if err := b.t.wait(b.ctx, len(p)); err != nil {
		return 0, err
	}
	return b.WritableBlob.Write(p)
}

func (b *throttledBlob) Close() error {
	if b.closed {
		return io.ErrClosedPipe
	}
	b.closed = true
	defer b.t.release()
	return b.WritableBlob.Close()
}
