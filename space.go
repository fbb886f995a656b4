package gridkit

import (
	"context"
	"sync"
	"time"

	"github.com/hupe1980/gridkit/geom"
	"github.com/hupe1980/gridkit/grid"
	"github.com/hupe1980/gridkit/num"
)

// Space is a grid.GridMap shared between goroutines.
//
// All access goes through one RWMutex: queries take the read lock,
// mutations the write lock. Operations are logged and metered through the
// configured Logger and MetricsCollector.
type Space[I any, T num.Scalar] struct {
	mu      sync.RWMutex
	grid    *grid.GridMap[I, T]
	closed  bool
	opts    options
	logger  *Logger
	metrics MetricsCollector

	saveMu  sync.Mutex
	version uint64
}

// New creates an empty space covering the box spanned by min and max.
func New[I any, T num.Scalar](min, max geom.Vec3[T], optFns ...Option) (*Space[I, T], error) {
	opts := applyOptions(optFns)

	g, err := grid.New[I](min, max, opts.gridOptions()...)
	if err != nil {
		return nil, err
	}
	return newSpace(g, opts), nil
}

// Wrap shares an existing grid. The caller must not touch g afterwards.
func Wrap[I any, T num.Scalar](g *grid.GridMap[I, T], optFns ...Option) *Space[I, T] {
	return newSpace(g, applyOptions(optFns))
}

func newSpace[I any, T num.Scalar](g *grid.GridMap[I, T], opts options) *Space[I, T] {
	return &Space[I, T]{
		grid:    g,
		opts:    opts,
		logger:  opts.logger.WithSpace(opts.name),
		metrics: opts.metricsCollector,
	}
}

// Add places item at pos. See grid.GridMap.Add for the error contract.
func (s *Space[I, T]) Add(ctx context.Context, item I, pos geom.Vec3[T]) (grid.Index, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	start := time.Now()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return 0, ErrClosed
	}
	i, err := s.grid.Add(item, pos)
	s.mu.Unlock()

	s.metrics.RecordAdd(time.Since(start), err)
	s.logger.LogAdd(ctx, pos, i, err)
	return i, err
}

// Remove deletes the item at index and reports whether there was one.
func (s *Space[I, T]) Remove(ctx context.Context, index grid.Index) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	start := time.Now()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false, ErrClosed
	}
	removed := s.grid.Remove(index)
	s.mu.Unlock()

	s.metrics.RecordRemove(time.Since(start), removed)
	s.logger.LogRemove(ctx, index, removed)
	return removed, nil
}

// Update runs fn with exclusive access to the grid. fn must not retain g.
func (s *Space[I, T]) Update(ctx context.Context, fn func(g *grid.GridMap[I, T]) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	return fn(s.grid)
}

// View runs fn with shared read access to the grid. fn must not mutate or
// retain g.
func (s *Space[I, T]) View(fn func(g *grid.GridMap[I, T])) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.grid)
}

// Neighbors returns the occupied cells around pos. See grid.GridMap.Neighbors.
func (s *Space[I, T]) Neighbors(ctx context.Context, pos geom.Vec3[T], diagonal bool) ([]grid.Index, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()

	s.mu.RLock()
	out := s.grid.Neighbors(pos, diagonal)
	s.mu.RUnlock()

	s.metrics.RecordNeighbors(diagonal, len(out), time.Since(start))
	s.logger.LogNeighbors(ctx, diagonal, len(out))
	return out, nil
}

// NeighborObjects is Neighbors resolved to the stored objects, read under
// the same lock so the result is consistent.
func (s *Space[I, T]) NeighborObjects(ctx context.Context, pos geom.Vec3[T], diagonal bool) ([]grid.Object[I, T], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()

	s.mu.RLock()
	indices := s.grid.Neighbors(pos, diagonal)
	out := make([]grid.Object[I, T], 0, len(indices))
	for _, i := range indices {
		if obj, ok := s.grid.Object(i); ok {
			out = append(out, obj)
		}
	}
	s.mu.RUnlock()

	s.metrics.RecordNeighbors(diagonal, len(out), time.Since(start))
	s.logger.LogNeighbors(ctx, diagonal, len(out))
	return out, nil
}

// Index returns the index of the occupied cell at pos.
func (s *Space[I, T]) Index(pos geom.Vec3[T]) (grid.Index, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.grid.Index(pos)
}

// Item returns the item stored at index.
func (s *Space[I, T]) Item(index grid.Index) (I, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.grid.Item(index)
}

// Object returns the item at index together with its position.
func (s *Space[I, T]) Object(index grid.Index) (grid.Object[I, T], bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.grid.Object(index)
}

// Objects returns a copy of all stored objects in ascending index order.
func (s *Space[I, T]) Objects() []grid.Object[I, T] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.grid.Objects()
}

// Len returns the number of stored items.
func (s *Space[I, T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.grid.Len()
}

// Bounds returns the box the space covers.
func (s *Space[I, T]) Bounds() geom.BoundingBox[T] {
	return s.grid.Bounds()
}

// Version returns the version of the last snapshot saved or loaded,
// 0 if there is none.
func (s *Space[I, T]) Version() uint64 {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	return s.version
}

// Close rejects further mutations and saves. Reads keep working.
// Closing twice is a no-op.
func (s *Space[I, T]) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
