package grid

import (
	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/hupe1980/gridkit/num"
)

// store is the occupancy store of a grid: at most one object per index.
// Callers validate indices before reaching the store.
type store[I any, T num.Scalar] interface {
	get(i Index) (*Object[I, T], bool)
	put(i Index, obj *Object[I, T])
	delete(i Index) bool
	len() int
	// each visits occupied cells in ascending index order until fn returns false.
	each(fn func(Index, *Object[I, T]) bool)
	clear()
	// bitmap returns a copy of the occupied index set.
	bitmap() *roaring64.Bitmap
}

// sparseStore keeps objects in a map and mirrors the key set in a
// 64-bit roaring bitmap for ordered iteration and compact export.
type sparseStore[I any, T num.Scalar] struct {
	objects map[Index]*Object[I, T]
	used    *roaring64.Bitmap
}

func newSparseStore[I any, T num.Scalar]() *sparseStore[I, T] {
	return &sparseStore[I, T]{
		objects: make(map[Index]*Object[I, T]),
		used:    roaring64.New(),
	}
}

func (s *sparseStore[I, T]) get(i Index) (*Object[I, T], bool) {
	obj, ok := s.objects[i]
	return obj, ok
}

func (s *sparseStore[I, T]) put(i Index, obj *Object[I, T]) {
	s.objects[i] = obj
	s.used.Add(uint64(i))
}

func (s *sparseStore[I, T]) delete(i Index) bool {
	if _, ok := s.objects[i]; !ok {
		return false
	}
	delete(s.objects, i)
	s.used.Remove(uint64(i))
	return true
}

func (s *sparseStore[I, T]) len() int {
	return len(s.objects)
}

func (s *sparseStore[I, T]) each(fn func(Index, *Object[I, T]) bool) {
	it := s.used.Iterator()
	for it.HasNext() {
		i := Index(it.Next())
		if !fn(i, s.objects[i]) {
			return
		}
	}
}

func (s *sparseStore[I, T]) clear() {
	clear(s.objects)
	s.used.Clear()
}

func (s *sparseStore[I, T]) bitmap() *roaring64.Bitmap {
	return s.used.Clone()
}

// denseStore allocates one slot per addressable cell.
type denseStore[I any, T num.Scalar] struct {
	slots []*Object[I, T]
	count int
}

func newDenseStore[I any, T num.Scalar](capacity uint64) *denseStore[I, T] {
	return &denseStore[I, T]{slots: make([]*Object[I, T], capacity)}
}

func (s *denseStore[I, T]) get(i Index) (*Object[I, T], bool) {
	obj := s.slots[i]
	return obj, obj != nil
}

func (s *denseStore[I, T]) put(i Index, obj *Object[I, T]) {
	if s.slots[i] == nil {
		s.count++
	}
	s.slots[i] = obj
}

func (s *denseStore[I, T]) delete(i Index) bool {
	if s.slots[i] == nil {
		return false
	}
	s.slots[i] = nil
	s.count--
	return true
}

func (s *denseStore[I, T]) len() int {
	return s.count
}

func (s *denseStore[I, T]) each(fn func(Index, *Object[I, T]) bool) {
	if s.count == 0 {
		return
	}
	for i, obj := range s.slots {
		if obj != nil && !fn(Index(i), obj) {
			return
		}
	}
}

func (s *denseStore[I, T]) clear() {
	clear(s.slots)
	s.count = 0
}

func (s *denseStore[I, T]) bitmap() *roaring64.Bitmap {
	bm := roaring64.New()
	s.each(func(i Index, _ *Object[I, T]) bool {
		bm.Add(uint64(i))
		return true
	})
	return bm
}
