package alloc

import "github.com/pkg/errors"

func newRing[T any](capacity uint64) *ring[T] {
	if capacity == 0 {
		capacity = 1
	}
	return &ring[T]{
		items: make([]T, capacity),
	}
}

// ring is a FIFO queue of released items. It grows when full, so Put never fails.
type ring[T any] struct {
	items []T

	getPtr, count uint64
}

func (r *ring[T]) Get() (T, error) {
	var t T
	if r.count == 0 {
		return t, errors.New("no free item to get")
	}

	item := r.items[r.getPtr]
	r.items[r.getPtr] = t
	r.getPtr++
	if r.getPtr == uint64(len(r.items)) {
		r.getPtr = 0
	}
	r.count--

	return item, nil
}

func (r *ring[T]) Put(item T) {
	if r.count == uint64(len(r.items)) {
		r.grow()
	}

	putPtr := r.getPtr + r.count
	if putPtr >= uint64(len(r.items)) {
		putPtr -= uint64(len(r.items))
	}
	r.items[putPtr] = item
	r.count++
}

func (r *ring[T]) Len() uint64 {
	return r.count
}

func (r *ring[T]) grow() {
	items := make([]T, 2*len(r.items))
	n := copy(items, r.items[r.getPtr:])
	copy(items[n:], r.items[:r.getPtr])

	r.items = items
	r.getPtr = 0
}
