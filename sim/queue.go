package sim

import (
	"cmp"
	"fmt"
	"iter"
	"reflect"
)

// DefaultQueueCapacity is the initial backing capacity of a MinQueue.
const DefaultQueueCapacity = 16

// MinQueue is an array-backed binary min-heap.
//
// Capacity is tracked separately from occupancy: the backing array doubles
// when an insert finds it full and halves when a removal leaves it exactly
// one quarter occupied. The asymmetric thresholds keep alternating
// insert/remove at a boundary from resizing on every call.
//
// Thread-safety: NOT thread-safe. Must be called from a single goroutine.
type MinQueue[T any] struct {
	items []T // len(items) is the capacity
	size  int
	less  func(a, b T) bool
	isNil func(T) bool
}

// NewMinQueue creates an empty queue ordered by less with DefaultQueueCapacity.
func NewMinQueue[T any](less func(a, b T) bool) *MinQueue[T] {
	return NewMinQueueWithCapacity(less, DefaultQueueCapacity)
}

// NewMinQueueWithCapacity creates an empty queue with the given initial capacity.
// A non-positive capacity starts at 1.
func NewMinQueueWithCapacity[T any](less func(a, b T) bool, capacity int) *MinQueue[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &MinQueue[T]{
		items: make([]T, capacity),
		less:  less,
		isNil: nilCheckFor[T](),
	}
}

// NewOrderedMinQueue creates a queue over naturally ordered values.
func NewOrderedMinQueue[T cmp.Ordered]() *MinQueue[T] {
	return NewMinQueue(func(a, b T) bool { return cmp.Less(a, b) })
}

// Len returns the number of queued items.
func (q *MinQueue[T]) Len() int { return q.size }

// Cap returns the capacity of the backing array.
func (q *MinQueue[T]) Cap() int { return len(q.items) }

// IsEmpty reports whether the queue holds no items.
func (q *MinQueue[T]) IsEmpty() bool { return q.size == 0 }

// Insert adds item to the queue. A nil pointer, interface, map, slice,
// channel or func item is rejected with ErrInvalidArgument.
func (q *MinQueue[T]) Insert(item T) error {
	if q.isNil(item) {
		return fmt.Errorf("queue insert: nil item: %w", ErrInvalidArgument)
	}
	if q.size == len(q.items) {
		q.resize(2 * len(q.items))
	}
	q.items[q.size] = item
	q.siftUp(q.size)
	q.size++
	return nil
}

// RemoveMin removes and returns the smallest item.
func (q *MinQueue[T]) RemoveMin() (T, error) {
	var zero T
	if q.size == 0 {
		return zero, fmt.Errorf("queue remove: %w", ErrEmptyQueue)
	}
	q.size--
	q.swap(0, q.size)
	top := q.items[q.size]
	q.items[q.size] = zero
	q.siftDown(0)
	if q.size > 0 && q.size == len(q.items)/4 {
		q.resize(len(q.items) / 2)
	}
	return top, nil
}

// Peek returns the smallest item without removing it.
func (q *MinQueue[T]) Peek() (T, bool) {
	if q.size == 0 {
		var zero T
		return zero, false
	}
	return q.items[0], true
}

// All yields every queued item in ascending order without mutating q.
// It drains a private copy, so each traversal costs O(n log n) time and
// O(n) memory. Intended for tests and debugging, not for the event loop.
func (q *MinQueue[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		cp := NewMinQueueWithCapacity(q.less, q.size)
		for i := 0; i < q.size; i++ {
			_ = cp.Insert(q.items[i])
		}
		for !cp.IsEmpty() {
			item, _ := cp.RemoveMin()
			if !yield(item) {
				return
			}
		}
	}
}

// IsMinHeap reports whether every node is no greater than its children.
func (q *MinQueue[T]) IsMinHeap() bool {
	return q.isMinHeap(0)
}

func (q *MinQueue[T]) isMinHeap(parent int) bool {
	if parent >= q.size {
		return true
	}
	left, right := 2*parent+1, 2*parent+2
	if left < q.size && q.greater(parent, left) {
		return false
	}
	if right < q.size && q.greater(parent, right) {
		return false
	}
	return q.isMinHeap(left) && q.isMinHeap(right)
}

func (q *MinQueue[T]) siftUp(pos int) {
	for pos > 0 {
		parent := (pos - 1) / 2
		if !q.greater(parent, pos) {
			return
		}
		q.swap(pos, parent)
		pos = parent
	}
}

func (q *MinQueue[T]) siftDown(pos int) {
	for 2*pos+1 < q.size {
		child := 2*pos + 1
		if child+1 < q.size && q.greater(child, child+1) {
			child++
		}
		if !q.greater(pos, child) {
			return
		}
		q.swap(pos, child)
		pos = child
	}
}

func (q *MinQueue[T]) resize(capacity int) {
	if capacity < 1 {
		capacity = 1
	}
	items := make([]T, capacity)
	copy(items, q.items[:q.size])
	q.items = items
}

func (q *MinQueue[T]) swap(i, j int) { q.items[i], q.items[j] = q.items[j], q.items[i] }

func (q *MinQueue[T]) greater(i, j int) bool { return q.less(q.items[j], q.items[i]) }

// nilCheckFor picks the nil test for T once per queue. Pointers and channels
// compare against their zero value; only maps, slices and funcs, which are
// not comparable, go through reflection on every insert.
func nilCheckFor[T any]() func(T) bool {
	switch reflect.TypeFor[T]().Kind() {
	case reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
		var zero T
		return func(v T) bool { return any(v) == any(zero) }
	case reflect.Interface:
		return func(v T) bool { return any(v) == nil }
	case reflect.Map, reflect.Slice, reflect.Func:
		return func(v T) bool { return reflect.ValueOf(&v).Elem().IsNil() }
	default:
		return func(T) bool { return false }
	}
}
