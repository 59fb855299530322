package pool

// Resettable is a constraint for types that have a Reset() method.
type Resettable interface {
	Reset()
}

// Poolable is a constraint for types that can be pooled (must be resettable and comparable).
type Poolable interface {
	Resettable
	comparable
}

// Pool is a bounded free list of reusable objects, used for render buffers.
type Pool[T Poolable] struct {
	items chan T
	newFn func() T
}

// New creates a pool holding at most capacity idle objects.
// newFn builds a fresh object when the pool is empty; it may be nil.
func New[T Poolable](capacity int, newFn func() T) *Pool[T] {
	return &Pool[T]{
		items: make(chan T, capacity),
		newFn: newFn,
	}
}

// Get returns an idle object, or a new one from newFn when none is idle.
// Without newFn an empty pool yields the zero value.
func (p *Pool[T]) Get() T {
	select {
	case item := <-p.items:
		return item
	default:
	}

	if p.newFn != nil {
		return p.newFn()
	}
	var zero T
	return zero
}

// Put resets item and keeps it for reuse. Zero values are ignored and the
// object is dropped when the pool is full.
func (p *Pool[T]) Put(item T) {
	var zero T
	if item == zero {
		return
	}
	item.Reset()

	select {
	case p.items <- item:
	default:
	}
}

// Len reports the number of idle objects.
func (p *Pool[T]) Len() int {
	return len(p.items)
}
