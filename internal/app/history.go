package app

// Ring is a fixed-capacity circular buffer that keeps the newest values.
type Ring[T any] struct {
	buf   []T
	pos   int
	count int
}

// NewRing creates a ring holding at most capacity values.
func NewRing[T any](capacity int) *Ring[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring[T]{buf: make([]T, capacity)}
}

// Push adds a value, overwriting the oldest once full.
func (r *Ring[T]) Push(val T) {
	r.buf[r.pos] = val
	r.pos = (r.pos + 1) % len(r.buf)
	if r.count < len(r.buf) {
		r.count++
	}
}

// Values returns the stored values oldest first.
func (r *Ring[T]) Values() []T {
	if r.count == 0 {
		return nil
	}
	result := make([]T, r.count)
	if r.count < len(r.buf) {
		copy(result, r.buf[:r.count])
	} else {
		n := copy(result, r.buf[r.pos:])
		copy(result[n:], r.buf[:r.pos])
	}
	return result
}

// Last returns the newest value, or the zero value if empty.
func (r *Ring[T]) Last() T {
	var zero T
	if r.count == 0 {
		return zero
	}
	return r.buf[(r.pos-1+len(r.buf))%len(r.buf)]
}

// Len returns the number of stored values.
func (r *Ring[T]) Len() int {
	return r.count
}
