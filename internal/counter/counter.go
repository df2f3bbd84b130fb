// Package counter provides a generic frequency tally over comparable items.
package counter

// Counter accumulates occurrence counts for items of type T. The zero
// value is not usable; create one with New.
type Counter[T comparable] struct {
	counts map[T]int
}

// New returns an empty Counter.
func New[T comparable]() *Counter[T] {
	return &Counter[T]{counts: make(map[T]int)}
}

// Increment adds 1 to the count for item, inserting it with count 1 if
// absent.
func (c *Counter[T]) Increment(item T) {
	c.counts[item]++
}

// Count returns the current count for item, 0 if it was never seen.
func (c *Counter[T]) Count(item T) int {
	return c.counts[item]
}

// Len returns the number of distinct items seen.
func (c *Counter[T]) Len() int {
	return len(c.counts)
}

// Counts returns the underlying map. The map is shared with the Counter;
// callers that keep incrementing must treat the returned view as read-only.
func (c *Counter[T]) Counts() map[T]int {
	return c.counts
}
