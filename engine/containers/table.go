package containers

import (
	"fmt"

	"github.com/spaghettifunk/arkanoop/engine/core"
)

// Handle is a small integer index into a Table.
type Handle int

const InvalidHandle Handle = -1

// Table is a fixed-capacity, densely packed resource table. Entries are
// appended from index 0 upward and never leave holes; the only way to remove
// entries is Reset.
type Table[T any] struct {
	data []T
	cap  int
}

func NewTable[T any](capacity int) *Table[T] {
	return &Table[T]{
		data: make([]T, 0, capacity),
		cap:  capacity,
	}
}

// Insert appends value and returns its handle.
func (t *Table[T]) Insert(value T) (Handle, error) {
	if len(t.data) >= t.cap {
		return InvalidHandle, fmt.Errorf("table holds at most %d entries: %w", t.cap, core.ErrCapacityExceeded)
	}
	t.data = append(t.data, value)
	return Handle(len(t.data) - 1), nil
}

// Reserve fails when n more entries would not fit.
func (t *Table[T]) Reserve(n int) error {
	if len(t.data)+n > t.cap {
		return fmt.Errorf("requested %d entries, table holds at most %d: %w", len(t.data)+n, t.cap, core.ErrCapacityExceeded)
	}
	return nil
}

func (t *Table[T]) Get(h Handle) (T, error) {
	var zero T
	if !t.Valid(h) {
		return zero, fmt.Errorf("handle %d (len %d): %w", h, len(t.data), core.ErrInvalidHandle)
	}
	return t.data[h], nil
}

// Set replaces the value behind an existing handle.
func (t *Table[T]) Set(h Handle, value T) error {
	if !t.Valid(h) {
		return fmt.Errorf("handle %d (len %d): %w", h, len(t.data), core.ErrInvalidHandle)
	}
	t.data[h] = value
	return nil
}

func (t *Table[T]) Valid(h Handle) bool {
	return h >= 0 && int(h) < len(t.data)
}

func (t *Table[T]) Len() int { return len(t.data) }

func (t *Table[T]) Cap() int { return t.cap }

// Each visits the entries in handle order until fn returns false.
func (t *Table[T]) Each(fn func(h Handle, value T) bool) {
	for i, v := range t.data {
		if !fn(Handle(i), v) {
			return
		}
	}
}

// Truncate drops every entry from handle n on. Out of range values are clamped.
func (t *Table[T]) Truncate(n int) {
	if n < 0 {
		n = 0
	}
	if n >= len(t.data) {
		return
	}
	clear(t.data[n:])
	t.data = t.data[:n]
}

// Reset empties the table, keeping its capacity.
func (t *Table[T]) Reset() {
	clear(t.data)
	t.data = t.data[:0]
}
