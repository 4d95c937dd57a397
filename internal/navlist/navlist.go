// Package navlist provides an ordered list paired with an optional cursor.
// The cursor is present exactly when the list is non-empty and always points
// at a valid index; every operation clamps instead of failing.
package navlist

import "fmt"

// List is a cursor-addressed sequence of items.
type List[T any] struct {
	items  []T
	cursor int // -1 when empty
}

// New creates a list over items with the cursor on the first one.
func New[T any](items []T) *List[T] {
	l := &List[T]{}
	l.Replace(items)
	return l
}

// Replace swaps the contents and resets the cursor to the top.
func (l *List[T]) Replace(items []T) {
	l.items = append([]T(nil), items...)
	if len(l.items) == 0 {
		l.cursor = -1
	} else {
		l.cursor = 0
	}
}

// Len returns the number of items.
func (l *List[T]) Len() int {
	return len(l.items)
}

// IsEmpty reports whether the list has no items.
func (l *List[T]) IsEmpty() bool {
	return len(l.items) == 0
}

// Items returns a copy of the items.
func (l *List[T]) Items() []T {
	return append([]T(nil), l.items...)
}

// Cursor returns the cursor index, or false when the list is empty.
func (l *List[T]) Cursor() (int, bool) {
	if l.cursor < 0 {
		return 0, false
	}
	return l.cursor, true
}

// Current returns the item under the cursor.
func (l *List[T]) Current() (T, bool) {
	var zero T
	i, ok := l.Cursor()
	if !ok {
		return zero, false
	}
	l.check()
	return l.items[i], true
}

// Select moves the cursor to i if it is in range.
func (l *List[T]) Select(i int) bool {
	if i < 0 || i >= len(l.items) {
		return false
	}
	l.cursor = i
	return true
}

// MoveDown advances the cursor, stopping at the last item.
func (l *List[T]) MoveDown() {
	if l.cursor >= 0 && l.cursor < len(l.items)-1 {
		l.cursor++
	}
}

// MoveUp moves the cursor back, stopping at the first item.
func (l *List[T]) MoveUp() {
	if l.cursor > 0 {
		l.cursor--
	}
}

// JumpTop moves the cursor to the first item.
func (l *List[T]) JumpTop() {
	if len(l.items) > 0 {
		l.cursor = 0
	}
}

// JumpBottom moves the cursor to the last item.
func (l *List[T]) JumpBottom() {
	if len(l.items) > 0 {
		l.cursor = len(l.items) - 1
	}
}

func (l *List[T]) check() {
	if (len(l.items) == 0) != (l.cursor < 0) || l.cursor >= len(l.items) {
		panic(fmt.Sprintf("navlist: cursor %d out of range for %d items", l.cursor, len(l.items)))
	}
}
