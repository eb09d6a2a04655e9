// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package history provides the LIFO container behind the undo editor.
//
// # Description
//
// Stack is a generic last-in-first-out container. UndoBuffer layers the
// undo-on-edit policy on top of a Stack[string]: every distinct edit pushes
// the value it replaces, and Undo pops the most recent prior value back.
//
// # Thread Safety
//
// Neither type is safe for concurrent use; callers must synchronize.
package history

// Stack is a slice-backed LIFO container.
//
// # Description
//
// Push and Pop are amortized O(1). Operations on an empty stack never
// panic: Pop and Peek report absence through their boolean result.
//
// # Thread Safety
//
// NOT safe for concurrent use; caller must synchronize.
type Stack[T any] struct {
	items []T
}

// NewStack creates an empty stack.
func NewStack[T any]() *Stack[T] {
	return &Stack[T]{}
}

// Push places value on top of the stack.
//
// # Inputs
//
//   - value: The element to add. Elements below it are not touched.
func (s *Stack[T]) Push(value T) {
	s.items = append(s.items, value)
}

// Pop removes and returns the top element.
//
// # Outputs
//
//   - T: The former top element, or the zero value.
//   - bool: False if the stack is empty.
func (s *Stack[T]) Pop() (T, bool) {
	var zero T
	if len(s.items) == 0 {
		return zero, false
	}

	last := len(s.items) - 1
	value := s.items[last]
	s.items[last] = zero // Clear reference
	s.items = s.items[:last]

	return value, true
}

// Peek returns the top element without removing it.
//
// # Outputs
//
//   - T: The top element, or the zero value.
//   - bool: False if the stack is empty.
func (s *Stack[T]) Peek() (T, bool) {
	var zero T
	if len(s.items) == 0 {
		return zero, false
	}
	return s.items[len(s.items)-1], true
}

// Clear removes all elements.
func (s *Stack[T]) Clear() {
	var zero T
	for i := range s.items {
		s.items[i] = zero
	}
	s.items = s.items[:0]
}

// Len returns the current number of elements.
func (s *Stack[T]) Len() int {
	return len(s.items)
}

// IsEmpty returns true if the stack has no elements.
func (s *Stack[T]) IsEmpty() bool {
	return len(s.items) == 0
}

// Items returns all elements from bottom (oldest) to top (newest).
//
// The returned slice is a copy; modifications don't affect the stack.
func (s *Stack[T]) Items() []T {
	result := make([]T, len(s.items))
	copy(result, s.items)
	return result
}

// TopDown returns all elements from top (newest) to bottom (oldest).
//
// # Description
//
// This is the display order for history views. The returned slice is a
// copy.
func (s *Stack[T]) TopDown() []T {
	n := len(s.items)
	result := make([]T, n)
	for i := 0; i < n; i++ {
		result[i] = s.items[n-1-i]
	}
	return result
}
