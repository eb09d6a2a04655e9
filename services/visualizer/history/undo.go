// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package history

// UndoBuffer tracks a text value and the prior versions it replaced.
//
// # Description
//
// Each distinct edit pushes the value it replaces onto a Stack[string],
// unless that value was empty or the edit left the text unchanged. Undo
// pops the most recent prior value and makes it current again.
//
// # Thread Safety
//
// NOT safe for concurrent use; caller must synchronize.
type UndoBuffer struct {
	current string
	stack   *Stack[string]
}

// NewUndoBuffer creates a buffer with empty text and no history.
func NewUndoBuffer() *UndoBuffer {
	return &UndoBuffer{stack: NewStack[string]()}
}

// Edit replaces the current text.
//
// # Description
//
// The previous text is pushed only when it is non-empty and differs from
// value. The new value always becomes current.
//
// # Inputs
//
//   - value: The text after the edit.
//
// # Outputs
//
//   - bool: True if a prior version was pushed.
func (b *UndoBuffer) Edit(value string) bool {
	prev := b.current
	b.current = value

	if prev == "" || prev == value {
		return false
	}
	b.stack.Push(prev)
	return true
}

// Undo restores the most recent prior version.
//
// # Outputs
//
//   - string: The restored text, or the unchanged current text.
//   - bool: False if there was nothing to undo.
func (b *UndoBuffer) Undo() (string, bool) {
	prev, ok := b.stack.Pop()
	if !ok {
		return b.current, false
	}
	b.current = prev
	return prev, true
}

// Clear drops all prior versions. The current text is kept.
func (b *UndoBuffer) Clear() {
	b.stack.Clear()
}

// Current returns the current text.
func (b *UndoBuffer) Current() string {
	return b.current
}

// CanUndo reports whether Undo would change anything.
func (b *UndoBuffer) CanUndo() bool {
	return !b.stack.IsEmpty()
}

// Depth returns the number of stored prior versions.
func (b *UndoBuffer) Depth() int {
	return b.stack.Len()
}

// History returns the stored prior versions, most recent first.
func (b *UndoBuffer) History() []string {
	return b.stack.TopDown()
}
