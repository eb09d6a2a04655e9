// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"testing"

	"github.com/AleutianAI/AlgoViz/pkg/ux"
	"github.com/AleutianAI/AlgoViz/services/visualizer/history"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeText(t *testing.T, m tea.Model, s string) tea.Model {
	t.Helper()
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func press(m tea.Model, key tea.KeyType) (tea.Model, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: key})
}

func TestEditorModel_TypingPushesHistory(t *testing.T) {
	buf := history.NewUndoBuffer()
	var m tea.Model = newEditorModel(buf, 0)

	m = typeText(t, m, "abc")

	assert.Equal(t, "abc", buf.Current())
	assert.Equal(t, []string{"ab", "a"}, buf.History(), "first keystroke starts from empty text")
}

func TestEditorModel_UndoRestoresInput(t *testing.T) {
	buf := history.NewUndoBuffer()
	var m tea.Model = newEditorModel(buf, 0)
	m = typeText(t, m, "ab")

	m, cmd := press(m, tea.KeyCtrlZ)
	assert.Nil(t, cmd)

	em := m.(editorModel)
	assert.Equal(t, "a", em.textInput.Value())
	assert.Equal(t, "a", buf.Current())
	assert.Equal(t, 0, buf.Depth())
	assert.Equal(t, "Undone", em.status)

	m, _ = press(m, tea.KeyCtrlZ)
	assert.Equal(t, "Nothing to undo", m.(editorModel).status)
	assert.Equal(t, "a", m.(editorModel).textInput.Value())
}

func TestEditorModel_BackspaceIsAnEdit(t *testing.T) {
	buf := history.NewUndoBuffer()
	var m tea.Model = newEditorModel(buf, 0)
	m = typeText(t, m, "ab")

	m, _ = press(m, tea.KeyBackspace)
	assert.Equal(t, "a", buf.Current())
	assert.Equal(t, []string{"ab", "a"}, buf.History())
}

func TestEditorModel_ClearKeepsText(t *testing.T) {
	buf := history.NewUndoBuffer()
	var m tea.Model = newEditorModel(buf, 0)
	m = typeText(t, m, "xyz")

	m, _ = press(m, tea.KeyCtrlL)
	assert.Equal(t, "xyz", m.(editorModel).textInput.Value())
	assert.False(t, buf.CanUndo())
	assert.Equal(t, "History cleared", m.(editorModel).status)
}

func TestEditorModel_EscQuits(t *testing.T) {
	var m tea.Model = newEditorModel(history.NewUndoBuffer(), 0)

	m, cmd := press(m, tea.KeyEsc)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}

func TestEditorModel_View(t *testing.T) {
	prev := ux.GetMode()
	ux.SetMode(ux.ModePlain)
	t.Cleanup(func() { ux.SetMode(prev) })

	buf := history.NewUndoBuffer()
	var m tea.Model = newEditorModel(buf, 0)
	assert.Contains(t, m.View(), ux.EmptyStackText)

	m = typeText(t, m, "hi")
	view := m.View()
	assert.Contains(t, view, "TOP")
	assert.Contains(t, view, "ctrl+z undo")
}

func TestEditorModel_EnforcesByteLimit(t *testing.T) {
	buf := history.NewUndoBuffer()
	var m tea.Model = newEditorModel(buf, 4)

	// Two runes, four bytes: at the limit.
	m = typeText(t, m, "éé")
	assert.Equal(t, "éé", buf.Current())

	m = typeText(t, m, "a")
	assert.Equal(t, "éé", buf.Current())
	em := m.(editorModel)
	assert.Equal(t, "éé", em.textInput.Value())
	assert.Equal(t, "Text exceeds 4 bytes", em.status)
}
