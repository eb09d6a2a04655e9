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
	"fmt"
	"strings"

	"github.com/AleutianAI/AlgoViz/pkg/ux"
	"github.com/AleutianAI/AlgoViz/services/visualizer/history"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// editorModel is the bubbletea model behind `algoviz edit`.
//
// Every change to the input is applied to buf with Edit, so buf decides
// whether the previous text is pushed. buf is shared, the model is copied.
type editorModel struct {
	buf       *history.UndoBuffer
	textInput textinput.Model
	maxBytes  int
	status    string
	done      bool
}

// newEditorModel creates the editor. maxBytes bounds the UTF-8 length of
// the text; zero means no limit.
func newEditorModel(buf *history.UndoBuffer, maxBytes int) editorModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type here..."
	// CharLimit counts runes, so it only bounds the input loosely; Update
	// enforces the byte limit.
	ti.CharLimit = maxBytes
	ti.Width = 60
	ti.SetValue(buf.Current())
	ti.Focus()

	return editorModel{buf: buf, textInput: ti, maxBytes: maxBytes}
}

// Init initializes the bubbletea model.
func (m editorModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key events.
func (m editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			m.done = true
			return m, tea.Quit

		case tea.KeyCtrlZ:
			if v, ok := m.buf.Undo(); ok {
				m.textInput.SetValue(v)
				m.textInput.CursorEnd()
				m.status = "Undone"
			} else {
				m.status = "Nothing to undo"
			}
			return m, nil

		case tea.KeyCtrlL:
			m.buf.Clear()
			m.status = "History cleared"
			return m, nil
		}
	}

	m.textInput, cmd = m.textInput.Update(msg)
	v := m.textInput.Value()
	if m.maxBytes > 0 && len(v) > m.maxBytes {
		m.textInput.SetValue(m.buf.Current())
		m.textInput.CursorEnd()
		m.status = fmt.Sprintf("Text exceeds %d bytes", m.maxBytes)
		return m, cmd
	}
	if v != m.buf.Current() {
		m.buf.Edit(v)
		m.status = ""
	}
	return m, cmd
}

// View renders the input, the undo stack and key help.
func (m editorModel) View() string {
	if m.done {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(ux.Styles.Title.Render("Stack (Undo)"))
	sb.WriteString("\n\n")
	sb.WriteString(m.textInput.View())
	sb.WriteString("\n\n")
	sb.WriteString(ux.Styles.Bold.Render("History"))
	sb.WriteString("\n")
	sb.WriteString(ux.StackView(m.buf.History()))
	sb.WriteString("\n\n")
	if m.status != "" {
		sb.WriteString(ux.Styles.Warning.Render(m.status))
		sb.WriteString("\n")
	}
	sb.WriteString(ux.Styles.Muted.Render("ctrl+z undo • ctrl+l clear history • esc quit"))
	sb.WriteString("\n")
	return sb.String()
}
