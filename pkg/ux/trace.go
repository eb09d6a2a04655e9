// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package ux

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Emphasis selects how a trace line is highlighted.
type Emphasis int

const (
	EmphasisNone Emphasis = iota
	// EmphasisCompare marks a comparison or probe.
	EmphasisCompare
	// EmphasisSwap marks a state change such as a swap or a halving.
	EmphasisSwap
	// EmphasisMilestone marks initial state and pass boundaries.
	EmphasisMilestone
)

// TraceLine is one rendered step of an algorithm trace.
type TraceLine struct {
	Emphasis Emphasis
	Text     string
}

func (e Emphasis) style() lipgloss.Style {
	switch e {
	case EmphasisCompare:
		return lipgloss.NewStyle().Foreground(ColorCompare)
	case EmphasisSwap:
		return lipgloss.NewStyle().Foreground(ColorSwap)
	case EmphasisMilestone:
		return Styles.Highlight
	default:
		return lipgloss.NewStyle()
	}
}

// Trace prints an algorithm trace, one numbered line per step.
//
// Machine mode prints the bare text of every line, nothing else.
func Trace(w io.Writer, title string, lines []TraceLine) {
	if GetMode() == ModeMachine {
		for _, l := range lines {
			fmt.Fprintln(w, l.Text)
		}
		return
	}

	Title(w, title)
	width := len(fmt.Sprint(len(lines)))
	for i, l := range lines {
		num := Styles.Muted.Render(fmt.Sprintf("%*d.", width, i+1))
		text := l.Text
		if GetMode() == ModeRich {
			text = l.Emphasis.style().Render(text)
		}
		fmt.Fprintf(w, "%s %s\n", num, text)
	}
}

// EmptyStackText is shown when a stack has no items.
const EmptyStackText = "Stack is empty"

// topMarker labels the most recent entry of a stack view.
const topMarker = "TOP"

// StackView renders stack items, most recent first, marking the top.
//
// # Inputs
//
//   - items: Stack contents, most recent first.
//
// # Outputs
//
//   - string: Multi-line view without a trailing newline.
//
// # Examples
//
//	machine mode:
//	TOP ab
//	a
func StackView(items []string) string {
	mode := GetMode()
	if len(items) == 0 {
		if mode == ModeMachine {
			return EmptyStackText
		}
		return Styles.Muted.Render(EmptyStackText)
	}

	switch mode {
	case ModeMachine:
		var sb strings.Builder
		for i, item := range items {
			if i > 0 {
				sb.WriteByte('\n')
			}
			if i == 0 {
				sb.WriteString(topMarker + " ")
			}
			sb.WriteString(item)
		}
		return sb.String()

	case ModePlain:
		var sb strings.Builder
		for i, item := range items {
			if i > 0 {
				sb.WriteByte('\n')
			}
			fmt.Fprintf(&sb, "%s %s", IconBullet, item)
			if i == 0 {
				fmt.Fprintf(&sb, "  %s %s", "←", topMarker)
			}
		}
		return sb.String()

	default:
		rows := make([]string, len(items))
		for i, item := range items {
			if i == 0 {
				rows[i] = lipgloss.JoinHorizontal(lipgloss.Center,
					Styles.StackTop.Render(item),
					Styles.Highlight.Render(" ← "+topMarker))
				continue
			}
			rows[i] = Styles.StackRow.Render(item)
		}
		return lipgloss.JoinVertical(lipgloss.Left, rows...)
	}
}

// Stack prints StackView followed by a newline.
func Stack(w io.Writer, items []string) {
	fmt.Fprintln(w, StackView(items))
}
