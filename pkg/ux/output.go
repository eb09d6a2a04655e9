// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package ux provides terminal output styling for the AlgoViz CLI.
package ux

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// AlgoViz color palette
var (
	ColorTealBright  = lipgloss.Color("#2CD7C7") // highlights, success
	ColorTealPrimary = lipgloss.Color("#20B9B4") // main brand color
	ColorTealDeep    = lipgloss.Color("#16858E") // borders, accents
	ColorSlate       = lipgloss.Color("#2C4A54") // muted text, borders

	ColorSuccess = lipgloss.Color("#2CD7C7")
	ColorWarning = lipgloss.Color("#F4D03F")
	ColorError   = lipgloss.Color("#E74C3C")
	ColorCompare = lipgloss.Color("#F4D03F") // values under comparison
	ColorSwap    = lipgloss.Color("#E67E22") // values just swapped
)

// Styles provides pre-configured lipgloss styles
var Styles = struct {
	Title     lipgloss.Style
	Muted     lipgloss.Style
	Bold      lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Highlight lipgloss.Style

	Box      lipgloss.Style
	StackTop lipgloss.Style
	StackRow lipgloss.Style
}{
	Title:     lipgloss.NewStyle().Bold(true).Foreground(ColorTealBright),
	Muted:     lipgloss.NewStyle().Foreground(ColorSlate),
	Bold:      lipgloss.NewStyle().Bold(true),
	Success:   lipgloss.NewStyle().Foreground(ColorSuccess),
	Warning:   lipgloss.NewStyle().Foreground(ColorWarning),
	Error:     lipgloss.NewStyle().Foreground(ColorError),
	Highlight: lipgloss.NewStyle().Foreground(ColorTealBright).Bold(true),

	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorTealDeep).
		Padding(0, 1),
	StackTop: lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(ColorTealBright).
		Padding(0, 1),
	StackRow: lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(ColorSlate).
		Padding(0, 1),
}

// Icon provides themed status icons
type Icon string

const (
	IconSuccess Icon = "✓"
	IconWarning Icon = "⚠"
	IconError   Icon = "✗"
	IconArrow   Icon = "→"
	IconBullet  Icon = "•"
)

// Render returns the icon with appropriate styling
func (i Icon) Render() string {
	switch i {
	case IconSuccess:
		return Styles.Success.Render(string(i))
	case IconWarning:
		return Styles.Warning.Render(string(i))
	case IconError:
		return Styles.Error.Render(string(i))
	default:
		return string(i)
	}
}

// Title prints a styled title. Suppressed in machine mode.
func Title(w io.Writer, text string) {
	if GetMode() == ModeMachine {
		return
	}
	fmt.Fprintln(w, Styles.Title.Render(text))
}

// Success prints a success message with checkmark
func Success(w io.Writer, text string) {
	switch GetMode() {
	case ModeMachine:
		fmt.Fprintf(w, "OK: %s\n", text)
	case ModePlain:
		fmt.Fprintf(w, "%s %s\n", IconSuccess.Render(), text)
	default:
		fmt.Fprintf(w, "%s %s\n", IconSuccess.Render(), Styles.Success.Render(text))
	}
}

// Warning prints a warning message
func Warning(w io.Writer, text string) {
	switch GetMode() {
	case ModeMachine:
		fmt.Fprintf(w, "WARN: %s\n", text)
	case ModePlain:
		fmt.Fprintf(w, "%s %s\n", IconWarning.Render(), text)
	default:
		fmt.Fprintf(w, "%s %s\n", IconWarning.Render(), Styles.Warning.Render(text))
	}
}

// Error prints an error message
func Error(w io.Writer, text string) {
	switch GetMode() {
	case ModeMachine:
		fmt.Fprintf(w, "ERROR: %s\n", text)
	case ModePlain:
		fmt.Fprintf(w, "%s %s\n", IconError.Render(), text)
	default:
		fmt.Fprintf(w, "%s %s\n", IconError.Render(), Styles.Error.Render(text))
	}
}

// Field is one labeled value of a Summary line.
type Field struct {
	Label string
	Value int
}

// Summary prints labeled counts on one line.
//
//	rich:    10 comparisons  7 swaps  4 passes
//	machine: SUMMARY: comparisons=10 swaps=7 passes=4
func Summary(w io.Writer, fields ...Field) {
	if GetMode() == ModeMachine {
		fmt.Fprint(w, "SUMMARY:")
		for _, f := range fields {
			fmt.Fprintf(w, " %s=%d", f.Label, f.Value)
		}
		fmt.Fprintln(w)
		return
	}
	for i, f := range fields {
		if i > 0 {
			fmt.Fprint(w, "  ")
		}
		fmt.Fprintf(w, "%s %s", Styles.Bold.Render(fmt.Sprint(f.Value)), Styles.Muted.Render(f.Label))
	}
	fmt.Fprintln(w)
}
