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
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
)

// Mode defines how rich the CLI output is.
type Mode string

const (
	// ModeRich enables colors, boxes, and icons.
	ModeRich Mode = "rich"

	// ModePlain keeps icons and layout but avoids boxes.
	ModePlain Mode = "plain"

	// ModeMachine outputs plain text suitable for scripting and parsing.
	ModeMachine Mode = "machine"
)

var (
	currentMode = ModeRich
	modeMu      sync.RWMutex
)

// GetMode returns the current output mode.
func GetMode() Mode {
	modeMu.RLock()
	defer modeMu.RUnlock()
	return currentMode
}

// SetMode updates the output mode.
func SetMode(m Mode) {
	modeMu.Lock()
	defer modeMu.Unlock()
	currentMode = m
}

// ParseMode converts a string to a Mode. Unknown values map to ModeRich.
func ParseMode(s string) Mode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "plain", "p", "minimal":
		return ModePlain
	case "machine", "quiet", "q":
		return ModeMachine
	default:
		return ModeRich
	}
}

// InitMode selects the mode from ALGOVIZ_OUTPUT, falling back to
// ModeMachine when stdout is not a terminal.
func InitMode() {
	if env := os.Getenv("ALGOVIZ_OUTPUT"); env != "" {
		SetMode(ParseMode(env))
		return
	}
	if !IsTerminal(os.Stdout) {
		SetMode(ModeMachine)
		return
	}
	SetMode(ModeRich)
}

// IsTerminal reports whether f is an interactive terminal.
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// IsInteractive returns true if we should show interactive prompts.
func IsInteractive() bool {
	return GetMode() != ModeMachine && IsTerminal(os.Stdin) && IsTerminal(os.Stdout)
}
