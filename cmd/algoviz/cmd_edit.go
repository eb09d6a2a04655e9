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
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AleutianAI/AlgoViz/pkg/ux"
	"github.com/AleutianAI/AlgoViz/services/visualizer/history"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// Line commands understood by the non-interactive editor.
const (
	lineCmdUndo  = ":undo"
	lineCmdClear = ":clear"
)

func runEdit(cmd *cobra.Command, args []string) error {
	buf := history.NewUndoBuffer()

	// Fall back to a line reader for non-TTY (piped input, CI/CD)
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return runEditLines(cmd.InOrStdin(), cmd.OutOrStdout(), buf, appConfig.Limits.MaxTextBytes)
	}

	m := newEditorModel(buf, appConfig.Limits.MaxTextBytes)
	if _, err := tea.NewProgram(m, tea.WithOutput(os.Stderr)).Run(); err != nil {
		return fmt.Errorf("editor: %w", err)
	}

	appLogger.Debug("Editor closed", "final_text", buf.Current(), "depth", buf.Depth())
	fmt.Fprintln(cmd.OutOrStdout(), buf.Current())
	return nil
}

// runEditLines applies one edit per input line and prints the stack after
// each operation.
//
// # Inputs
//
//   - r: Source of lines. Lines equal to ":undo" or ":clear" run the
//     matching operation; any other line replaces the text.
//   - w: Destination for state output.
//   - buf: Buffer to operate on.
//   - maxBytes: Lines longer than this are rejected. Zero means no limit.
func runEditLines(r io.Reader, w io.Writer, buf *history.UndoBuffer, maxBytes int) error {
	reader := bufio.NewReader(r)
	for {
		line, tooLong, err := readLine(reader, maxBytes)
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		eof := err != nil
		if eof && line == "" && !tooLong {
			return nil
		}

		if tooLong {
			ux.Error(w, fmt.Sprintf("Line exceeds %d bytes, ignored", maxBytes))
		} else {
			applyEditLine(w, buf, line)
		}
		if eof {
			return nil
		}
	}
}

func applyEditLine(w io.Writer, buf *history.UndoBuffer, line string) {
	switch strings.TrimSpace(line) {
	case lineCmdUndo:
		if _, ok := buf.Undo(); !ok {
			ux.Warning(w, "Nothing to undo")
		}
	case lineCmdClear:
		buf.Clear()
	default:
		buf.Edit(line)
	}
	printEditorState(w, buf)
}

// readLine reads one line without its "\n" or "\r\n" terminator. A line
// longer than maxBytes is consumed but not kept, and tooLong is set, so
// memory stays bounded by maxBytes. At end of input err is io.EOF.
func readLine(r *bufio.Reader, maxBytes int) (line string, tooLong bool, err error) {
	var sb strings.Builder
	for {
		chunk, rerr := r.ReadSlice('\n')
		if !tooLong {
			sb.Write(chunk)
			// +2 leaves room for the terminator.
			if maxBytes > 0 && sb.Len() > maxBytes+2 {
				tooLong = true
				sb.Reset()
			}
		}
		if errors.Is(rerr, bufio.ErrBufferFull) {
			continue
		}

		if tooLong {
			return "", true, rerr
		}
		line = strings.TrimSuffix(sb.String(), "\n")
		line = strings.TrimSuffix(line, "\r")
		if maxBytes > 0 && len(line) > maxBytes {
			return "", true, rerr
		}
		return line, false, rerr
	}
}

func printEditorState(w io.Writer, buf *history.UndoBuffer) {
	if ux.GetMode() == ux.ModeMachine {
		fmt.Fprintf(w, "CURRENT %s\n", buf.Current())
	} else {
		fmt.Fprintf(w, "%s %s\n", ux.Styles.Bold.Render("Current:"), buf.Current())
	}
	ux.Stack(w, buf.History())
}
