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
	"errors"
	"fmt"
	"io"

	"github.com/AleutianAI/AlgoViz/pkg/ux"
	"github.com/AleutianAI/AlgoViz/services/visualizer"
	"github.com/AleutianAI/AlgoViz/services/visualizer/input"
	"github.com/AleutianAI/AlgoViz/services/visualizer/searcher"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func runSearch(cmd *cobra.Command, args []string) error {
	raw, target := defaultSearchInput, defaultSearchTarget
	if len(args) > 0 {
		raw = args[0]
	}
	if len(args) > 1 {
		target = args[1]
	}

	if len(args) < 2 && ux.IsInteractive() {
		if err := promptSearch(&raw, &target); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("prompt: %w", err)
		}
	} else if len(args) < 2 {
		appLogger.Debug("Missing arguments, using the example", "input", raw, "target", target)
	}

	resp, err := newService().Search(cmd.Context(), raw, target)
	if err != nil {
		return err
	}
	return printSearch(cmd.OutOrStdout(), resp, jsonOutput)
}

func promptSearch(raw, target *string) error {
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Sorted numbers").
			Description("Comma-separated integers in ascending order.").
			Value(raw).
			Validate(validateList),
		huh.NewInput().
			Title("Target").
			Value(target).
			Validate(func(s string) error {
				_, err := input.ParseInteger(s)
				return err
			}),
	)).Run()
}

func printSearch(w io.Writer, resp *visualizer.SearchResponse, asJSON bool) error {
	if asJSON {
		return printJSON(w, resp)
	}
	ux.Trace(w, "Binary Search", searchTraceLines(resp.Steps))
	ux.Summary(w, ux.Field{Label: "iterations", Value: resp.Iterations})
	if resp.Found {
		ux.Success(w, resp.Summary)
	} else {
		ux.Warning(w, resp.Summary)
	}
	return nil
}

func searchTraceLines(steps []searcher.Step) []ux.TraceLine {
	lines := make([]ux.TraceLine, len(steps))
	for i, s := range steps {
		e := ux.EmphasisSwap
		if s.Kind == searcher.StepProbe {
			e = ux.EmphasisCompare
		}
		lines[i] = ux.TraceLine{Emphasis: e, Text: s.String()}
	}
	return lines
}
