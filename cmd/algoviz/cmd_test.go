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
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AleutianAI/AlgoViz/cmd/algoviz/config"
	"github.com/AleutianAI/AlgoViz/pkg/ux"
	"github.com/AleutianAI/AlgoViz/services/visualizer"
	"github.com/AleutianAI/AlgoViz/services/visualizer/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func machineMode(t *testing.T) {
	t.Helper()
	prev := ux.GetMode()
	ux.SetMode(ux.ModeMachine)
	t.Cleanup(func() { ux.SetMode(prev) })
}

// execute runs the root command with a temporary config file.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cfgFile := filepath.Join(t.TempDir(), "algoviz.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("logging:\n  level: error\n"), 0600))

	jsonOutput = false
	logLevel = ""
	outputMode = ""
	t.Cleanup(func() {
		jsonOutput = false
		outputMode = ""
		configPath = ""
		ux.SetMode(ux.ModeRich)
	})

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append([]string{"--config", cfgFile, "--output", "machine"}, args...))

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSortCommand_Machine(t *testing.T) {
	out, err := execute(t, "sort", "2,1")
	require.NoError(t, err)

	assert.Equal(t, strings.Join([]string{
		"Initial array: 2 1",
		"Comparing 2 and 1: [2 1]",
		"Swapped 2 and 1: [1 2]",
		"After pass 1: 1 2",
		"SUMMARY: comparisons=1 swaps=1 passes=1",
		"OK: Sorted: 1, 2",
	}, "\n")+"\n", out)
}

func TestSortCommand_JSON(t *testing.T) {
	out, err := execute(t, "sort", "5,3,8,4,2", "--json")
	require.NoError(t, err)

	var resp visualizer.SortResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, []int{2, 3, 4, 5, 8}, resp.Sorted)
	assert.Equal(t, 7, resp.Swaps)
}

func TestSortCommand_InvalidInput(t *testing.T) {
	_, err := execute(t, "sort", "a,b")
	assert.ErrorIs(t, err, visualizer.ErrInvalidInput)
}

func TestSearchCommand_Machine(t *testing.T) {
	out, err := execute(t, "search", "2,3,4,5,8", "5")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Step 1: searching in [2 3 (4) 5 8], middle element 4, comparing 4 with target 5", lines[0])
	assert.Equal(t, "Target 5 is greater than middle element 4, searching right half", lines[1])
	assert.Equal(t, "SUMMARY: iterations=2", lines[3])
	assert.Equal(t, "OK: 5 found at index 3", lines[4])
}

func TestSearchCommand_NotFoundIsWarning(t *testing.T) {
	out, err := execute(t, "search", "2,3,4,5,8", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "WARN: 7 not found in the array")
}

func TestSearchCommand_JSON(t *testing.T) {
	out, err := execute(t, "search", "1,3,5", "3", "--json")
	require.NoError(t, err)

	var resp visualizer.SearchResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.True(t, resp.Found)
	assert.Equal(t, 1, resp.Index)
}

func TestSearchCommand_InvalidTarget(t *testing.T) {
	_, err := execute(t, "search", "1,2,3", "abc")
	assert.ErrorIs(t, err, visualizer.ErrInvalidTarget)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "algoviz "+visualizer.ServiceVersion+"\n", out)
}

func TestRunEditLines(t *testing.T) {
	machineMode(t)

	in := strings.NewReader("a\nab\nabc\n:undo\n:clear\n:undo\n")
	var out bytes.Buffer
	buf := history.NewUndoBuffer()

	require.NoError(t, runEditLines(in, &out, buf, 0))

	assert.Equal(t, "ab", buf.Current())
	assert.Equal(t, 0, buf.Depth())

	assert.Equal(t, strings.Join([]string{
		"CURRENT a", ux.EmptyStackText,
		"CURRENT ab", "TOP a",
		"CURRENT abc", "TOP ab", "a",
		"CURRENT ab", "TOP a",
		"CURRENT ab", ux.EmptyStackText,
		"WARN: Nothing to undo",
		"CURRENT ab", ux.EmptyStackText,
	}, "\n")+"\n", out.String())
}

func TestRunEditLines_RejectsLongLines(t *testing.T) {
	machineMode(t)

	var out bytes.Buffer
	buf := history.NewUndoBuffer()
	require.NoError(t, runEditLines(strings.NewReader("ok\ntoo long\n"), &out, buf, 4))

	assert.Equal(t, "ok", buf.Current())
	assert.Contains(t, out.String(), "ERROR: Line exceeds 4 bytes, ignored")
}

func TestRunEditLines_LongLinePastReaderBuffer(t *testing.T) {
	machineMode(t)

	long := strings.Repeat("x", 100*1024)
	input := "first\n" + long + "\nlast"

	var out bytes.Buffer
	buf := history.NewUndoBuffer()
	require.NoError(t, runEditLines(strings.NewReader(input), &out, buf, 4096))

	assert.Equal(t, "last", buf.Current())
	assert.Equal(t, []string{"first"}, buf.History())
	assert.Contains(t, out.String(), "ERROR: Line exceeds 4096 bytes, ignored")
}

func TestRunEditLines_AcceptsLongLineWithinLimit(t *testing.T) {
	machineMode(t)

	long := strings.Repeat("y", 100*1024)

	var out bytes.Buffer
	buf := history.NewUndoBuffer()
	require.NoError(t, runEditLines(strings.NewReader(long+"\r\n"), &out, buf, 200*1024))

	assert.Equal(t, long, buf.Current())
	assert.NotContains(t, out.String(), "ERROR")
}

func TestApplyRateLimit(t *testing.T) {
	limiter := rate.NewLimiter(rate.Inf, 0)

	applyRateLimit(limiter, config.ServerConfig{RequestsPerSecond: 5, Burst: 7})
	assert.Equal(t, rate.Limit(5), limiter.Limit())
	assert.Equal(t, 7, limiter.Burst())

	applyRateLimit(limiter, config.ServerConfig{})
	assert.Equal(t, rate.Inf, limiter.Limit())
	assert.True(t, limiter.Allow())
}
