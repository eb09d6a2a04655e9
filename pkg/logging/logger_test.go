// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Level Tests
// =============================================================================

func TestLevel_String(t *testing.T) {
	assert.Equal(t, "DEBUG", LevelDebug.String())
	assert.Equal(t, "INFO", LevelInfo.String())
	assert.Equal(t, "WARN", LevelWarn.String())
	assert.Equal(t, "ERROR", LevelError.String())
	assert.Equal(t, "UNKNOWN", Level(99).String())
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{" warning ", LevelWarn, false},
		{"warn", LevelWarn, false},
		{"error", LevelError, false},
		{"loud", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

// =============================================================================
// Logger Tests
// =============================================================================

func TestNew_WithLogDir(t *testing.T) {
	dir := t.TempDir()
	logger := New(Config{LogDir: dir, Service: "test", Quiet: true})

	logger.Info("hello", "key", "value")
	require.NoError(t, logger.Close())

	name := "test_" + time.Now().Format("2006-01-02") + ".log"
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)

	content := string(data)
	assert.Contains(t, content, `"msg":"hello"`)
	assert.Contains(t, content, `"key":"value"`)
	assert.Contains(t, content, `"service":"test"`)
}

func TestNew_WithLogDir_DefaultServiceName(t *testing.T) {
	dir := t.TempDir()
	logger := New(Config{LogDir: dir, Quiet: true})
	logger.Info("x")
	require.NoError(t, logger.Close())

	matches, err := filepath.Glob(filepath.Join(dir, "algoviz_*.log"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestNew_InvalidLogDirFallsBack(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0600))

	logger := New(Config{LogDir: filepath.Join(file, "logs"), Quiet: true})
	assert.Nil(t, logger.file)
	logger.Info("still works")
	assert.NoError(t, logger.Close())
}

func TestLogger_LevelFiltering(t *testing.T) {
	dir := t.TempDir()
	logger := New(Config{LogDir: dir, Service: "filter", Quiet: true, Level: LevelWarn})

	logger.Debug("debug-msg")
	logger.Info("info-msg")
	logger.Warn("warn-msg")
	logger.Error("error-msg")
	require.NoError(t, logger.Close())

	name := "filter_" + time.Now().Format("2006-01-02") + ".log"
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)

	content := string(data)
	assert.NotContains(t, content, "debug-msg")
	assert.NotContains(t, content, "info-msg")
	assert.Contains(t, content, "warn-msg")
	assert.Contains(t, content, "error-msg")
}

func TestLogger_CloseIsIdempotent(t *testing.T) {
	logger := New(Config{LogDir: t.TempDir(), Quiet: true})
	require.NoError(t, logger.Close())
	assert.NoError(t, logger.Close())
}

func TestLogger_ConcurrentLogAndClose(t *testing.T) {
	logger := New(Config{LogDir: t.TempDir(), Service: "race", Quiet: true})
	child := logger.With("request_id", "r1")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				child.Info("tick", "n", j)
			}
		}()
	}
	require.NoError(t, logger.Close())
	wg.Wait()
}

func TestLogger_Slog(t *testing.T) {
	logger := Default()
	assert.NotNil(t, logger.Slog())
}

// =============================================================================
// Handler Tests
// =============================================================================

func TestMultiHandler_FansOut(t *testing.T) {
	var a, b bytes.Buffer
	h := &multiHandler{handlers: []slog.Handler{
		slog.NewTextHandler(&a, nil),
		slog.NewJSONHandler(&b, nil),
	}}

	slog.New(h).With("k", "v").Info("both")

	assert.Contains(t, a.String(), "msg=both")
	assert.Contains(t, a.String(), "k=v")
	assert.Contains(t, b.String(), `"msg":"both"`)
	assert.Contains(t, b.String(), `"k":"v"`)
}

func TestMultiHandler_EnabledIfAny(t *testing.T) {
	var buf bytes.Buffer
	h := &multiHandler{handlers: []slog.Handler{
		slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelError}),
		slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}),
	}}
	assert.True(t, h.Enabled(context.Background(), slog.LevelDebug))
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".algoviz/logs"), expandPath("~/.algoviz/logs"))
	assert.Equal(t, "/var/log", expandPath("/var/log"))
	assert.True(t, strings.HasPrefix(expandPath("rel/path"), "rel"))
}
