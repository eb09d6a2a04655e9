// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the config file when it changes on disk.
//
// # Description
//
// The parent directory is watched rather than the file itself so that
// editors which save by rename are still seen. A reload that fails to
// read or validate is logged and ignored; the previous config stays in
// effect.
//
// # Thread Safety
//
// Run should be called once. onChange is invoked from the Run goroutine.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	onChange func(*Config)
	logger   *slog.Logger
}

// NewWatcher creates a watcher for path.
//
// # Inputs
//
//   - path: Config file to watch. Must be non-empty.
//   - onChange: Called with each successfully reloaded config.
//   - logger: Destination for reload diagnostics. Nil uses slog.Default.
func NewWatcher(path string, onChange func(*Config), logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create config watcher: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		fw.Close()
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	return &Watcher{path: abs, watcher: fw, onChange: onChange, logger: logger}, nil
}

// Run delivers reloads until ctx is cancelled, then closes the watcher.
// It returns ctx.Err().
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return ctx.Err()
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return ctx.Err()
			}
			w.logger.Warn("Config watcher error", "error", err)

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}

	cfg, err := Load(w.path)
	if err != nil {
		w.logger.Warn("Config reload rejected", "path", w.path, "error", err)
		return
	}
	w.logger.Info("Config reloaded", "path", w.path)
	if w.onChange != nil {
		w.onChange(cfg)
	}
}
