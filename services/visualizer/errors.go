// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package visualizer

import "errors"

// Sentinel errors for the visualizer service.
var (
	// ErrInvalidInput indicates the list contained no parseable integers.
	ErrInvalidInput = errors.New("invalid input: enter comma-separated integers")

	// ErrInvalidTarget indicates the search target was not an integer.
	ErrInvalidTarget = errors.New("invalid target: enter an integer")

	// ErrTooManyValues indicates the list exceeds ServiceConfig.MaxValues.
	ErrTooManyValues = errors.New("too many values")

	// ErrTextTooLong indicates an edit exceeds ServiceConfig.MaxTextBytes.
	ErrTextTooLong = errors.New("text too long")

	// ErrUnknownAlgorithm indicates a stream request named neither
	// "sort" nor "search".
	ErrUnknownAlgorithm = errors.New("unknown algorithm")

	// ErrSessionNotFound indicates the session never existed, was deleted,
	// or expired.
	ErrSessionNotFound = errors.New("session not found")

	// ErrTooManySessions indicates the session table is full.
	ErrTooManySessions = errors.New("too many sessions")
)
