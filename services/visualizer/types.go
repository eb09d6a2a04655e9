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

import (
	"github.com/AleutianAI/AlgoViz/services/visualizer/searcher"
	"github.com/AleutianAI/AlgoViz/services/visualizer/sorter"
)

// =============================================================================
// Sort
// =============================================================================

// SortRequest is the request body for POST /v1/sort.
type SortRequest struct {
	// Input is a comma-separated list such as "5, 3, 8, 4, 2".
	// Tokens without a leading integer are ignored.
	Input string `json:"input"`
}

// SortResponse is the response for POST /v1/sort.
type SortResponse struct {
	// Values is the parsed input.
	Values []int `json:"values"`

	// Sorted is Values in non-decreasing order.
	Sorted []int `json:"sorted"`

	// Comparisons, Swaps and Passes summarize the trace.
	Comparisons int `json:"comparisons"`
	Swaps       int `json:"swaps"`
	Passes      int `json:"passes"`

	// Steps is the structured trace.
	Steps []sorter.Step `json:"steps"`

	// Lines is the trace rendered one line per step.
	Lines []string `json:"lines"`
}

// =============================================================================
// Search
// =============================================================================

// SearchRequest is the request body for POST /v1/search.
type SearchRequest struct {
	// Input is a comma-separated list, assumed sorted ascending.
	Input string `json:"input"`

	// Target is the value to look for. Parsed with the same rules as Input.
	Target string `json:"target"`
}

// SearchResponse is the response for POST /v1/search.
type SearchResponse struct {
	Values     []int  `json:"values"`
	Target     int    `json:"target"`
	Index      int    `json:"index"`
	Found      bool   `json:"found"`
	Iterations int    `json:"iterations"`
	Summary    string `json:"summary"`

	Steps []searcher.Step `json:"steps"`
	Lines []string        `json:"lines"`
}

// =============================================================================
// Sessions
// =============================================================================

// EditRequest is the request body for PUT /v1/sessions/:id/text.
type EditRequest struct {
	// Text is the new editor content. Empty is allowed, absent is not.
	Text *string `json:"text"`
}

// SessionResponse describes the state of one undo session.
type SessionResponse struct {
	// SessionID identifies the session in later requests.
	SessionID string `json:"session_id"`

	// Current is the editor content.
	Current string `json:"current"`

	// History is the undo stack, most recent first.
	History []string `json:"history"`

	// CanUndo is false when History is empty.
	CanUndo bool `json:"can_undo"`

	// Depth is len(History).
	Depth int `json:"depth"`

	// Changed reports whether the last operation modified the session.
	Changed bool `json:"changed"`
}

// =============================================================================
// Step streaming
// =============================================================================

// StreamRequest is one client message on the /v1/stream websocket.
type StreamRequest struct {
	// Algorithm is "sort" or "search".
	Algorithm string `json:"algorithm"`

	Input  string `json:"input"`
	Target string `json:"target,omitempty"`

	// DelayMS is the pause between step frames. Clamped to
	// [0, maxStreamDelay].
	DelayMS int `json:"delay_ms,omitempty"`
}

// StreamFrame is one server message on the /v1/stream websocket.
//
// Type is "step" for each trace step, then "done" carrying the full
// SortResponse or SearchResponse. A rejected request yields a single
// "error" frame and the connection stays open.
type StreamFrame struct {
	Type   string         `json:"type"`
	Index  int            `json:"index"`
	Total  int            `json:"total,omitempty"`
	Line   string         `json:"line,omitempty"`
	Step   any            `json:"step,omitempty"`
	Result any            `json:"result,omitempty"`
	Error  *ErrorResponse `json:"error,omitempty"`
}

// =============================================================================
// Common
// =============================================================================

// HealthResponse is the response for GET /health.
type HealthResponse struct {
	// Status is always "healthy" while the process serves requests.
	Status string `json:"status"`

	// Version is the service version.
	Version string `json:"version"`

	// Sessions is the number of live undo sessions.
	Sessions int `json:"sessions"`
}

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	// Error is the error message.
	Error string `json:"error"`

	// Code is a stable machine-readable error code.
	Code string `json:"code,omitempty"`
}
