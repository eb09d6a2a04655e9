// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package visualizer serves the bubble sort, binary search and undo-history
// visualizations over HTTP.
//
// # Description
//
// Service validates raw user input, runs the algorithm packages (sorter,
// searcher, history) and shapes their traces into response types. It also
// owns the table of undo sessions, one per browser tab. Handlers and
// RegisterRoutes expose the service as a JSON API, and NewRouter assembles
// the complete gin engine including the embedded browser UI.
//
// # Thread Safety
//
// Service is safe for concurrent use. The algorithm packages are not; the
// service gives every request its own sort/search run and serializes
// operations on the session table.
package visualizer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/AleutianAI/AlgoViz/services/visualizer/history"
	"github.com/AleutianAI/AlgoViz/services/visualizer/input"
	"github.com/AleutianAI/AlgoViz/services/visualizer/searcher"
	"github.com/AleutianAI/AlgoViz/services/visualizer/sorter"
	"github.com/AleutianAI/AlgoViz/services/visualizer/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ServiceVersion is the visualizer service version.
const ServiceVersion = "0.1.0"

var tracer = otel.Tracer("algoviz.visualizer")

// Algorithm names used in metrics and spans.
const (
	algorithmBubbleSort   = "bubble_sort"
	algorithmBinarySearch = "binary_search"
)

// ServiceConfig configures the visualizer service.
type ServiceConfig struct {
	// MaxValues caps the length of a sort or search input. Bubble sort
	// records a full snapshot per comparison, so the trace grows as n^3.
	// Default: 100
	MaxValues int

	// MaxTextBytes caps the editor text of an undo session.
	// Default: 4096
	MaxTextBytes int

	// MaxSessions caps the number of live undo sessions. Zero means no cap.
	// Default: 1000
	MaxSessions int

	// SessionTTL is how long an idle session survives. Zero disables expiry.
	// Default: 30m
	SessionTTL time.Duration
}

// DefaultServiceConfig returns sensible defaults.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		MaxValues:    100,
		MaxTextBytes: 4096,
		MaxSessions:  1000,
		SessionTTL:   30 * time.Minute,
	}
}

// session is one undo buffer plus its idle clock.
type session struct {
	id       string
	buf      *history.UndoBuffer
	lastSeen time.Time
}

func (s *session) response(changed bool) *SessionResponse {
	h := s.buf.History()
	if h == nil {
		h = []string{}
	}
	return &SessionResponse{
		SessionID: s.id,
		Current:   s.buf.Current(),
		History:   h,
		CanUndo:   s.buf.CanUndo(),
		Depth:     s.buf.Depth(),
		Changed:   changed,
	}
}

// Service runs the visualizations and owns the undo sessions.
type Service struct {
	config  ServiceConfig
	logger  *slog.Logger
	metrics *telemetry.Metrics
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

// NewService creates a service with the given configuration.
//
// Logging goes to slog.Default() until WithLogger is called; metrics are
// disabled until WithMetrics is called.
func NewService(config ServiceConfig) *Service {
	return &Service{
		config:   config,
		logger:   slog.Default(),
		now:      time.Now,
		sessions: make(map[string]*session),
	}
}

// WithLogger sets the service logger.
func (s *Service) WithLogger(logger *slog.Logger) *Service {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// WithMetrics sets the metrics instance.
func (s *Service) WithMetrics(metrics *telemetry.Metrics) *Service {
	s.metrics = metrics
	return s
}

// Config returns the service configuration.
func (s *Service) Config() ServiceConfig {
	return s.config
}

// =============================================================================
// Algorithms
// =============================================================================

// Sort parses raw and bubble-sorts it.
//
// # Inputs
//
//   - ctx: Context for tracing.
//   - raw: Comma-separated integers, e.g. "5,3,8,4,2".
//
// # Outputs
//
//   - *SortResponse: Sorted values and the full trace.
//   - error: ErrInvalidInput (wrapping input.ErrNoNumbers) or ErrTooManyValues.
func (s *Service) Sort(ctx context.Context, raw string) (*SortResponse, error) {
	ctx, span := tracer.Start(ctx, "Service.Sort")
	defer span.End()

	values, err := s.parseValues(raw)
	if err != nil {
		telemetry.RecordError(span, err)
		s.metrics.RecordRun(ctx, algorithmBubbleSort, "invalid", 0)
		return nil, err
	}
	span.SetAttributes(attribute.Int("values.count", len(values)))

	result, err := sorter.BubbleSort(values)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrInvalidInput, err)
		telemetry.RecordError(span, err)
		s.metrics.RecordRun(ctx, algorithmBubbleSort, "invalid", 0)
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("sort.comparisons", result.Comparisons()),
		attribute.Int("sort.swaps", result.Swaps()),
		attribute.Int("sort.passes", result.Passes()),
	)
	telemetry.SetSpanOK(span)
	s.metrics.RecordRun(ctx, algorithmBubbleSort, "sorted", len(result.Steps))

	s.logger.Debug("Sorted values",
		"count", len(values),
		"comparisons", result.Comparisons(),
		"swaps", result.Swaps(),
		"trace_id", telemetry.TraceID(ctx),
	)

	return &SortResponse{
		Values:      values,
		Sorted:      result.Sorted,
		Comparisons: result.Comparisons(),
		Swaps:       result.Swaps(),
		Passes:      result.Passes(),
		Steps:       result.Steps,
		Lines:       result.Lines(),
	}, nil
}

// Search parses raw and rawTarget and binary-searches for the target.
//
// The list is not sorted first; unsorted input gives an undefined but
// terminating result.
//
// # Outputs
//
//   - *SearchResponse: Index (-1 when absent) and the full trace.
//   - error: ErrInvalidInput, ErrInvalidTarget or ErrTooManyValues.
func (s *Service) Search(ctx context.Context, raw, rawTarget string) (*SearchResponse, error) {
	ctx, span := tracer.Start(ctx, "Service.Search")
	defer span.End()

	values, err := s.parseValues(raw)
	if err != nil {
		telemetry.RecordError(span, err)
		s.metrics.RecordRun(ctx, algorithmBinarySearch, "invalid", 0)
		return nil, err
	}

	target, err := input.ParseInteger(rawTarget)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrInvalidTarget, err)
		telemetry.RecordError(span, err)
		s.metrics.RecordRun(ctx, algorithmBinarySearch, "invalid", 0)
		return nil, err
	}

	result := searcher.BinarySearch(values, target)

	outcome := "not_found"
	if result.Found {
		outcome = "found"
	}
	span.SetAttributes(
		attribute.Int("values.count", len(values)),
		attribute.Int("search.target", target),
		attribute.Int("search.index", result.Index),
		attribute.Int("search.iterations", result.Iterations()),
	)
	telemetry.SetSpanOK(span)
	s.metrics.RecordRun(ctx, algorithmBinarySearch, outcome, len(result.Steps))

	s.logger.Debug("Searched values",
		"count", len(values),
		"target", target,
		"outcome", outcome,
		"trace_id", telemetry.TraceID(ctx),
	)

	return &SearchResponse{
		Values:     values,
		Target:     target,
		Index:      result.Index,
		Found:      result.Found,
		Iterations: result.Iterations(),
		Summary:    result.Summary(),
		Steps:      result.Steps,
		Lines:      result.Lines(),
	}, nil
}

func (s *Service) parseValues(raw string) ([]int, error) {
	values, err := input.ParseIntegers(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if s.config.MaxValues > 0 && len(values) > s.config.MaxValues {
		return nil, fmt.Errorf("%w: %d values, limit is %d", ErrTooManyValues, len(values), s.config.MaxValues)
	}
	return values, nil
}

// =============================================================================
// Undo sessions
// =============================================================================

// NewSession creates an empty undo session.
//
// # Outputs
//
//   - *SessionResponse: The new session, with empty text and history.
//   - error: ErrTooManySessions when the table is full after expiry.
func (s *Service) NewSession(ctx context.Context) (*SessionResponse, error) {
	_, span := tracer.Start(ctx, "Service.NewSession")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked()
	if s.config.MaxSessions > 0 && len(s.sessions) >= s.config.MaxSessions {
		telemetry.RecordError(span, ErrTooManySessions)
		return nil, ErrTooManySessions
	}

	sess := &session{
		id:       uuid.NewString(),
		buf:      history.NewUndoBuffer(),
		lastSeen: s.now(),
	}
	s.sessions[sess.id] = sess
	span.SetAttributes(attribute.String("session.id", sess.id))

	s.logger.Info("Session created", "session_id", sess.id, "sessions", len(s.sessions))
	return sess.response(false), nil
}

// GetSession returns the state of a session and refreshes its idle clock.
func (s *Service) GetSession(ctx context.Context, id string) (*SessionResponse, error) {
	return s.withSession(ctx, id, "get", func(*session) bool { return false })
}

// Edit replaces the session text.
//
// The previous text is pushed onto the undo stack when it is non-empty and
// differs from text. SessionResponse.Changed reports whether it was pushed.
//
// # Outputs
//
//   - error: ErrTextTooLong or ErrSessionNotFound.
func (s *Service) Edit(ctx context.Context, id, text string) (*SessionResponse, error) {
	if s.config.MaxTextBytes > 0 && len(text) > s.config.MaxTextBytes {
		return nil, fmt.Errorf("%w: %d bytes, limit is %d", ErrTextTooLong, len(text), s.config.MaxTextBytes)
	}
	return s.withSession(ctx, id, "edit", func(sess *session) bool {
		return sess.buf.Edit(text)
	})
}

// Undo restores the most recent prior text.
//
// With an empty history the session is unchanged and Changed is false.
func (s *Service) Undo(ctx context.Context, id string) (*SessionResponse, error) {
	return s.withSession(ctx, id, "undo", func(sess *session) bool {
		_, ok := sess.buf.Undo()
		return ok
	})
}

// ClearHistory empties the undo stack and keeps the current text.
func (s *Service) ClearHistory(ctx context.Context, id string) (*SessionResponse, error) {
	return s.withSession(ctx, id, "clear", func(sess *session) bool {
		changed := sess.buf.CanUndo()
		sess.buf.Clear()
		return changed
	})
}

// DeleteSession drops a session.
func (s *Service) DeleteSession(ctx context.Context, id string) error {
	_, span := tracer.Start(ctx, "Service.DeleteSession",
		trace.WithAttributes(attribute.String("session.id", id)))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.lookupLocked(id); err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	delete(s.sessions, id)

	s.logger.Info("Session deleted", "session_id", id, "sessions", len(s.sessions))
	return nil
}

// SessionCount returns the number of sessions in the table, including
// expired sessions that have not been swept yet.
func (s *Service) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep removes every expired session and returns how many were removed.
func (s *Service) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweepLocked()
}

// RunJanitor calls Sweep every interval until ctx is done.
//
// # Outputs
//
//   - error: Always ctx.Err(), for use inside an errgroup.
func (s *Service) RunJanitor(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				s.logger.Info("Expired sessions removed", "count", n)
			}
		}
	}
}

func (s *Service) withSession(ctx context.Context, id, op string, fn func(*session) bool) (*SessionResponse, error) {
	ctx, span := tracer.Start(ctx, "Service.Session."+op,
		trace.WithAttributes(attribute.String("session.id", id)))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lookupLocked(id)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	changed := fn(sess)
	sess.lastSeen = s.now()

	if op != "get" {
		s.metrics.RecordHistoryOp(ctx, op, changed)
	}
	span.SetAttributes(
		attribute.Bool("session.changed", changed),
		attribute.Int("session.depth", sess.buf.Depth()),
	)
	telemetry.SetSpanOK(span)

	return sess.response(changed), nil
}

// lookupLocked returns a live session, dropping it if it expired.
// Caller must hold s.mu.
func (s *Service) lookupLocked(id string) (*session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if s.expired(sess) {
		delete(s.sessions, id)
		s.logger.Info("Session expired", "session_id", id)
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

func (s *Service) sweepLocked() int {
	removed := 0
	for id, sess := range s.sessions {
		if s.expired(sess) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

func (s *Service) expired(sess *session) bool {
	return s.config.SessionTTL > 0 && s.now().Sub(sess.lastSeen) > s.config.SessionTTL
}
