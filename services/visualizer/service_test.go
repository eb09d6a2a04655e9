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
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/AleutianAI/AlgoViz/services/visualizer/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestService(t *testing.T, mutate func(*ServiceConfig)) (*Service, *fakeClock) {
	t.Helper()
	cfg := DefaultServiceConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	clock := newFakeClock()
	svc := NewService(cfg)
	svc.now = clock.now
	return svc, clock
}

// =============================================================================
// Sort / Search
// =============================================================================

func TestService_Sort(t *testing.T) {
	svc, _ := newTestService(t, nil)

	resp, err := svc.Sort(context.Background(), "5, 3, 8, 4, 2")
	require.NoError(t, err)

	assert.Equal(t, []int{5, 3, 8, 4, 2}, resp.Values)
	assert.Equal(t, []int{2, 3, 4, 5, 8}, resp.Sorted)
	assert.Equal(t, 10, resp.Comparisons)
	assert.Equal(t, 7, resp.Swaps)
	assert.Equal(t, 4, resp.Passes)
	require.Len(t, resp.Lines, len(resp.Steps))
	assert.Equal(t, "Initial array: 5 3 8 4 2", resp.Lines[0])
	assert.Equal(t, "After pass 4: 2 3 4 5 8", resp.Lines[len(resp.Lines)-1])
}

func TestService_Sort_IgnoresNonNumericTokens(t *testing.T) {
	svc, _ := newTestService(t, nil)

	resp, err := svc.Sort(context.Background(), "3, x, 1, 2.7")
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1, 2}, resp.Values)
	assert.Equal(t, []int{1, 2, 3}, resp.Sorted)
}

func TestService_Sort_InvalidInput(t *testing.T) {
	svc, _ := newTestService(t, nil)

	for _, raw := range []string{"", "  ", "a, b, c", ",,,"} {
		t.Run(fmt.Sprintf("%q", raw), func(t *testing.T) {
			_, err := svc.Sort(context.Background(), raw)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.ErrorIs(t, err, input.ErrNoNumbers)
		})
	}
}

func TestService_Sort_TooManyValues(t *testing.T) {
	svc, _ := newTestService(t, func(c *ServiceConfig) { c.MaxValues = 3 })

	_, err := svc.Sort(context.Background(), "1,2,3,4")
	assert.ErrorIs(t, err, ErrTooManyValues)

	_, err = svc.Sort(context.Background(), "1,2,3")
	assert.NoError(t, err)
}

func TestService_Search(t *testing.T) {
	svc, _ := newTestService(t, nil)

	tests := []struct {
		name       string
		raw        string
		target     string
		wantIndex  int
		wantFound  bool
		wantIter   int
		wantSumary string
	}{
		{"found right half", "2,3,4,5,8", "5", 3, true, 2, "5 found at index 3"},
		{"found at middle", "2,3,4,5,8", "4", 2, true, 1, "4 found at index 2"},
		{"not found", "2,3,4,5,8", "6", -1, false, 3, "6 not found in the array"},
		{"target with suffix", "2,3,4,5,8", "8px", 4, true, 3, "8 found at index 4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Search(context.Background(), tt.raw, tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.wantIndex, resp.Index)
			assert.Equal(t, tt.wantFound, resp.Found)
			assert.Equal(t, tt.wantIter, resp.Iterations)
			assert.Equal(t, tt.wantSumary, resp.Summary)
			assert.Len(t, resp.Lines, len(resp.Steps))
		})
	}
}

func TestService_Search_Errors(t *testing.T) {
	svc, _ := newTestService(t, func(c *ServiceConfig) { c.MaxValues = 2 })

	_, err := svc.Search(context.Background(), "nope", "1")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Search(context.Background(), "1,2", "x")
	assert.ErrorIs(t, err, ErrInvalidTarget)
	assert.ErrorIs(t, err, input.ErrNotANumber)

	_, err = svc.Search(context.Background(), "1,2,3", "1")
	assert.ErrorIs(t, err, ErrTooManyValues)
}

// =============================================================================
// Sessions
// =============================================================================

func TestService_SessionUndoFlow(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	s, err := svc.NewSession(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, s.SessionID)
	assert.Equal(t, "", s.Current)
	assert.Empty(t, s.History)
	assert.NotNil(t, s.History)
	assert.False(t, s.CanUndo)
	id := s.SessionID

	s, err = svc.Edit(ctx, id, "a")
	require.NoError(t, err)
	assert.False(t, s.Changed, "edit from empty text pushes nothing")
	assert.Equal(t, 0, s.Depth)

	_, err = svc.Edit(ctx, id, "ab")
	require.NoError(t, err)
	s, err = svc.Edit(ctx, id, "abc")
	require.NoError(t, err)
	assert.True(t, s.Changed)
	assert.Equal(t, "abc", s.Current)
	assert.Equal(t, []string{"ab", "a"}, s.History)
	assert.True(t, s.CanUndo)

	s, err = svc.Edit(ctx, id, "abc")
	require.NoError(t, err)
	assert.False(t, s.Changed, "no-op edit")
	assert.Equal(t, 2, s.Depth)

	s, err = svc.Undo(ctx, id)
	require.NoError(t, err)
	assert.True(t, s.Changed)
	assert.Equal(t, "ab", s.Current)

	s, err = svc.Undo(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "a", s.Current)
	assert.False(t, s.CanUndo)

	s, err = svc.Undo(ctx, id)
	require.NoError(t, err)
	assert.False(t, s.Changed)
	assert.Equal(t, "a", s.Current)

	s, err = svc.GetSession(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "a", s.Current)
}

func TestService_ClearHistoryKeepsText(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	s, err := svc.NewSession(ctx)
	require.NoError(t, err)
	for _, text := range []string{"x", "xy", "xyz"} {
		_, err = svc.Edit(ctx, s.SessionID, text)
		require.NoError(t, err)
	}

	s, err = svc.ClearHistory(ctx, s.SessionID)
	require.NoError(t, err)
	assert.True(t, s.Changed)
	assert.Equal(t, "xyz", s.Current)
	assert.Equal(t, 0, s.Depth)
	assert.False(t, s.CanUndo)

	s, err = svc.ClearHistory(ctx, s.SessionID)
	require.NoError(t, err)
	assert.False(t, s.Changed)
}

func TestService_EditTextTooLong(t *testing.T) {
	svc, _ := newTestService(t, func(c *ServiceConfig) { c.MaxTextBytes = 4 })
	ctx := context.Background()

	s, err := svc.NewSession(ctx)
	require.NoError(t, err)

	_, err = svc.Edit(ctx, s.SessionID, "12345")
	assert.ErrorIs(t, err, ErrTextTooLong)

	_, err = svc.Edit(ctx, s.SessionID, "1234")
	assert.NoError(t, err)
}

func TestService_SessionNotFound(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	_, err := svc.GetSession(ctx, "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = svc.Edit(ctx, "missing", "x")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = svc.Undo(ctx, "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = svc.ClearHistory(ctx, "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, svc.DeleteSession(ctx, "missing"), ErrSessionNotFound)
}

func TestService_DeleteSession(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	s, err := svc.NewSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, svc.SessionCount())

	require.NoError(t, svc.DeleteSession(ctx, s.SessionID))
	assert.Equal(t, 0, svc.SessionCount())

	_, err = svc.GetSession(ctx, s.SessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestService_MaxSessions(t *testing.T) {
	svc, _ := newTestService(t, func(c *ServiceConfig) { c.MaxSessions = 2 })
	ctx := context.Background()

	_, err := svc.NewSession(ctx)
	require.NoError(t, err)
	_, err = svc.NewSession(ctx)
	require.NoError(t, err)

	_, err = svc.NewSession(ctx)
	assert.ErrorIs(t, err, ErrTooManySessions)
}

func TestService_SessionExpiry(t *testing.T) {
	svc, clock := newTestService(t, func(c *ServiceConfig) { c.SessionTTL = 10 * time.Minute })
	ctx := context.Background()

	s, err := svc.NewSession(ctx)
	require.NoError(t, err)

	clock.advance(9 * time.Minute)
	_, err = svc.GetSession(ctx, s.SessionID)
	require.NoError(t, err, "access refreshes the idle clock")

	clock.advance(9 * time.Minute)
	_, err = svc.Edit(ctx, s.SessionID, "still here")
	require.NoError(t, err)

	clock.advance(11 * time.Minute)
	_, err = svc.GetSession(ctx, s.SessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Equal(t, 0, svc.SessionCount())
}

func TestService_ExpiredSessionsFreeCapacity(t *testing.T) {
	svc, clock := newTestService(t, func(c *ServiceConfig) {
		c.MaxSessions = 1
		c.SessionTTL = time.Minute
	})
	ctx := context.Background()

	_, err := svc.NewSession(ctx)
	require.NoError(t, err)
	_, err = svc.NewSession(ctx)
	require.ErrorIs(t, err, ErrTooManySessions)

	clock.advance(2 * time.Minute)
	_, err = svc.NewSession(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 1, svc.SessionCount())
}

func TestService_Sweep(t *testing.T) {
	svc, clock := newTestService(t, func(c *ServiceConfig) { c.SessionTTL = time.Minute })
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.NewSession(ctx)
		require.NoError(t, err)
	}
	assert.Equal(t, 0, svc.Sweep())

	clock.advance(2 * time.Minute)
	assert.Equal(t, 3, svc.Sweep())
	assert.Equal(t, 0, svc.SessionCount())
}

func TestService_NoExpiryWhenTTLZero(t *testing.T) {
	svc, clock := newTestService(t, func(c *ServiceConfig) { c.SessionTTL = 0 })

	s, err := svc.NewSession(context.Background())
	require.NoError(t, err)

	clock.advance(24 * time.Hour)
	_, err = svc.GetSession(context.Background(), s.SessionID)
	assert.NoError(t, err)
}

func TestService_RunJanitorStopsOnCancel(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- svc.RunJanitor(ctx, time.Millisecond) }()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop")
	}
}

func TestService_ConcurrentEditsOnOneSession(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	s, err := svc.NewSession(ctx)
	require.NoError(t, err)

	const writers = 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = svc.Edit(ctx, s.SessionID, fmt.Sprintf("text-%d", i))
			_, _ = svc.Undo(ctx, s.SessionID)
		}(i)
	}
	wg.Wait()

	got, err := svc.GetSession(ctx, s.SessionID)
	require.NoError(t, err)
	assert.LessOrEqual(t, got.Depth, writers)
	assert.Len(t, got.History, got.Depth)
}
