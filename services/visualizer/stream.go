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
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Algorithm names accepted in StreamRequest.Algorithm.
const (
	algorithmSort   = "sort"
	algorithmSearch = "search"
)

const (
	// maxStreamDelay caps StreamRequest.DelayMS.
	maxStreamDelay = 2 * time.Second

	// maxStreamDuration caps the total pause time of one playback. Longer
	// traces are played back faster.
	maxStreamDuration = 2 * time.Minute

	streamReadLimit = 64 * 1024
	streamWriteWait = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleStream handles GET /v1/stream.
//
// Description:
//
//	Upgrades to a websocket and plays back algorithm traces one step per
//	frame. The client may send any number of StreamRequest messages on
//	one connection; each is answered with its step frames followed by a
//	"done" frame, or a single "error" frame when the request is rejected.
//	Requests are handled in order. Playback stops when the request
//	context ends; servers should set http.Server.BaseContext so that
//	shutdown reaches hijacked connections.
func (h *Handlers) HandleStream(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := h.logger.With("request_id", requestID, "handler", "HandleStream")

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("WebSocket upgrade failed", "error", err)
		return
	}
	defer ws.Close()
	ws.SetReadLimit(streamReadLimit)
	logger.Debug("Stream client connected")

	ctx := c.Request.Context()
	for {
		var req StreamRequest
		if err := ws.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("Stream client dropped", "error", err)
			} else {
				logger.Debug("Stream client disconnected")
			}
			return
		}

		if err := h.stream(ctx, ws, req); err != nil {
			logger.Debug("Stream aborted", "error", err)
			return
		}
	}
}

func (h *Handlers) stream(ctx context.Context, ws *websocket.Conn, req StreamRequest) error {
	var (
		frames []StreamFrame
		result any
		err    error
	)

	switch req.Algorithm {
	case algorithmSort:
		var resp *SortResponse
		if resp, err = h.svc.Sort(ctx, req.Input); err == nil {
			frames, result = stepFrames(resp.Steps), resp
		}
	case algorithmSearch:
		var resp *SearchResponse
		if resp, err = h.svc.Search(ctx, req.Input, req.Target); err == nil {
			frames, result = stepFrames(resp.Steps), resp
		}
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownAlgorithm, req.Algorithm)
	}

	if err != nil {
		_, resp := errorResponse(err)
		return writeFrame(ws, StreamFrame{Type: "error", Error: &resp})
	}

	delay := streamDelay(req.DelayMS, len(frames))
	for i, frame := range frames {
		if i > 0 && delay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
		if err := writeFrame(ws, frame); err != nil {
			return err
		}
	}
	return writeFrame(ws, StreamFrame{Type: "done", Total: len(frames), Result: result})
}

// stepFrames builds one "step" frame per trace step, numbered from 1.
func stepFrames[S fmt.Stringer](steps []S) []StreamFrame {
	frames := make([]StreamFrame, len(steps))
	for i, s := range steps {
		frames[i] = StreamFrame{
			Type:  "step",
			Index: i + 1,
			Total: len(steps),
			Line:  s.String(),
			Step:  s,
		}
	}
	return frames
}

// streamDelay returns the pause between frames: ms clamped to
// [0, maxStreamDelay], then shortened so the pauses of a frames-long
// playback fit in maxStreamDuration.
func streamDelay(ms, frames int) time.Duration {
	d := time.Duration(ms) * time.Millisecond
	if d <= 0 {
		return 0
	}
	d = min(d, maxStreamDelay)
	if frames > 1 {
		d = min(d, maxStreamDuration/time.Duration(frames-1))
	}
	return d
}

func writeFrame(ws *websocket.Conn, frame StreamFrame) error {
	if err := ws.SetWriteDeadline(time.Now().Add(streamWriteWait)); err != nil {
		return err
	}
	return ws.WriteJSON(frame)
}
