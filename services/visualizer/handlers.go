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
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// Handlers contains the HTTP handlers for the visualizer.
type Handlers struct {
	svc    *Service
	logger *slog.Logger
}

// NewHandlers creates handlers for the given service.
func NewHandlers(svc *Service) *Handlers {
	return &Handlers{svc: svc, logger: svc.logger}
}

// HandleHealth handles GET /health.
func (h *Handlers) HandleHealth(c *gin.Context) {
	getOrCreateRequestID(c)
	c.JSON(http.StatusOK, HealthResponse{
		Status:   "healthy",
		Version:  ServiceVersion,
		Sessions: h.svc.SessionCount(),
	})
}

// HandleSort handles POST /v1/sort.
//
// Description:
//
//	Parses the comma-separated input and returns the sorted values with
//	the bubble sort trace.
//
// Request Body:
//
//	SortRequest
//
// Response:
//
//	200 OK: SortResponse
//	400 Bad Request: INVALID_REQUEST, INVALID_INPUT or TOO_MANY_VALUES
func (h *Handlers) HandleSort(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := h.logger.With("request_id", requestID, "handler", "HandleSort")

	var req SortRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request body",
			Code:  "INVALID_REQUEST",
		})
		return
	}

	resp, err := h.svc.Sort(c.Request.Context(), req.Input)
	if err != nil {
		h.writeError(c, logger, err)
		return
	}

	logger.Info("Sort completed", "values", len(resp.Values), "steps", len(resp.Steps))
	c.JSON(http.StatusOK, resp)
}

// HandleSearch handles POST /v1/search.
//
// Response:
//
//	200 OK: SearchResponse (found or not)
//	400 Bad Request: INVALID_REQUEST, INVALID_INPUT, INVALID_TARGET or TOO_MANY_VALUES
func (h *Handlers) HandleSearch(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := h.logger.With("request_id", requestID, "handler", "HandleSearch")

	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request body",
			Code:  "INVALID_REQUEST",
		})
		return
	}

	resp, err := h.svc.Search(c.Request.Context(), req.Input, req.Target)
	if err != nil {
		h.writeError(c, logger, err)
		return
	}

	logger.Info("Search completed", "found", resp.Found, "iterations", resp.Iterations)
	c.JSON(http.StatusOK, resp)
}

// HandleCreateSession handles POST /v1/sessions.
//
// Response:
//
//	201 Created: SessionResponse
//	503 Service Unavailable: TOO_MANY_SESSIONS
func (h *Handlers) HandleCreateSession(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := h.logger.With("request_id", requestID, "handler", "HandleCreateSession")

	resp, err := h.svc.NewSession(c.Request.Context())
	if err != nil {
		h.writeError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// HandleGetSession handles GET /v1/sessions/:id.
func (h *Handlers) HandleGetSession(c *gin.Context) {
	h.sessionOp(c, "HandleGetSession", h.svc.GetSession)
}

// HandleEdit handles PUT /v1/sessions/:id/text.
//
// Request Body:
//
//	EditRequest
//
// Response:
//
//	200 OK: SessionResponse
//	400 Bad Request: INVALID_REQUEST or TEXT_TOO_LONG
//	404 Not Found: SESSION_NOT_FOUND
func (h *Handlers) HandleEdit(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := h.logger.With("request_id", requestID, "handler", "HandleEdit")

	var req EditRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == nil {
		logger.Warn("Invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request body",
			Code:  "INVALID_REQUEST",
		})
		return
	}

	resp, err := h.svc.Edit(c.Request.Context(), c.Param("id"), *req.Text)
	if err != nil {
		h.writeError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// HandleUndo handles POST /v1/sessions/:id/undo.
//
// An undo with empty history is not an error: the response has
// changed=false and can_undo=false.
func (h *Handlers) HandleUndo(c *gin.Context) {
	h.sessionOp(c, "HandleUndo", h.svc.Undo)
}

// HandleClearHistory handles DELETE /v1/sessions/:id/history.
func (h *Handlers) HandleClearHistory(c *gin.Context) {
	h.sessionOp(c, "HandleClearHistory", h.svc.ClearHistory)
}

// HandleDeleteSession handles DELETE /v1/sessions/:id.
func (h *Handlers) HandleDeleteSession(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := h.logger.With("request_id", requestID, "handler", "HandleDeleteSession")

	if err := h.svc.DeleteSession(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handlers) sessionOp(c *gin.Context, name string, op func(ctx context.Context, id string) (*SessionResponse, error)) {
	requestID := getOrCreateRequestID(c)
	logger := h.logger.With("request_id", requestID, "handler", name)

	resp, err := op(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// writeError maps service errors to status codes and error codes.
func (h *Handlers) writeError(c *gin.Context, logger *slog.Logger, err error) {
	statusCode, resp := errorResponse(err)
	if statusCode >= http.StatusInternalServerError {
		logger.Error("Request failed", "error", err)
	} else {
		logger.Warn("Request rejected", "error", err, "code", resp.Code)
	}
	c.JSON(statusCode, resp)
}

func errorResponse(err error) (int, ErrorResponse) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest, ErrorResponse{Error: ErrInvalidInput.Error(), Code: "INVALID_INPUT"}
	case errors.Is(err, ErrInvalidTarget):
		return http.StatusBadRequest, ErrorResponse{Error: ErrInvalidTarget.Error(), Code: "INVALID_TARGET"}
	case errors.Is(err, ErrTooManyValues):
		return http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "TOO_MANY_VALUES"}
	case errors.Is(err, ErrTextTooLong):
		return http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "TEXT_TOO_LONG"}
	case errors.Is(err, ErrUnknownAlgorithm):
		return http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "UNKNOWN_ALGORITHM"}
	case errors.Is(err, ErrSessionNotFound):
		return http.StatusNotFound, ErrorResponse{Error: ErrSessionNotFound.Error(), Code: "SESSION_NOT_FOUND"}
	case errors.Is(err, ErrTooManySessions):
		return http.StatusServiceUnavailable, ErrorResponse{Error: ErrTooManySessions.Error(), Code: "TOO_MANY_SESSIONS"}
	}
	return http.StatusInternalServerError, ErrorResponse{Error: "Internal error", Code: "INTERNAL_ERROR"}
}

// getOrCreateRequestID returns the request ID for c.
//
// The ID comes from the X-Request-ID request header when present, otherwise
// a new UUID. It is echoed in the response header and cached on the context
// so middleware and handlers agree.
func getOrCreateRequestID(c *gin.Context) string {
	if v, ok := c.Get(requestIDKey); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	requestID := c.GetHeader(requestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Set(requestIDKey, requestID)
	c.Header(requestIDHeader, requestID)
	return requestID
}
