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
	"net/http"

	"github.com/AleutianAI/AlgoViz/services/visualizer/telemetry"
	"github.com/AleutianAI/AlgoViz/services/visualizer/ui"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"golang.org/x/time/rate"
)

// RegisterRoutes registers the /v1 API routes.
//
// Description:
//
//	Registers every visualizer endpoint on the given Gin router group.
//	The group should already carry any required middleware.
//
// Inputs:
//
//	rg - Gin router group (typically /v1)
//	handlers - The handlers instance
//
// Algorithm Endpoints:
//
//	POST   /v1/sort                  - Bubble sort with trace
//	POST   /v1/search                - Binary search with trace
//	GET    /v1/stream                - WebSocket step playback
//
// Session Endpoints:
//
//	POST   /v1/sessions              - Create an undo session
//	GET    /v1/sessions/:id          - Session state
//	PUT    /v1/sessions/:id/text     - Edit the text
//	POST   /v1/sessions/:id/undo     - Undo the last edit
//	DELETE /v1/sessions/:id/history  - Clear the undo history
//	DELETE /v1/sessions/:id          - Delete the session
func RegisterRoutes(rg *gin.RouterGroup, handlers *Handlers) {
	rg.POST("/sort", handlers.HandleSort)
	rg.POST("/search", handlers.HandleSearch)
	rg.GET("/stream", handlers.HandleStream)

	sessions := rg.Group("/sessions")
	{
		sessions.POST("", handlers.HandleCreateSession)
		sessions.GET("/:id", handlers.HandleGetSession)
		sessions.PUT("/:id/text", handlers.HandleEdit)
		sessions.POST("/:id/undo", handlers.HandleUndo)
		sessions.DELETE("/:id/history", handlers.HandleClearHistory)
		sessions.DELETE("/:id", handlers.HandleDeleteSession)
	}
}

// RouterConfig selects the optional parts of NewRouter.
type RouterConfig struct {
	// ServiceName enables otelgin request spans when non-empty.
	ServiceName string

	// Metrics records HTTP metrics when non-nil.
	Metrics *telemetry.Metrics

	// MetricsHandler is served at GET /metrics when non-nil.
	MetricsHandler http.Handler

	// Limiter rate-limits the /v1 API when non-nil.
	Limiter *rate.Limiter
}

// NewRouter builds the complete gin engine: middleware, health, the
// embedded UI, /metrics and the /v1 API.
func NewRouter(handlers *Handlers, cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		router.Use(otelgin.Middleware(cfg.ServiceName))
	}
	router.Use(
		RequestID(),
		RequestLogger(handlers.logger),
		telemetry.GinMetrics(cfg.Metrics),
	)

	router.GET("/health", handlers.HandleHealth)
	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/ui/")
	})
	router.StaticFS("/ui", ui.FS())

	if cfg.MetricsHandler != nil {
		router.GET("/metrics", gin.WrapH(cfg.MetricsHandler))
	}

	v1 := router.Group("/v1")
	v1.Use(RateLimit(cfg.Limiter))
	RegisterRoutes(v1, handlers)

	return router
}
