// Copyright 2025 The ResumeKit Authors
// Licensed under the EUPL-1.2

package server

import (
	"github.com/labstack/echo/v4"
	"github.com/resumekit/resumekit/internal/handlers"
	"github.com/resumekit/resumekit/internal/middleware"
	"github.com/resumekit/resumekit/internal/services/session"
)

func setupRoutes(e *echo.Echo, h *handlers.Handlers, sessions *session.Manager) {
	e.GET("/health", h.Health)

	auth := e.Group("/api/auth")
	auth.POST("/signup", h.Signup)
	auth.POST("/signin", h.Signin)
	auth.POST("/resend", h.Resend)
	auth.POST("/verify-otp", h.VerifyOTP)
	auth.POST("/signout", h.Signout)

	e.GET("/api/templates", h.Templates)
	e.GET("/api/profile", h.Profile, middleware.RequireSession(sessions))

	projects := e.Group("/api/projects", middleware.RequireSession(sessions))
	projects.GET("", h.ListProjects)
	projects.POST("", h.CreateProject)
	projects.GET("/:id", h.GetProject)
	projects.PUT("/:id", h.UpdateProject)
	projects.DELETE("/:id", h.DeleteProject)
}
