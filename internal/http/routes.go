package http

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	middleware "taskboard.com/taskboard/internal/http/middlewares"
)

func Register(e *echo.Echo, h *Handler, limiter middleware.Limiter) {
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	e.Use(middleware.RateLimiter(limiter))

	e.GET("/healthz", h.Health)
	e.GET("/board", h.Board)

	e.GET("/tasks", h.ListTasks)
	e.POST("/tasks", h.CreateTask)
	e.GET("/tasks/:id", h.GetTask)
	e.PUT("/tasks/:id", h.UpdateTask)
	e.PATCH("/tasks/:id/status", h.UpdateTaskStatus)
	e.DELETE("/tasks/:id", h.DeleteTask)

	e.GET("/projects", h.ListProjects)
	e.POST("/projects", h.CreateProject)
	e.PUT("/projects/:id", h.UpdateProject)
	e.DELETE("/projects/:id", h.DeleteProject)

	e.GET("/tags", h.ListTags)
	e.POST("/tags", h.CreateTag)
	e.DELETE("/tags/:id", h.DeleteTag)
}
