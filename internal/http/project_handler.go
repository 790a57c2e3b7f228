package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "taskboard.com/taskboard/internal/data_models"
	"taskboard.com/taskboard/internal/http/validators"
)

func (h *Handler) ListProjects(c echo.Context) error {
	projects, err := h.projectService.ListProjects(c.Request().Context())
	if err != nil {
		return fail(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count":    len(projects),
		"projects": projects,
	})
}

func (h *Handler) CreateProject(c echo.Context) error {
	var req dto.ProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request payload")
	}

	project, err := h.projectService.CreateProject(c.Request().Context(), req.Name)
	if err != nil {
		return fail(err)
	}

	return c.JSON(http.StatusCreated, project)
}

func (h *Handler) UpdateProject(c echo.Context) error {
	id, err := validators.PathID(c)
	if err != nil {
		return err
	}

	var req dto.ProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request payload")
	}

	project, err := h.projectService.UpdateProject(c.Request().Context(), id, req.Name)
	if err != nil {
		return fail(err)
	}

	return c.JSON(http.StatusOK, project)
}

func (h *Handler) DeleteProject(c echo.Context) error {
	id, err := validators.PathID(c)
	if err != nil {
		return err
	}

	if err := h.projectService.DeleteProject(c.Request().Context(), id); err != nil {
		return fail(err)
	}

	return c.NoContent(http.StatusNoContent)
}
