package http

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	dto "taskboard.com/taskboard/internal/data_models"
	apperrors "taskboard.com/taskboard/internal/errors"
	"taskboard.com/taskboard/internal/http/validators"
	"taskboard.com/taskboard/internal/query"
	"taskboard.com/taskboard/internal/services"
)

type Handler struct {
	taskService    *services.TaskService
	projectService *services.ProjectService
	tagService     *services.TagService
	boardService   *services.BoardService
}

func NewHandler(
	taskService *services.TaskService,
	projectService *services.ProjectService,
	tagService *services.TagService,
	boardService *services.BoardService,
) *Handler {
	return &Handler{
		taskService:    taskService,
		projectService: projectService,
		tagService:     tagService,
		boardService:   boardService,
	}
}

// fail turns a service error into the HTTP error echo renders. Store
// failures are logged with their cause and answered with a generic message.
func fail(err error) error {
	status := apperrors.StatusCode(err)
	if status >= http.StatusInternalServerError {
		log.Printf("request failed: %v", err)
	}
	return echo.NewHTTPError(status, apperrors.Message(err))
}

// listParams reads the filter and sort query parameters. Binding errors are
// ignored on purpose: a bad parameter just falls back to its default.
func listParams(c echo.Context) query.Params {
	var params query.Params
	_ = (&echo.DefaultBinder{}).BindQueryParams(c, &params)
	return params
}

func taskInput(req *dto.TaskRequest) services.TaskInput {
	return services.TaskInput{
		Title:     req.Title,
		Notes:     req.Notes,
		Status:    req.Status,
		Priority:  req.Priority,
		DueDate:   req.DueDate,
		ProjectID: req.ProjectID,
		TagIDs:    req.TagIDs,
	}
}

func (h *Handler) CreateTask(c echo.Context) error {
	var req dto.TaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request payload")
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), taskInput(&req))
	if err != nil {
		return fail(err)
	}

	return c.JSON(http.StatusCreated, task)
}

func (h *Handler) UpdateTask(c echo.Context) error {
	id, err := validators.PathID(c)
	if err != nil {
		return err
	}

	var req dto.TaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request payload")
	}

	task, err := h.taskService.UpdateTask(c.Request().Context(), id, taskInput(&req))
	if err != nil {
		return fail(err)
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) UpdateTaskStatus(c echo.Context) error {
	id, err := validators.PathID(c)
	if err != nil {
		return err
	}

	var req dto.TaskStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request payload")
	}
	if err := validators.ValidateTaskStatusRequest(&req); err != nil {
		return err
	}

	task, err := h.taskService.UpdateTaskStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return fail(err)
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) DeleteTask(c echo.Context) error {
	id, err := validators.PathID(c)
	if err != nil {
		return err
	}

	if err := h.taskService.DeleteTask(c.Request().Context(), id); err != nil {
		return fail(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) GetTask(c echo.Context) error {
	id, err := validators.PathID(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.GetTask(c.Request().Context(), id)
	if err != nil {
		return fail(err)
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) ListTasks(c echo.Context) error {
	tasks, err := h.taskService.ListTasks(c.Request().Context(), listParams(c))
	if err != nil {
		return fail(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count": len(tasks),
		"tasks": tasks,
	})
}

func (h *Handler) Board(c echo.Context) error {
	board, err := h.boardService.Load(c.Request().Context(), listParams(c))
	if err != nil {
		return fail(err)
	}

	return c.JSON(http.StatusOK, board)
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
