package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "taskboard.com/taskboard/internal/data_models"
	"taskboard.com/taskboard/internal/http/validators"
)

func (h *Handler) ListTags(c echo.Context) error {
	tags, err := h.tagService.ListTags(c.Request().Context())
	if err != nil {
		return fail(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count": len(tags),
		"tags":  tags,
	})
}

// CreateTag answers 200 with the tag whether it was just created or
// already existed.
func (h *Handler) CreateTag(c echo.Context) error {
	var req dto.TagRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request payload")
	}

	tag, err := h.tagService.CreateTag(c.Request().Context(), req.Name)
	if err != nil {
		return fail(err)
	}

	return c.JSON(http.StatusOK, tag)
}

func (h *Handler) DeleteTag(c echo.Context) error {
	id, err := validators.PathID(c)
	if err != nil {
		return err
	}

	if err := h.tagService.DeleteTag(c.Request().Context(), id); err != nil {
		return fail(err)
	}

	return c.NoContent(http.StatusNoContent)
}
