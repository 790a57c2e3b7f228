package validators

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "taskboard.com/taskboard/internal/data_models"
	apperrors "taskboard.com/taskboard/internal/errors"
)

// PathID returns the :id route parameter or a 400 when it is missing.
func PathID(c echo.Context) (string, error) {
	id := c.Param("id")
	if id == "" {
		return "", echo.NewHTTPError(apperrors.ErrIDRequired.StatusCode, apperrors.ErrIDRequired.Message)
	}
	return id, nil
}

func ValidateTaskStatusRequest(r *dto.TaskStatusRequest) error {
	if r.Status == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "status is required")
	}
	return nil
}
