package validators

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	dto "task-board.com/task-board/internal/data_models"
	"task-board.com/task-board/pkg/constants"
)

func ValidateCreateTaskRequest(r *dto.CreateTaskRequest) error {
	if strings.TrimSpace(r.Title) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}
	if r.Status != "" && !r.Status.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "status must be one of To Do, In Progress, Done")
	}
	if r.Priority != "" && !r.Priority.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "priority must be one of Low, Medium, High")
	}
	return nil
}

func ValidateUpdateStatusRequest(r *dto.UpdateStatusRequest) error {
	if r.Status == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "status is required")
	}
	if !r.Status.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "status must be one of To Do, In Progress, Done")
	}
	return nil
}

// ParseStatusQuery reads an optional ?status= column filter.
func ParseStatusQuery(raw string) (constants.TaskStatus, error) {
	status := constants.TaskStatus(raw)
	if status != "" && !status.Valid() {
		return "", echo.NewHTTPError(http.StatusBadRequest, "status must be one of To Do, In Progress, Done")
	}
	return status, nil
}
