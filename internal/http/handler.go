package http

import (
	"io"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	dto "task-board.com/task-board/internal/data_models"
	apperrors "task-board.com/task-board/internal/errors"
	"task-board.com/task-board/internal/http/validators"
	"task-board.com/task-board/internal/recipes"
	"task-board.com/task-board/internal/services"
	model "task-board.com/task-board/pkg/models"
)

const maxBodyBytes = 1 << 20

type Handler struct {
	taskService *services.TaskService
	recipes     recipes.RecipeSearcher
}

func NewHandler(taskService *services.TaskService, recipeSearcher recipes.RecipeSearcher) *Handler {
	return &Handler{
		taskService: taskService,
		recipes:     recipeSearcher,
	}
}

func (h *Handler) CreateTask(c echo.Context) error {
	var req dto.CreateTaskRequest
	if err := decodeBody(c, &req); err != nil {
		return err
	}
	if err := validators.ValidateCreateTaskRequest(&req); err != nil {
		return err
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), req.ToInput())
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, task)
}

func (h *Handler) GetTask(c echo.Context) error {
	task, err := h.taskService.GetTask(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) ListTasks(c echo.Context) error {
	ctx := c.Request().Context()

	status, err := validators.ParseStatusQuery(c.QueryParam("status"))
	if err != nil {
		return err
	}

	var tasks []model.Task
	if status == "" {
		tasks = h.taskService.ListTasks(ctx)
	} else if tasks, err = h.taskService.ListTasksByStatus(ctx, status); err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.TaskListResponse{
		Count:   len(tasks),
		Tasks:   tasks,
		Filters: h.taskService.Filters(ctx),
		Sort:    h.taskService.Sort(ctx),
	})
}

func (h *Handler) UpdateTask(c echo.Context) error {
	var req dto.UpdateTaskRequest
	if err := decodeBody(c, &req); err != nil {
		return err
	}

	task, err := h.taskService.UpdateTask(c.Request().Context(), c.Param("id"), req.ToPatch())
	if err != nil {
		return toHTTPError(err)
	}
	if task == nil {
		return c.NoContent(http.StatusNoContent)
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) MoveTask(c echo.Context) error {
	var req dto.UpdateStatusRequest
	if err := decodeBody(c, &req); err != nil {
		return err
	}
	if err := validators.ValidateUpdateStatusRequest(&req); err != nil {
		return err
	}

	task, err := h.taskService.MoveTask(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return toHTTPError(err)
	}
	if task == nil {
		return c.NoContent(http.StatusNoContent)
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) DeleteTask(c echo.Context) error {
	if err := h.taskService.DeleteTask(c.Request().Context(), c.Param("id")); err != nil {
		return toHTTPError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// decodeBody reads a bounded JSON body with sonic. A missing body decodes to
// the zero value.
func decodeBody(c echo.Context, v interface{}) error {
	body := io.LimitReader(c.Request().Body, maxBodyBytes)
	if err := sonic.ConfigStd.NewDecoder(body).Decode(v); err != nil && err != io.EOF {
		return toHTTPError(apperrors.ErrInvalidJSON)
	}
	return nil
}

func toHTTPError(err error) error {
	code := apperrors.StatusCode(err)
	if code >= http.StatusInternalServerError {
		log.WithError(err).Error("request failed")
	}
	return echo.NewHTTPError(code, apperrors.PublicMessage(err))
}
