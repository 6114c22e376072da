package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	model "task-board.com/task-board/pkg/models"
)

func (h *Handler) Board(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"columns": h.taskService.Board(c.Request().Context()),
	})
}

func (h *Handler) GetFilters(c echo.Context) error {
	return c.JSON(http.StatusOK, h.taskService.Filters(c.Request().Context()))
}

// PatchFilters merges the body into the active filters; a key sent as null
// turns that filter off.
func (h *Handler) PatchFilters(c echo.Context) error {
	var patch model.FilterPatch
	if err := decodeBody(c, &patch); err != nil {
		return err
	}

	filters, err := h.taskService.SetFilters(c.Request().Context(), patch)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, filters)
}

func (h *Handler) GetSort(c echo.Context) error {
	return c.JSON(http.StatusOK, h.taskService.Sort(c.Request().Context()))
}

func (h *Handler) PutSort(c echo.Context) error {
	var sort model.TaskSort
	if err := decodeBody(c, &sort); err != nil {
		return err
	}

	ctx := c.Request().Context()
	if err := h.taskService.SetSort(ctx, sort); err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, h.taskService.Sort(ctx))
}

func (h *Handler) GetSnapshot(c echo.Context) error {
	return c.JSON(http.StatusOK, h.taskService.Snapshot(c.Request().Context()))
}

func (h *Handler) PutSnapshot(c echo.Context) error {
	var snapshot model.Snapshot
	if err := decodeBody(c, &snapshot); err != nil {
		return err
	}

	ctx := c.Request().Context()
	if err := h.taskService.Restore(ctx, snapshot); err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, h.taskService.Snapshot(ctx))
}
