package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (h *Handler) SearchRecipes(c echo.Context) error {
	term := c.QueryParam("search")

	found, err := h.recipes.Search(c.Request().Context(), term)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count":   len(found),
		"recipes": found,
	})
}
