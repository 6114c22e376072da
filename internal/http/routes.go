package http

import (
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	middleware "task-board.com/task-board/internal/http/middlewares"
)

func Register(e *echo.Echo, h *Handler, rateLimitPerMinute int) {
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(middleware.RateLimiter(rateLimitPerMinute, time.Minute))

	e.POST("/tasks", h.CreateTask)
	e.GET("/tasks", h.ListTasks)
	e.GET("/tasks/:id", h.GetTask)
	e.PATCH("/tasks/:id", h.UpdateTask)
	e.PUT("/tasks/:id/status", h.MoveTask)
	e.DELETE("/tasks/:id", h.DeleteTask)

	e.GET("/board", h.Board)
	e.GET("/filters", h.GetFilters)
	e.PATCH("/filters", h.PatchFilters)
	e.GET("/sort", h.GetSort)
	e.PUT("/sort", h.PutSort)
	e.GET("/snapshot", h.GetSnapshot)
	e.PUT("/snapshot", h.PutSnapshot)

	e.GET("/recipes", h.SearchRecipes)
}
