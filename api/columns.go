package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Arham2306/Focus-Flow-Web-App/board"
	"github.com/Arham2306/Focus-Flow-Web-App/domain"
)

type columnRequest struct {
	Title string `json:"title"`
}

type sortRequest struct {
	SortBy domain.SortOption `json:"sortBy"`
}

type deleteColumnResponse struct {
	TasksRemoved int `json:"tasksRemoved"`
}

func listColumns(b *board.Board) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, b.Columns())
	}
}

func createColumn(b *board.Board) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req columnRequest
		if err := decodeBody(c, &req); err != nil {
			return badBody(c)
		}
		col, err := b.AddColumn(c.Request().Context(), req.Title)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusCreated, col)
	}
}

func deleteColumn(b *board.Board) echo.HandlerFunc {
	return func(c echo.Context) error {
		n, err := b.DeleteColumn(c.Request().Context(), c.Param("id"))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusOK, deleteColumnResponse{TasksRemoved: n})
	}
}

func sortColumn(b *board.Board) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req sortRequest
		if err := decodeBody(c, &req); err != nil {
			return badBody(c)
		}
		col, err := b.SetColumnSort(c.Request().Context(), c.Param("id"), req.SortBy)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusOK, col)
	}
}
