package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Arham2306/Focus-Flow-Web-App/board"
	"github.com/Arham2306/Focus-Flow-Web-App/domain"
	"github.com/Arham2306/Focus-Flow-Web-App/view"
)

type quickAddRequest struct {
	Input   string `json:"input"`
	DueDate string `json:"dueDate,omitempty"`
	Remind  bool   `json:"remind,omitempty"`
}

type quickAddResponse struct {
	Task   domain.Task `json:"task"`
	Parsed bool        `json:"parsed"`
}

type moveRequest struct {
	ColumnID  string `json:"columnId"`
	Reordered bool   `json:"reordered,omitempty"`
}

func getBoard(b *board.Board) echo.HandlerFunc {
	return func(c echo.Context) error {
		q, err := queryFrom(c)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusOK, b.View(q))
	}
}

func getAdventure(b *board.Board) echo.HandlerFunc {
	return func(c echo.Context) error {
		q, err := queryFrom(c)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusOK, b.Adventure(q))
	}
}

func getCalendar(b *board.Board) echo.HandlerFunc {
	return func(c echo.Context) error {
		q, err := queryFrom(c)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusOK, b.Calendar(q))
	}
}

func getProgress(b *board.Board) echo.HandlerFunc {
	return func(c echo.Context) error {
		q, err := queryFrom(c)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusOK, b.Progress(q))
	}
}

func listTasks(b *board.Board) echo.HandlerFunc {
	return func(c echo.Context) error {
		q, err := queryFrom(c)
		if err != nil {
			return fail(c, err)
		}
		tasks := view.Visible(b.Tasks(), q)
		setResultCount(c, len(tasks))
		return c.JSON(http.StatusOK, tasks)
	}
}

func createTask(b *board.Board) echo.HandlerFunc {
	return func(c echo.Context) error {
		var fields domain.TaskFields
		if err := decodeBody(c, &fields); err != nil {
			return badBody(c)
		}
		t, err := b.AddTaskFromFields(c.Request().Context(), fields)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusCreated, t)
	}
}

func quickAdd(b *board.Board) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req quickAddRequest
		if err := decodeBody(c, &req); err != nil {
			return badBody(c)
		}
		t, parsed, err := b.QuickAdd(c.Request().Context(), req.Input, req.DueDate, req.Remind)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusCreated, quickAddResponse{Task: t, Parsed: parsed})
	}
}

func getTask(b *board.Board) echo.HandlerFunc {
	return func(c echo.Context) error {
		t, ok := b.Task(c.Param("id"))
		if !ok {
			return fail(c, board.ErrTaskNotFound)
		}
		return c.JSON(http.StatusOK, t)
	}
}

func updateTask(b *board.Board) echo.HandlerFunc {
	return func(c echo.Context) error {
		var fields domain.TaskFields
		if err := decodeBody(c, &fields); err != nil {
			return badBody(c)
		}
		t, err := b.UpdateTask(c.Request().Context(), c.Param("id"), fields)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusOK, t)
	}
}

func deleteTask(b *board.Board) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := b.DeleteTask(c.Request().Context(), c.Param("id")); err != nil {
			return fail(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func moveTask(b *board.Board) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req moveRequest
		if err := decodeBody(c, &req); err != nil || req.ColumnID == "" {
			return badBody(c)
		}
		t, err := b.MoveTask(c.Request().Context(), c.Param("id"), req.ColumnID, req.Reordered)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusOK, t)
	}
}

func toggleStatus(b *board.Board) echo.HandlerFunc {
	return func(c echo.Context) error {
		t, err := b.ToggleStatus(c.Request().Context(), c.Param("id"))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusOK, t)
	}
}

func toggleImportant(b *board.Board) echo.HandlerFunc {
	return func(c echo.Context) error {
		t, err := b.ToggleImportant(c.Request().Context(), c.Param("id"))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusOK, t)
	}
}
