// Package api exposes the board over HTTP.
package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo-contrib/pprof"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"github.com/Arham2306/Focus-Flow-Web-App/board"
	"github.com/Arham2306/Focus-Flow-Web-App/domain"
	"github.com/Arham2306/Focus-Flow-Web-App/view"
)

const maxBodySize = 1 << 20

// Options tunes Register.
type Options struct {
	// Pprof mounts the runtime profiler under /debug/pprof.
	Pprof bool
	// Deduper enables Idempotency-Key handling on mutations.
	Deduper Deduper
}

// Register wires up all API routes on the provided Echo instance. broker is
// the fan-out the board's change hook feeds.
func Register(e *echo.Echo, b *board.Board, broker *Broker, logger *log.Logger, opts Options) {
	if logger == nil {
		logger = log.StandardLogger()
	}
	e.JSONSerializer = sonicSerializer{}
	e.Use(GzipRequestMiddleware())

	g := e.Group("/api", RequestMetrics(logger), IdempotencyMiddleware(opts.Deduper))
	g.GET("/board", getBoard(b))
	g.GET("/adventure", getAdventure(b))
	g.GET("/calendar", getCalendar(b))
	g.GET("/progress", getProgress(b))

	g.GET("/tasks", listTasks(b))
	g.POST("/tasks", createTask(b))
	g.POST("/tasks/quick", quickAdd(b))
	g.GET("/tasks/:id", getTask(b))
	g.PUT("/tasks/:id", updateTask(b))
	g.DELETE("/tasks/:id", deleteTask(b))
	g.POST("/tasks/:id/move", moveTask(b))
	g.POST("/tasks/:id/toggle-status", toggleStatus(b))
	g.POST("/tasks/:id/toggle-important", toggleImportant(b))

	g.GET("/columns", listColumns(b))
	g.POST("/columns", createColumn(b))
	g.DELETE("/columns/:id", deleteColumn(b))
	g.PUT("/columns/:id/sort", sortColumn(b))

	g.GET("/notifications", listNotifications(b))
	g.DELETE("/notifications", clearNotifications(b))
	g.POST("/notifications/read-all", readAllNotifications(b))
	g.POST("/notifications/:id/read", readNotification(b))
	g.POST("/notifications/:id/action", invokeAction(b))
	g.GET("/toasts", listToasts(b))
	g.DELETE("/toasts/:id", dismissToast(b))

	e.GET("/api/stream", streamBoard(b, broker))
	e.GET("/healthz", healthz())

	if opts.Pprof {
		pprof.Register(e)
	}
}

func healthz() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}
}

// decodeBody reads a bounded JSON body and rejects unknown fields.
func decodeBody(c echo.Context, v any) error {
	lr := io.LimitReader(c.Request().Body, maxBodySize)
	dec := sonic.ConfigStd.NewDecoder(lr)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func queryFrom(c echo.Context) (view.Query, error) {
	nav, err := view.ParseNav(c.QueryParam("nav"))
	if err != nil {
		return view.Query{}, err
	}
	return view.Query{Nav: nav, Search: c.QueryParam("q")}, nil
}

// statusFor maps board and domain errors onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, board.ErrTaskNotFound),
		errors.Is(err, board.ErrColumnNotFound),
		errors.Is(err, board.ErrNotificationNotFound):
		return http.StatusNotFound
	case errors.Is(err, board.ErrSystemColumn):
		return http.StatusConflict
	case errors.Is(err, board.ErrNoAction), errors.Is(err, board.ErrUnsupportedAction):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrEmptyTitle),
		errors.Is(err, domain.ErrEmptyColumnTitle),
		errors.Is(err, domain.ErrInvalidPriority),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrInvalidSort),
		errors.Is(err, view.ErrUnknownNav):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func fail(c echo.Context, err error) error {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		c.Logger().Error(err)
	}
	setErrorStage(c, "board")
	return c.String(status, err.Error())
}

func badBody(c echo.Context) error {
	setErrorStage(c, "decode_body")
	return c.String(http.StatusBadRequest, "invalid body")
}

type sonicSerializer struct{}

func (sonicSerializer) Serialize(c echo.Context, i any, indent string) error {
	enc := sonic.ConfigStd.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

func (sonicSerializer) Deserialize(c echo.Context, i any) error {
	if err := sonic.ConfigStd.NewDecoder(c.Request().Body).Decode(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body").SetInternal(err)
	}
	return nil
}
