package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Arham2306/Focus-Flow-Web-App/board"
	"github.com/Arham2306/Focus-Flow-Web-App/domain"
	"github.com/Arham2306/Focus-Flow-Web-App/notify"
)

type notificationsResponse struct {
	Entries []domain.Notification `json:"entries"`
	Groups  notify.Groups         `json:"groups"`
	Unread  int                   `json:"unread"`
}

type readAllResponse struct {
	Updated int `json:"updated"`
}

func listNotifications(b *board.Board) echo.HandlerFunc {
	return func(c echo.Context) error {
		entries := b.Notifications()
		if entries == nil {
			entries = []domain.Notification{}
		}
		setResultCount(c, len(entries))
		return c.JSON(http.StatusOK, notificationsResponse{
			Entries: entries,
			Groups:  b.GroupedNotifications(),
			Unread:  b.UnreadCount(),
		})
	}
}

func clearNotifications(b *board.Board) echo.HandlerFunc {
	return func(c echo.Context) error {
		b.ClearNotifications(c.Request().Context())
		return c.NoContent(http.StatusNoContent)
	}
}

func readAllNotifications(b *board.Board) echo.HandlerFunc {
	return func(c echo.Context) error {
		n := b.MarkAllNotificationsRead(c.Request().Context())
		return c.JSON(http.StatusOK, readAllResponse{Updated: n})
	}
}

func readNotification(b *board.Board) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := b.MarkNotificationRead(c.Request().Context(), c.Param("id")); err != nil {
			return fail(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func invokeAction(b *board.Board) echo.HandlerFunc {
	return func(c echo.Context) error {
		t, err := b.InvokeNotificationAction(c.Request().Context(), c.Param("id"))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusOK, t)
	}
}

func listToasts(b *board.Board) echo.HandlerFunc {
	return func(c echo.Context) error {
		toasts := b.Toasts()
		if toasts == nil {
			toasts = []domain.Notification{}
		}
		return c.JSON(http.StatusOK, toasts)
	}
}

func dismissToast(b *board.Board) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !b.DismissToast(c.Param("id")) {
			return fail(c, board.ErrNotificationNotFound)
		}
		return c.NoContent(http.StatusNoContent)
	}
}
