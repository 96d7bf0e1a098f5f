package api

import (
	"net/http"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"

	"github.com/Arham2306/Focus-Flow-Web-App/board"
	"github.com/Arham2306/Focus-Flow-Web-App/domain"
	"github.com/Arham2306/Focus-Flow-Web-App/view"
)

// Broker wakes every open stream when the board changes. Wake-ups coalesce:
// a subscriber that is still writing sees one pending signal at most.
type Broker struct {
	mu   sync.Mutex
	subs map[chan struct{}]struct{}
}

func NewBroker() *Broker {
	return &Broker{subs: make(map[chan struct{}]struct{})}
}

func (b *Broker) subscribe() chan struct{} {
	ch := make(chan struct{}, 1)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

func (b *Broker) unsubscribe(ch chan struct{}) {
	b.mu.Lock()
	delete(b.subs, ch)
	b.mu.Unlock()
}

// Notify signals all subscribers. It never blocks and is safe to use as the
// board's change hook.
func (b *Broker) Notify() {
	b.mu.Lock()
	for ch := range b.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	b.mu.Unlock()
}

// Subscribers reports how many streams are open.
func (b *Broker) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

type streamSnapshot struct {
	Board  view.BoardView        `json:"board"`
	Toasts []domain.Notification `json:"toasts"`
	Unread int                   `json:"unread"`
}

func snapshot(b *board.Board, q view.Query) streamSnapshot {
	toasts := b.Toasts()
	if toasts == nil {
		toasts = []domain.Notification{}
	}
	return streamSnapshot{Board: b.View(q), Toasts: toasts, Unread: b.UnreadCount()}
}

// streamBoard pushes the board projection as server-sent events, once on
// connect and again after every change.
func streamBoard(b *board.Board, broker *Broker) echo.HandlerFunc {
	return func(c echo.Context) error {
		q, err := queryFrom(c)
		if err != nil {
			return c.String(http.StatusBadRequest, err.Error())
		}
		c.Response().Header().Set(echo.HeaderContentType, "text/event-stream")
		c.Response().Header().Set(echo.HeaderCacheControl, "no-cache")
		c.Response().Header().Set(echo.HeaderConnection, "keep-alive")
		c.Response().Header().Set("X-Accel-Buffering", "no")
		flusher, ok := c.Response().Writer.(http.Flusher)
		if !ok {
			return c.String(http.StatusInternalServerError, "stream unsupported")
		}
		ctx := c.Request().Context()
		ch := broker.subscribe()
		defer broker.unsubscribe(ch)
		c.Response().WriteHeader(http.StatusOK)
		for {
			data, err := sonic.Marshal(snapshot(b, q))
			if err != nil {
				c.Logger().Error(err)
				return err
			}
			if _, err := c.Response().Write([]byte("data: ")); err != nil {
				return nil
			}
			if _, err := c.Response().Write(data); err != nil {
				return nil
			}
			if _, err := c.Response().Write([]byte("\n\n")); err != nil {
				return nil
			}
			flusher.Flush()
			select {
			case <-ctx.Done():
				return nil
			case <-ch:
				continue
			}
		}
	}
}
