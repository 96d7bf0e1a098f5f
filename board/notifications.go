package board

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/Arham2306/Focus-Flow-Web-App/domain"
	"github.com/Arham2306/Focus-Flow-Web-App/events"
	"github.com/Arham2306/Focus-Flow-Web-App/notify"
	"github.com/Arham2306/Focus-Flow-Web-App/transition"
)

// InvokeNotificationAction runs the action bound to a notification. The
// notification is marked read and its toast dismissed even when the task it
// refers to no longer exists.
func (b *Board) InvokeNotificationAction(ctx context.Context, id string) (task domain.Task, err error) {
	ctx, span := b.startSpan(ctx, "invoke_notification_action", attribute.String("notification.id", id))
	defer func() { endSpan(span, err) }()

	n, ok := b.center.Get(id)
	if !ok {
		return domain.Task{}, ErrNotificationNotFound
	}
	if n.Action == nil {
		return domain.Task{}, ErrNoAction
	}
	if n.Action.Kind != domain.ActionUndoComplete {
		return domain.Task{}, ErrUnsupportedAction
	}
	defer func() {
		b.center.MarkRead(id)
		b.center.Dismiss(id)
	}()

	span.SetAttributes(attribute.String("task.id", n.Action.Payload))
	return b.applyTask(ctx, n.Action.Payload, transition.UndoComplete{NotificationID: id}, nil)
}

// MarkNotificationRead flags one log entry as read.
func (b *Board) MarkNotificationRead(_ context.Context, id string) error {
	if !b.center.MarkRead(id) {
		return ErrNotificationNotFound
	}
	return nil
}

// MarkAllNotificationsRead flags the whole log as read.
func (b *Board) MarkAllNotificationsRead(_ context.Context) int {
	return b.center.MarkAllRead()
}

// ClearNotifications empties the log.
func (b *Board) ClearNotifications(ctx context.Context) {
	b.center.Clear()
	b.publish(ctx, "notification", "", events.NotificationsChanged, nil)
}

// DismissToast removes a toast before its timer runs out.
func (b *Board) DismissToast(id string) bool {
	return b.center.Dismiss(id)
}

// Notifications returns the log, newest first.
func (b *Board) Notifications() []domain.Notification {
	return b.center.Entries()
}

// GroupedNotifications splits the log into Today, Yesterday and Earlier.
func (b *Board) GroupedNotifications() notify.Groups {
	return notify.Group(b.center.Entries(), b.now())
}

// Toasts returns the toasts currently on screen.
func (b *Board) Toasts() []domain.Notification {
	return b.center.Toasts()
}

// UnreadCount reports how many notifications are unread.
func (b *Board) UnreadCount() int {
	return b.center.UnreadCount()
}
