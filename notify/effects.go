package notify

import (
	"fmt"
	"time"

	"github.com/Arham2306/Focus-Flow-Web-App/domain"
	"github.com/Arham2306/Focus-Flow-Web-App/transition"
)

// FromEffect turns an engine effect into the notification the user sees.
// Completions carry an undo action bound to the task id.
func FromEffect(e transition.Effect, at time.Time) (domain.Notification, bool) {
	n := domain.Notification{Timestamp: at}
	switch e.Kind {
	case transition.TaskCompleted:
		n.Type = domain.NotificationSuccess
		n.Title = "Task completed"
		n.Message = fmt.Sprintf("%q marked as done.", e.TaskTitle)
		n.Action = &domain.NotificationAction{
			Label:   "Undo",
			Kind:    domain.ActionUndoComplete,
			Payload: e.TaskID,
		}
	case transition.TaskDeleted:
		n.Type = domain.NotificationWarning
		n.Title = "Task deleted"
		n.Message = fmt.Sprintf("%q was removed.", e.TaskTitle)
	case transition.ImportantSet:
		n.Type = domain.NotificationInfo
		n.Title = "Marked important"
		n.Message = fmt.Sprintf("%q was added to Important.", e.TaskTitle)
	case transition.Undone:
		n.Type = domain.NotificationInfo
		n.Title = "Undone"
		n.Message = fmt.Sprintf("%q moved back to your list.", e.TaskTitle)
	default:
		return domain.Notification{}, false
	}
	return n, true
}

// Groups partitions log entries for display.
type Groups struct {
	Today     []domain.Notification `json:"today"`
	Yesterday []domain.Notification `json:"yesterday"`
	Earlier   []domain.Notification `json:"earlier"`
}

// Group splits entries by local midnight boundaries of now. Entry order is
// kept inside each group.
func Group(entries []domain.Notification, now time.Time) Groups {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	yesterday := today.AddDate(0, 0, -1)

	g := Groups{
		Today:     []domain.Notification{},
		Yesterday: []domain.Notification{},
		Earlier:   []domain.Notification{},
	}
	for _, n := range entries {
		ts := n.Timestamp.In(now.Location())
		switch {
		case !ts.Before(today):
			g.Today = append(g.Today, n.Clone())
		case !ts.Before(yesterday):
			g.Yesterday = append(g.Yesterday, n.Clone())
		default:
			g.Earlier = append(g.Earlier, n.Clone())
		}
	}
	return g
}
