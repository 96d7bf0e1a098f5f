package domain

import "time"

// NotificationType drives how an alert is styled.
type NotificationType string

const (
	NotificationInfo    NotificationType = "INFO"
	NotificationSuccess NotificationType = "SUCCESS"
	NotificationWarning NotificationType = "WARNING"
)

// ActionUndoComplete reverts a completion through the transition engine.
const ActionUndoComplete = "undo-complete"

// NotificationAction is a button bound to a notification.
type NotificationAction struct {
	Label   string `json:"label"`
	Kind    string `json:"actionKind"`
	Payload string `json:"payload,omitempty"`
}

// Notification is an entry of the notification log.
type Notification struct {
	ID        string              `json:"id"`
	Title     string              `json:"title"`
	Message   string              `json:"message"`
	Type      NotificationType    `json:"type"`
	Timestamp time.Time           `json:"timestamp"`
	IsRead    bool                `json:"isRead"`
	Action    *NotificationAction `json:"action,omitempty"`
}

// Clone returns a copy that does not share the action.
func (n Notification) Clone() Notification {
	out := n
	if n.Action != nil {
		a := *n.Action
		out.Action = &a
	}
	return out
}
