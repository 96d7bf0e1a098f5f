package domain

import (
	"strings"
	"time"
)

// Status is the completion state of a task.
type Status string

const (
	StatusTodo      Status = "TODO"
	StatusCompleted Status = "COMPLETED"
)

// Priority ranks how urgent a task is. The zero value behaves as MEDIUM.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// Rank orders priorities for sorting; missing or unknown values rank as MEDIUM.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityLow:
		return 1
	default:
		return 2
	}
}

// ParsePriority normalizes user input. An empty value yields MEDIUM.
func ParsePriority(s string) (Priority, error) {
	switch Priority(strings.ToUpper(strings.TrimSpace(s))) {
	case "", PriorityMedium:
		return PriorityMedium, nil
	case PriorityLow:
		return PriorityLow, nil
	case PriorityHigh:
		return PriorityHigh, nil
	}
	return "", ErrInvalidPriority
}

// Subtask is a checklist item nested under a task.
type Subtask struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	IsCompleted bool   `json:"isCompleted"`
}

// Task is a single card on the board.
type Task struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Status           Status     `json:"status"`
	ColumnID         string     `json:"columnId"`
	IsImportant      bool       `json:"isImportant"`
	DueDate          string     `json:"dueDate,omitempty"`
	Priority         Priority   `json:"priority,omitempty"`
	Category         string     `json:"category,omitempty"`
	CategoryIcon     string     `json:"categoryIcon,omitempty"`
	Description      string     `json:"description,omitempty"`
	Subtasks         []Subtask  `json:"subtasks,omitempty"`
	CompletedDate    *time.Time `json:"completedDate,omitempty"`
	PreviousColumnID string     `json:"previousColumnId,omitempty"`
	HasNotification  bool       `json:"hasNotification,omitempty"`
}

// IsCompleted reports whether the task status is COMPLETED.
func (t Task) IsCompleted() bool {
	return t.Status == StatusCompleted
}

// Clone returns a deep copy so callers never share subtasks or timestamps.
func (t Task) Clone() Task {
	out := t
	if t.Subtasks != nil {
		out.Subtasks = append([]Subtask(nil), t.Subtasks...)
	}
	if t.CompletedDate != nil {
		d := *t.CompletedDate
		out.CompletedDate = &d
	}
	return out
}

// CloneTasks deep copies a task slice.
func CloneTasks(tasks []Task) []Task {
	if tasks == nil {
		return nil
	}
	out := make([]Task, len(tasks))
	for i := range tasks {
		out[i] = tasks[i].Clone()
	}
	return out
}

// TaskFields carries the user editable part of a task. It is the input of
// NewTaskFromFields and of the Edit transition.
type TaskFields struct {
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	DueDate         string    `json:"dueDate,omitempty"`
	Priority        Priority  `json:"priority,omitempty"`
	Category        string    `json:"category,omitempty"`
	CategoryIcon    string    `json:"categoryIcon,omitempty"`
	Subtasks        []Subtask `json:"subtasks,omitempty"`
	ColumnID        string    `json:"columnId,omitempty"`
	Status          Status    `json:"status,omitempty"`
	IsImportant     bool      `json:"isImportant,omitempty"`
	HasNotification bool      `json:"hasNotification,omitempty"`
}

// Fields extracts the editable fields of the task.
func (t Task) Fields() TaskFields {
	c := t.Clone()
	return TaskFields{
		Title:           c.Title,
		Description:     c.Description,
		DueDate:         c.DueDate,
		Priority:        c.Priority,
		Category:        c.Category,
		CategoryIcon:    c.CategoryIcon,
		Subtasks:        c.Subtasks,
		ColumnID:        c.ColumnID,
		Status:          c.Status,
		IsImportant:     c.IsImportant,
		HasNotification: c.HasNotification,
	}
}

// Normalize trims and validates the fields in place.
func (f *TaskFields) Normalize() error {
	f.Title = strings.TrimSpace(f.Title)
	if f.Title == "" {
		return ErrEmptyTitle
	}
	p, err := ParsePriority(string(f.Priority))
	if err != nil {
		return err
	}
	f.Priority = p
	switch f.Status {
	case "", StatusTodo, StatusCompleted:
	default:
		return ErrInvalidStatus
	}
	f.DueDate = strings.TrimSpace(f.DueDate)
	for i := range f.Subtasks {
		if f.Subtasks[i].ID == "" {
			f.Subtasks[i].ID = NewSubtaskID()
		}
	}
	return nil
}
