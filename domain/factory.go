package domain

import "time"

const (
	iconDefault  = "event"
	iconUpcoming = "calendar_month"
)

var now = time.Now

// NewTaskFromTitle creates a task from quick-add input.
func NewTaskFromTitle(title, dueDate string, notify bool) (Task, error) {
	return newTask(TaskFields{Title: title, DueDate: dueDate, HasNotification: notify})
}

// NewTaskFromFields creates a task from a structured description, such as
// the output of the text parser or a create request.
func NewTaskFromFields(fields TaskFields) (Task, error) {
	fields.Subtasks = append([]Subtask(nil), fields.Subtasks...)
	return newTask(fields)
}

func newTask(f TaskFields) (Task, error) {
	if err := f.Normalize(); err != nil {
		return Task{}, err
	}
	if f.DueDate == "" {
		f.DueDate = DefaultDueDate
	}

	target := ClassifyDueDate(f.DueDate)
	icon := f.CategoryIcon
	if icon == "" {
		icon = iconDefault
	}
	if target == ColumnUpcoming {
		icon = iconUpcoming
	}

	t := Task{
		ID:              NewID(),
		Title:           f.Title,
		Status:          StatusTodo,
		ColumnID:        target,
		IsImportant:     f.IsImportant,
		DueDate:         f.DueDate,
		Priority:        f.Priority,
		Category:        f.Category,
		CategoryIcon:    icon,
		Description:     f.Description,
		Subtasks:        f.Subtasks,
		HasNotification: f.HasNotification,
	}
	if f.ColumnID != "" {
		t.ColumnID = f.ColumnID
	}
	if len(t.Subtasks) == 0 {
		t.Subtasks = nil
	}

	// A task born completed keeps the column/status coupling.
	if f.Status == StatusCompleted || t.ColumnID == ColumnCompleted {
		done := now()
		t.Status = StatusCompleted
		t.CompletedDate = &done
		if t.ColumnID != ColumnCompleted {
			t.PreviousColumnID = t.ColumnID
		}
		t.ColumnID = ColumnCompleted
	}
	return t, nil
}
