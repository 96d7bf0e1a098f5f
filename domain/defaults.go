package domain

import "time"

// DefaultTasks returns the sample dataset used when nothing has been saved
// yet or the saved state is unreadable.
func DefaultTasks(at time.Time) []Task {
	done := at
	return []Task{
		{
			ID:           "1",
			Title:        "Project brainstorming with the UI team",
			Status:       StatusTodo,
			ColumnID:     ColumnToday,
			DueDate:      DefaultDueDate,
			CategoryIcon: "event",
			Priority:     PriorityHigh,
		},
		{
			ID:           "2",
			Title:        "Send weekly design report",
			Status:       StatusTodo,
			IsImportant:  true,
			ColumnID:     ColumnToday,
			Category:     "Work",
			CategoryIcon: "work",
			Priority:     PriorityMedium,
		},
		{
			ID:              "3",
			Title:           "Pick up groceries for dinner",
			Status:          StatusTodo,
			ColumnID:        ColumnUpcoming,
			Category:        "Personal",
			CategoryIcon:    "shopping_cart",
			HasNotification: true,
			Priority:        PriorityLow,
		},
		{
			ID:            "4",
			Title:         "Morning meditation",
			Status:        StatusCompleted,
			ColumnID:      ColumnCompleted,
			Category:      "Completed",
			CategoryIcon:  "check",
			Priority:      PriorityMedium,
			CompletedDate: &done,
		},
	}
}
