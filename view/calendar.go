package view

import (
	"slices"
	"time"

	"github.com/Arham2306/Focus-Flow-Web-App/domain"
)

// CalendarDay holds the tasks due on one date.
type CalendarDay struct {
	Date  string        `json:"date"`
	Tasks []domain.Task `json:"tasks"`
}

// Calendar groups tasks by the day their due date resolves to, in
// chronological order. Tasks without a resolvable date are left out.
func Calendar(tasks []domain.Task, now time.Time) []CalendarDay {
	byKey := make(map[string][]domain.Task)
	for _, t := range tasks {
		key, ok := domain.DueDateKey(t.DueDate, now)
		if !ok {
			continue
		}
		byKey[key] = append(byKey[key], t.Clone())
	}
	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	days := make([]CalendarDay, 0, len(keys))
	for _, k := range keys {
		days = append(days, CalendarDay{Date: k, Tasks: byKey[k]})
	}
	return days
}
