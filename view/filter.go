// Package view derives read-only projections of the task set. Nothing here
// modifies its inputs; every function returns fresh slices.
package view

import (
	"errors"
	"strings"

	"github.com/Arham2306/Focus-Flow-Web-App/domain"
)

// Nav is the active navigation context.
type Nav string

const (
	NavAll       Nav = "all"
	NavMyDay     Nav = "my-day"
	NavImportant Nav = "important"
	NavPlanned   Nav = "planned"
	NavTasks     Nav = "tasks"
	NavCompleted Nav = "completed"
)

// ErrUnknownNav is returned by ParseNav for ids outside the navigation menu.
var ErrUnknownNav = errors.New("unknown navigation context")

// ParseNav validates a navigation id. Empty means all.
func ParseNav(s string) (Nav, error) {
	switch n := Nav(strings.ToLower(strings.TrimSpace(s))); n {
	case "":
		return NavAll, nil
	case NavAll, NavMyDay, NavImportant, NavPlanned, NavTasks, NavCompleted:
		return n, nil
	}
	return "", ErrUnknownNav
}

// Title is the header label shown for the navigation context.
func (n Nav) Title() string {
	switch n {
	case NavImportant:
		return "Important"
	case NavPlanned:
		return "Planned"
	case NavTasks:
		return "Tasks"
	case NavCompleted:
		return "Completed"
	default:
		return "My Day"
	}
}

// FilterByNav keeps the tasks visible under nav.
func FilterByNav(tasks []domain.Task, nav Nav) []domain.Task {
	var keep func(domain.Task) bool
	switch nav {
	case NavImportant:
		keep = func(t domain.Task) bool { return t.IsImportant }
	case NavCompleted:
		keep = func(t domain.Task) bool { return t.Status == domain.StatusCompleted }
	case NavPlanned:
		keep = func(t domain.Task) bool { return domain.IsPlanned(t.DueDate) }
	default:
		keep = func(domain.Task) bool { return true }
	}
	return filter(tasks, keep)
}

// Search keeps tasks whose title, description or category contains query,
// ignoring case. A blank query keeps everything.
func Search(tasks []domain.Task, query string) []domain.Task {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return filter(tasks, func(domain.Task) bool { return true })
	}
	return filter(tasks, func(t domain.Task) bool {
		return strings.Contains(strings.ToLower(t.Title), q) ||
			strings.Contains(strings.ToLower(t.Description), q) ||
			strings.Contains(strings.ToLower(t.Category), q)
	})
}

// GroupByColumn partitions tasks by column id, keeping input order inside
// each group.
func GroupByColumn(tasks []domain.Task) map[string][]domain.Task {
	out := make(map[string][]domain.Task)
	for _, t := range tasks {
		out[t.ColumnID] = append(out[t.ColumnID], t.Clone())
	}
	return out
}

func filter(tasks []domain.Task, keep func(domain.Task) bool) []domain.Task {
	out := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if keep(t) {
			out = append(out, t.Clone())
		}
	}
	return out
}
