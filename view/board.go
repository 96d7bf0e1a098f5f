package view

import (
	"time"

	"github.com/Arham2306/Focus-Flow-Web-App/domain"
)

// Query selects which part of the board to project.
type Query struct {
	Nav    Nav
	Search string
	Now    time.Time
}

// ColumnView is a column with its visible tasks in display order.
type ColumnView struct {
	Column domain.Column `json:"column"`
	Tasks  []domain.Task `json:"tasks"`
}

// BoardView is the kanban projection consumed by every board surface.
type BoardView struct {
	Title    string          `json:"title"`
	Nav      Nav             `json:"nav"`
	Columns  []ColumnView    `json:"columns"`
	Progress ProgressSummary `json:"progress"`
}

// Visible applies the navigation filter followed by the search filter.
func Visible(tasks []domain.Task, q Query) []domain.Task {
	return Search(FilterByNav(tasks, q.Nav), q.Search)
}

// Build projects tasks onto columns: filter, group, then sort each column by
// its own option. Column order is preserved.
func Build(tasks []domain.Task, columns []domain.Column, q Query) BoardView {
	nav := q.Nav
	if nav == "" {
		nav = NavAll
	}
	visible := Visible(tasks, q)
	groups := GroupByColumn(visible)

	out := BoardView{
		Title:    nav.Title(),
		Nav:      nav,
		Columns:  make([]ColumnView, 0, len(columns)),
		Progress: Progress(visible),
	}
	for _, col := range columns {
		out.Columns = append(out.Columns, ColumnView{
			Column: col,
			Tasks:  Sort(groups[col.ID], col.SortBy, q.Now),
		})
	}
	return out
}
