package domain

import (
	"strings"
)

// Ids of the three permanent columns.
const (
	ColumnToday     = "TODAY"
	ColumnUpcoming  = "UPCOMING"
	ColumnCompleted = "COMPLETED"
)

// IsSystemColumn reports whether id names one of the permanent columns.
func IsSystemColumn(id string) bool {
	switch id {
	case ColumnToday, ColumnUpcoming, ColumnCompleted:
		return true
	}
	return false
}

// SortOption selects the comparator used inside a column.
type SortOption string

const (
	SortCreation SortOption = "CREATION"
	SortPriority SortOption = "PRIORITY"
	SortDueDate  SortOption = "DUE_DATE"
	SortTitle    SortOption = "TITLE"
)

// ParseSortOption normalizes user input. An empty value yields CREATION.
func ParseSortOption(s string) (SortOption, error) {
	switch o := SortOption(strings.ToUpper(strings.TrimSpace(s))); o {
	case "":
		return SortCreation, nil
	case SortCreation, SortPriority, SortDueDate, SortTitle:
		return o, nil
	}
	return "", ErrInvalidSort
}

// Column is a vertical lane on the board.
type Column struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	ColorClass string     `json:"colorClass"`
	SortBy     SortOption `json:"sortBy"`
}

// ColumnPalette holds the colour classes handed out to user columns.
var ColumnPalette = []string{
	"bg-blue-400",
	"bg-green-400",
	"bg-purple-400",
	"bg-pink-400",
	"bg-orange-400",
	"bg-teal-400",
}

// NewColumn builds a user column. The colour cycles through ColumnPalette by
// the number of user columns that already exist.
func NewColumn(title string, userColumns int) (Column, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Column{}, ErrEmptyColumnTitle
	}
	if userColumns < 0 {
		userColumns = 0
	}
	return Column{
		ID:         "col-" + NewID(),
		Title:      title,
		ColorClass: ColumnPalette[userColumns%len(ColumnPalette)],
		SortBy:     SortCreation,
	}, nil
}

// DefaultColumns returns the permanent columns in display order.
func DefaultColumns() []Column {
	return []Column{
		{ID: ColumnToday, Title: "Today", ColorClass: "bg-primary", SortBy: SortCreation},
		{ID: ColumnUpcoming, Title: "Upcoming", ColorClass: "bg-accent", SortBy: SortCreation},
		{ID: ColumnCompleted, Title: "Completed", ColorClass: "bg-slate-300", SortBy: SortCreation},
	}
}
