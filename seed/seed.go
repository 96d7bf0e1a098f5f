// Package seed reads a starter board from YAML.
package seed

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Arham2306/Focus-Flow-Web-App/board"
	"github.com/Arham2306/Focus-Flow-Web-App/domain"
)

// YAMLColumn is a user column in the seed file.
type YAMLColumn struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
	Color string `yaml:"color,omitempty"`
	Sort  string `yaml:"sort,omitempty"`
}

// YAMLTask is a single task in the seed file.
type YAMLTask struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description,omitempty"`
	DueDate     string   `yaml:"due_date,omitempty"`
	Priority    string   `yaml:"priority,omitempty"`
	Category    string   `yaml:"category,omitempty"`
	Icon        string   `yaml:"icon,omitempty"`
	Column      string   `yaml:"column,omitempty"`
	Important   bool     `yaml:"important,omitempty"`
	Remind      bool     `yaml:"remind,omitempty"`
	Completed   bool     `yaml:"completed,omitempty"`
	Subtasks    []string `yaml:"subtasks,omitempty"`
}

// YAMLInput is the root of the seed file.
type YAMLInput struct {
	Columns []YAMLColumn `yaml:"columns"`
	Tasks   []YAMLTask   `yaml:"tasks"`
}

// Load reads and parses the seed file at path.
func Load(path string) (*board.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse builds a dataset from YAML. The three permanent columns are always
// present; user columns are placed before Completed in file order.
func Parse(data []byte) (*board.Dataset, error) {
	var input YAMLInput
	if err := yaml.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("YAML parse error: %w", err)
	}

	columns, err := buildColumns(input.Columns)
	if err != nil {
		return nil, err
	}
	known := make(map[string]bool, len(columns))
	for _, c := range columns {
		known[c.ID] = true
	}

	ds := &board.Dataset{Columns: columns, Tasks: make([]domain.Task, 0, len(input.Tasks))}
	for i, yt := range input.Tasks {
		t, err := buildTask(yt, known)
		if err != nil {
			return nil, fmt.Errorf("task %d: %w", i+1, err)
		}
		ds.Tasks = append(ds.Tasks, t)
	}
	return ds, nil
}

func buildColumns(in []YAMLColumn) ([]domain.Column, error) {
	defaults := domain.DefaultColumns()
	out := append([]domain.Column(nil), defaults[:2]...)
	seen := map[string]bool{}
	for _, c := range defaults {
		seen[c.ID] = true
	}
	user := 0
	for _, yc := range in {
		col, err := domain.NewColumn(yc.Title, user)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", yc.ID, err)
		}
		if id := strings.TrimSpace(yc.ID); id != "" {
			col.ID = id
		}
		if seen[col.ID] {
			return nil, fmt.Errorf("column %q: duplicate or reserved id", col.ID)
		}
		seen[col.ID] = true
		if yc.Color != "" {
			col.ColorClass = yc.Color
		}
		if col.SortBy, err = domain.ParseSortOption(yc.Sort); err != nil {
			return nil, fmt.Errorf("column %q: %w", col.ID, err)
		}
		out = append(out, col)
		user++
	}
	return append(out, defaults[2]), nil
}

func buildTask(yt YAMLTask, known map[string]bool) (domain.Task, error) {
	prio, err := domain.ParsePriority(yt.Priority)
	if err != nil {
		return domain.Task{}, err
	}
	column := strings.TrimSpace(yt.Column)
	if column != "" && !known[column] {
		return domain.Task{}, fmt.Errorf("unknown column %q", column)
	}
	fields := domain.TaskFields{
		Title:           yt.Title,
		Description:     yt.Description,
		DueDate:         yt.DueDate,
		Priority:        prio,
		Category:        yt.Category,
		CategoryIcon:    yt.Icon,
		ColumnID:        column,
		IsImportant:     yt.Important,
		HasNotification: yt.Remind,
	}
	if yt.Completed {
		fields.Status = domain.StatusCompleted
	}
	for _, s := range yt.Subtasks {
		if s = strings.TrimSpace(s); s != "" {
			fields.Subtasks = append(fields.Subtasks, domain.Subtask{Title: s})
		}
	}
	return domain.NewTaskFromFields(fields)
}
