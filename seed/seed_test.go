package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Arham2306/Focus-Flow-Web-App/domain"
)

const sample = `
columns:
  - id: col-errands
    title: Errands
    sort: priority
tasks:
  - title: Renew passport
    due_date: Due tomorrow
    priority: high
    subtasks: [photos, " ", form]
  - title: Post office
    column: col-errands
    important: true
  - title: Morning run
    completed: true
`

func TestParse(t *testing.T) {
	ds, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	ids := make([]string, len(ds.Columns))
	for i, c := range ds.Columns {
		ids[i] = c.ID
	}
	want := []string{domain.ColumnToday, domain.ColumnUpcoming, "col-errands", domain.ColumnCompleted}
	if len(ids) != len(want) {
		t.Fatalf("columns = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("columns = %v, want %v", ids, want)
		}
	}
	if ds.Columns[2].SortBy != domain.SortPriority || ds.Columns[2].ColorClass != domain.ColumnPalette[0] {
		t.Fatalf("unexpected user column %#v", ds.Columns[2])
	}

	if len(ds.Tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(ds.Tasks))
	}
	passport := ds.Tasks[0]
	if passport.ColumnID != domain.ColumnUpcoming || passport.Priority != domain.PriorityHigh || len(passport.Subtasks) != 2 {
		t.Fatalf("unexpected first task %#v", passport)
	}
	if ds.Tasks[1].ColumnID != "col-errands" || !ds.Tasks[1].IsImportant {
		t.Fatalf("unexpected second task %#v", ds.Tasks[1])
	}
	run := ds.Tasks[2]
	if run.Status != domain.StatusCompleted || run.ColumnID != domain.ColumnCompleted || run.CompletedDate == nil {
		t.Fatalf("completed seed task should be in the completed column, got %#v", run)
	}
}

func TestParseErrors(t *testing.T) {
	tests := map[string]string{
		"syntax":          "tasks: [",
		"empty title":     "tasks:\n  - title: ' '\n",
		"bad priority":    "tasks:\n  - title: x\n    priority: urgent\n",
		"unknown column":  "tasks:\n  - title: x\n    column: col-nope\n",
		"reserved column": "columns:\n  - id: TODAY\n    title: Mine\n",
		"bad sort":        "columns:\n  - title: Mine\n    sort: random\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(body)); err == nil {
				t.Fatalf("expected an error")
			}
		})
	}
}

func TestLoadReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(path, []byte(sample), 0o600); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	ds, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(ds.Tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(ds.Tasks))
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}
