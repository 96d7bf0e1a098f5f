package view

import (
	"errors"
	"testing"
	"time"

	"github.com/Arham2306/Focus-Flow-Web-App/domain"
)

var now = time.Date(2026, time.October, 15, 12, 0, 0, 0, time.UTC)

func ids(tasks []domain.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func equalIDs(t *testing.T, got []domain.Task, want ...string) {
	t.Helper()
	g := ids(got)
	if len(g) != len(want) {
		t.Fatalf("got %v, want %v", g, want)
	}
	for i := range want {
		if g[i] != want[i] {
			t.Fatalf("got %v, want %v", g, want)
		}
	}
}

func sample() []domain.Task {
	done := now
	return []domain.Task{
		{ID: "a", Title: "Pick up milk", Status: domain.StatusTodo, ColumnID: domain.ColumnToday, DueDate: "Due today", Category: "Errands"},
		{ID: "b", Title: "Call mom", Status: domain.StatusTodo, ColumnID: domain.ColumnUpcoming, IsImportant: true, DueDate: "No date"},
		{ID: "c", Title: "Ship release", Status: domain.StatusCompleted, ColumnID: domain.ColumnCompleted, CompletedDate: &done, Description: "tag and publish"},
		{ID: "d", Title: "Water plants", Status: domain.StatusTodo, ColumnID: domain.ColumnToday},
	}
}

func TestFilterByNav(t *testing.T) {
	tasks := sample()
	equalIDs(t, FilterByNav(tasks, NavImportant), "b")
	equalIDs(t, FilterByNav(tasks, NavCompleted), "c")
	equalIDs(t, FilterByNav(tasks, NavPlanned), "a")
	equalIDs(t, FilterByNav(tasks, NavAll), "a", "b", "c", "d")
	equalIDs(t, FilterByNav(tasks, NavMyDay), "a", "b", "c", "d")
	equalIDs(t, FilterByNav(tasks, NavTasks), "a", "b", "c", "d")
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	tasks := sample()
	out := FilterByNav(tasks, NavAll)
	out[0].Title = "changed"
	if tasks[0].Title != "Pick up milk" {
		t.Fatalf("filter shares storage with input")
	}
}

func TestSearch(t *testing.T) {
	tasks := []domain.Task{
		{ID: "1", Title: "Pick up milk"},
		{ID: "2", Title: "Call mom"},
	}
	equalIDs(t, Search(tasks, "milk"), "1")
	equalIDs(t, Search(tasks, "MILK"), "1")
	equalIDs(t, Search(tasks, "  "), "1", "2")
	equalIDs(t, Search(sample(), "errands"), "a")
	equalIDs(t, Search(sample(), "publish"), "c")
}

func TestParseNav(t *testing.T) {
	if n, err := ParseNav(""); err != nil || n != NavAll {
		t.Fatalf("unexpected default nav %v %v", n, err)
	}
	if _, err := ParseNav("inbox"); !errors.Is(err, ErrUnknownNav) {
		t.Fatalf("expected ErrUnknownNav, got %v", err)
	}
	if NavPlanned.Title() != "Planned" || NavAll.Title() != "My Day" {
		t.Fatalf("unexpected titles")
	}
}

func TestSortPriorityIsStable(t *testing.T) {
	tasks := []domain.Task{
		{ID: "1", Priority: domain.PriorityLow},
		{ID: "2", Priority: domain.PriorityHigh},
		{ID: "3"},
		{ID: "4", Priority: domain.PriorityHigh},
		{ID: "5", Priority: domain.PriorityMedium},
		{ID: "6", Priority: domain.PriorityLow},
	}
	equalIDs(t, Sort(tasks, domain.SortPriority, now), "2", "4", "3", "5", "1", "6")
}

func TestSortCreationByID(t *testing.T) {
	tasks := []domain.Task{{ID: "c"}, {ID: "a"}, {ID: "b"}}
	equalIDs(t, Sort(tasks, domain.SortCreation, now), "a", "b", "c")
	equalIDs(t, tasks, "c", "a", "b")
}

func TestSortTitle(t *testing.T) {
	tasks := []domain.Task{
		{ID: "1", Title: "banana"},
		{ID: "2", Title: "Apple"},
		{ID: "3", Title: "cherry"},
	}
	equalIDs(t, Sort(tasks, domain.SortTitle, now), "2", "1", "3")
}

func TestSortDueDateUnparseableLast(t *testing.T) {
	tasks := []domain.Task{
		{ID: "1", DueDate: "whenever"},
		{ID: "2", DueDate: "Due tomorrow"},
		{ID: "3", DueDate: "Due today"},
		{ID: "4"},
		{ID: "5", DueDate: "Due Oct 1"},
	}
	equalIDs(t, Sort(tasks, domain.SortDueDate, now), "5", "3", "2", "1", "4")
}

func TestDueDateDescriptorsWithTimes(t *testing.T) {
	tasks := []domain.Task{
		{ID: "1", DueDate: "whenever"},
		{ID: "2", DueDate: "Due tomorrow at 5pm"},
		{ID: "3", DueDate: "Due today 3pm"},
		{ID: "4", DueDate: "Oct 24, 26"},
	}
	equalIDs(t, Sort(tasks, domain.SortDueDate, now), "3", "2", "4", "1")

	days := Calendar(tasks, now)
	if len(days) != 3 {
		t.Fatalf("expected 3 days, got %#v", days)
	}
	if days[0].Date != "2026-10-15" || days[1].Date != "2026-10-16" || days[2].Date != "2026-10-24" {
		t.Fatalf("unexpected days %v %v %v", days[0].Date, days[1].Date, days[2].Date)
	}
}

func TestProgress(t *testing.T) {
	if p := Progress(nil); p.Percent != 0 || p.Total != 0 {
		t.Fatalf("unexpected empty progress %#v", p)
	}
	p := Progress(sample())
	if p.Completed != 1 || p.Total != 4 || p.Percent != 25 {
		t.Fatalf("unexpected progress %#v", p)
	}
	three := sample()[:3]
	if got := Progress(three).Percent; got != 33 {
		t.Fatalf("expected 33, got %d", got)
	}
	two := []domain.Task{{Status: domain.StatusCompleted}, {Status: domain.StatusCompleted}, {Status: domain.StatusTodo}}
	if got := Progress(two).Percent; got != 67 {
		t.Fatalf("expected 67, got %d", got)
	}
}

func TestQuest(t *testing.T) {
	done := now
	completed := domain.Task{Status: domain.StatusCompleted, CompletedDate: &done}
	open := domain.Task{Status: domain.StatusTodo}

	tests := []struct {
		name  string
		tasks []domain.Task
		want  int
	}{
		{name: "empty", tasks: nil, want: 0},
		{name: "allDone", tasks: []domain.Task{completed, completed}, want: 2},
		{name: "firstOpen", tasks: []domain.Task{open, completed}, want: 0},
		{name: "middle", tasks: []domain.Task{completed, open, open}, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Quest(tt.tasks)
			if q.ActiveIndex != tt.want {
				t.Fatalf("active index = %d, want %d", q.ActiveIndex, tt.want)
			}
			for i, n := range q.Nodes {
				var want NodeState
				switch {
				case i < tt.want:
					want = NodePassed
				case i == tt.want:
					want = NodeCurrent
				default:
					want = NodeLocked
				}
				if n.State != want {
					t.Fatalf("node %d state %s, want %s", i, n.State, want)
				}
			}
		})
	}
}

func TestQuestBiomes(t *testing.T) {
	tasks := make([]domain.Task, 6)
	q := Quest(tasks)
	want := []Biome{BiomeDawnValley, BiomeDawnValley, BiomeHighlands, BiomeHighlands, BiomeSummitPath, BiomeSummitPath}
	for i, n := range q.Nodes {
		if n.Biome != want[i] {
			t.Fatalf("node %d biome %s, want %s", i, n.Biome, want[i])
		}
	}
}

func TestCalendar(t *testing.T) {
	tasks := []domain.Task{
		{ID: "1", DueDate: "Due tomorrow"},
		{ID: "2", DueDate: "Due today"},
		{ID: "3", DueDate: "no date"},
		{ID: "4", DueDate: "10/16"},
	}
	days := Calendar(tasks, now)
	if len(days) != 2 {
		t.Fatalf("expected 2 days, got %#v", days)
	}
	if days[0].Date != "2026-10-15" || days[1].Date != "2026-10-16" {
		t.Fatalf("unexpected days %v %v", days[0].Date, days[1].Date)
	}
	equalIDs(t, days[1].Tasks, "1", "4")
}

func TestBuild(t *testing.T) {
	cols := domain.DefaultColumns()
	cols[0].SortBy = domain.SortTitle
	board := Build(sample(), cols, Query{Nav: NavAll, Now: now})
	if len(board.Columns) != 3 {
		t.Fatalf("expected 3 columns, got %d", len(board.Columns))
	}
	equalIDs(t, board.Columns[0].Tasks, "a", "d")
	equalIDs(t, board.Columns[1].Tasks, "b")
	equalIDs(t, board.Columns[2].Tasks, "c")
	if board.Progress.Percent != 25 || board.Title != "My Day" {
		t.Fatalf("unexpected header %#v", board)
	}

	filtered := Build(sample(), cols, Query{Nav: NavImportant, Search: "mom", Now: now})
	if len(filtered.Columns[0].Tasks) != 0 || len(filtered.Columns[1].Tasks) != 1 {
		t.Fatalf("unexpected filtered board %#v", filtered)
	}
}
