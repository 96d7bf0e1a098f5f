package transition

import (
	"testing"
	"time"

	"github.com/Arham2306/Focus-Flow-Web-App/domain"
)

var testNow = time.Date(2026, time.October, 15, 10, 0, 0, 0, time.UTC)

func ctx() Context {
	return Context{Now: testNow}
}

func todo(column string) *domain.Task {
	return &domain.Task{ID: "t1", Title: "Task", Status: domain.StatusTodo, ColumnID: column, DueDate: "Due today"}
}

func kinds(effects []Effect) []EffectKind {
	out := make([]EffectKind, len(effects))
	for i, e := range effects {
		out[i] = e.Kind
	}
	return out
}

func assertCompletionInvariant(t *testing.T, task domain.Task) {
	t.Helper()
	if task.Status == domain.StatusCompleted && task.CompletedDate == nil {
		t.Fatalf("completed task without completedDate: %#v", task)
	}
}

func TestApplyNilTaskIsNoop(t *testing.T) {
	res := Apply(nil, ToggleStatus{}, ctx())
	if res.Changed || res.Deleted || len(res.Effects) != 0 {
		t.Fatalf("expected empty result, got %#v", res)
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	in := todo(domain.ColumnToday)
	_ = Apply(in, ToggleStatus{}, ctx())
	if in.Status != domain.StatusTodo || in.ColumnID != domain.ColumnToday || in.CompletedDate != nil {
		t.Fatalf("input mutated: %#v", in)
	}
}

func TestMoveToCompletedColumn(t *testing.T) {
	res := Apply(todo(domain.ColumnUpcoming), MoveToColumn{Destination: domain.ColumnCompleted}, ctx())
	task := res.Task
	if task.Status != domain.StatusCompleted || task.ColumnID != domain.ColumnCompleted {
		t.Fatalf("unexpected task %#v", task)
	}
	if task.PreviousColumnID != domain.ColumnUpcoming {
		t.Fatalf("expected previous column UPCOMING, got %q", task.PreviousColumnID)
	}
	if task.CompletedDate == nil || !task.CompletedDate.Equal(testNow) {
		t.Fatalf("expected completedDate now, got %v", task.CompletedDate)
	}
	if got := kinds(res.Effects); len(got) != 1 || got[0] != TaskCompleted {
		t.Fatalf("expected TaskCompleted, got %v", got)
	}
}

func TestMoveOutOfCompletedClearsHistory(t *testing.T) {
	done := testNow.Add(-time.Hour)
	in := &domain.Task{ID: "t1", Title: "x", Status: domain.StatusCompleted, ColumnID: domain.ColumnCompleted, CompletedDate: &done, PreviousColumnID: domain.ColumnToday}
	res := Apply(in, MoveToColumn{Destination: "col-1"}, ctx())
	if res.Task.Status != domain.StatusTodo || res.Task.CompletedDate != nil || res.Task.PreviousColumnID != "" {
		t.Fatalf("unexpected task %#v", res.Task)
	}
	if res.Task.ColumnID != "col-1" {
		t.Fatalf("expected destination column, got %s", res.Task.ColumnID)
	}
	if len(res.Effects) != 0 {
		t.Fatalf("expected no effects, got %v", kinds(res.Effects))
	}
}

func TestMoveSameColumnWithoutReorderIsNoop(t *testing.T) {
	res := Apply(todo(domain.ColumnToday), MoveToColumn{Destination: domain.ColumnToday}, ctx())
	if res.Changed || len(res.Effects) != 0 {
		t.Fatalf("expected no-op, got %#v", res)
	}
}

func TestMoveReorderInsideCompletedKeepsDateAndSkipsEffect(t *testing.T) {
	done := testNow.Add(-time.Hour)
	in := &domain.Task{ID: "t1", Title: "x", Status: domain.StatusCompleted, ColumnID: domain.ColumnCompleted, CompletedDate: &done, PreviousColumnID: domain.ColumnToday}
	res := Apply(in, MoveToColumn{Destination: domain.ColumnCompleted, Reordered: true}, ctx())
	if !res.Task.CompletedDate.Equal(done) {
		t.Fatalf("completedDate overwritten: %v", res.Task.CompletedDate)
	}
	if res.Task.PreviousColumnID != domain.ColumnToday {
		t.Fatalf("previous column lost: %q", res.Task.PreviousColumnID)
	}
	if len(res.Effects) != 0 {
		t.Fatalf("expected no effects, got %v", kinds(res.Effects))
	}
}

func TestToggleStatusRoundTrip(t *testing.T) {
	for _, column := range []string{domain.ColumnToday, domain.ColumnUpcoming, "col-1"} {
		orig := todo(column)
		first := Apply(orig, ToggleStatus{}, ctx())
		assertCompletionInvariant(t, first.Task)
		if first.Task.ColumnID != domain.ColumnCompleted || first.Task.PreviousColumnID != column {
			t.Fatalf("unexpected completion: %#v", first.Task)
		}
		if got := kinds(first.Effects); len(got) != 1 || got[0] != TaskCompleted {
			t.Fatalf("expected TaskCompleted, got %v", got)
		}
		second := Apply(&first.Task, ToggleStatus{}, ctx())
		if len(second.Effects) != 0 {
			t.Fatalf("revert must be silent, got %v", kinds(second.Effects))
		}
		got := second.Task
		if got.ColumnID != orig.ColumnID || got.Status != orig.Status || got.PreviousColumnID != orig.PreviousColumnID {
			t.Fatalf("round trip mismatch for %s: %#v", column, got)
		}
		if got.CompletedDate != nil {
			t.Fatalf("completedDate not cleared")
		}
	}
}

func TestToggleStatusRevertFallsBackToDefault(t *testing.T) {
	done := testNow
	in := &domain.Task{ID: "t1", Title: "x", Status: domain.StatusCompleted, ColumnID: domain.ColumnCompleted, CompletedDate: &done}
	res := Apply(in, ToggleStatus{}, ctx())
	if res.Task.ColumnID != domain.ColumnToday {
		t.Fatalf("expected TODAY fallback, got %s", res.Task.ColumnID)
	}
}

func TestToggleStatusRevertSkipsDeletedColumn(t *testing.T) {
	done := testNow
	in := &domain.Task{ID: "t1", Title: "x", Status: domain.StatusCompleted, ColumnID: domain.ColumnCompleted, CompletedDate: &done, PreviousColumnID: "col-gone"}
	c := ctx()
	c.ColumnExists = func(id string) bool { return id != "col-gone" }
	res := Apply(in, ToggleStatus{}, c)
	if res.Task.ColumnID != domain.ColumnToday {
		t.Fatalf("expected TODAY fallback, got %s", res.Task.ColumnID)
	}
}

func TestToggleImportant(t *testing.T) {
	on := Apply(todo(domain.ColumnToday), ToggleImportant{}, ctx())
	if !on.Task.IsImportant {
		t.Fatalf("expected important")
	}
	if got := kinds(on.Effects); len(got) != 1 || got[0] != ImportantSet {
		t.Fatalf("expected ImportantSet, got %v", got)
	}
	off := Apply(&on.Task, ToggleImportant{}, ctx())
	if off.Task.IsImportant || len(off.Effects) != 0 {
		t.Fatalf("unexpected unset result %#v", off)
	}
}

func TestEditToCompletedCouples(t *testing.T) {
	in := todo(domain.ColumnUpcoming)
	f := in.Fields()
	f.Status = domain.StatusCompleted
	res := Apply(in, Edit{Fields: f}, ctx())
	assertCompletionInvariant(t, res.Task)
	if res.Task.ColumnID != domain.ColumnCompleted || res.Task.PreviousColumnID != domain.ColumnUpcoming {
		t.Fatalf("unexpected task %#v", res.Task)
	}
	if got := kinds(res.Effects); len(got) != 1 || got[0] != TaskCompleted {
		t.Fatalf("expected TaskCompleted, got %v", got)
	}
}

func TestEditOutOfCompletedRestoresColumn(t *testing.T) {
	done := testNow
	in := &domain.Task{ID: "t1", Title: "x", Status: domain.StatusCompleted, ColumnID: domain.ColumnCompleted, CompletedDate: &done, PreviousColumnID: domain.ColumnUpcoming}
	f := in.Fields()
	f.Status = domain.StatusTodo
	res := Apply(in, Edit{Fields: f}, ctx())
	if res.Task.ColumnID != domain.ColumnUpcoming || res.Task.CompletedDate != nil || res.Task.PreviousColumnID != "" {
		t.Fatalf("unexpected task %#v", res.Task)
	}
	if len(res.Effects) != 0 {
		t.Fatalf("expected no effects")
	}
}

func TestEditDueDateReclassifies(t *testing.T) {
	in := todo(domain.ColumnToday)
	f := in.Fields()
	f.DueDate = "Due tomorrow"
	res := Apply(in, Edit{Fields: f}, ctx())
	if res.Task.ColumnID != domain.ColumnUpcoming {
		t.Fatalf("expected UPCOMING, got %s", res.Task.ColumnID)
	}

	back := res.Task.Fields()
	back.DueDate = "Due today"
	res = Apply(&res.Task, Edit{Fields: back}, ctx())
	if res.Task.ColumnID != domain.ColumnToday {
		t.Fatalf("expected TODAY, got %s", res.Task.ColumnID)
	}
}

func TestEditDueDateOnCompletedTaskDoesNotReclassify(t *testing.T) {
	done := testNow
	in := &domain.Task{ID: "t1", Title: "x", Status: domain.StatusCompleted, ColumnID: domain.ColumnCompleted, CompletedDate: &done, DueDate: "Due today"}
	f := in.Fields()
	f.DueDate = "Due tomorrow"
	res := Apply(in, Edit{Fields: f}, ctx())
	if res.Task.ColumnID != domain.ColumnCompleted {
		t.Fatalf("completed task reclassified to %s", res.Task.ColumnID)
	}
}

func TestEditBlankTitleIsNoop(t *testing.T) {
	in := todo(domain.ColumnToday)
	f := in.Fields()
	f.Title = "  "
	res := Apply(in, Edit{Fields: f}, ctx())
	if res.Changed || res.Task.Title != "Task" {
		t.Fatalf("expected no-op, got %#v", res)
	}
}

func TestDelete(t *testing.T) {
	res := Apply(todo(domain.ColumnToday), Delete{}, ctx())
	if !res.Deleted {
		t.Fatalf("expected deleted")
	}
	if got := kinds(res.Effects); len(got) != 1 || got[0] != TaskDeleted {
		t.Fatalf("expected TaskDeleted, got %v", got)
	}
}

func TestUndoCompleteRestoresPreDragColumn(t *testing.T) {
	dragged := Apply(todo("col-errands"), MoveToColumn{Destination: domain.ColumnCompleted}, ctx())
	res := Apply(&dragged.Task, UndoComplete{NotificationID: "n1"}, ctx())
	if res.Task.ColumnID != "col-errands" || res.Task.Status != domain.StatusTodo {
		t.Fatalf("unexpected task %#v", res.Task)
	}
	if res.Task.CompletedDate != nil || res.Task.PreviousColumnID != "" {
		t.Fatalf("history not cleared: %#v", res.Task)
	}
	if len(res.Effects) != 1 || res.Effects[0].Kind != Undone || res.Effects[0].NotificationID != "n1" {
		t.Fatalf("unexpected effects %#v", res.Effects)
	}
}

func TestUndoCompleteOnOpenTaskIsNoop(t *testing.T) {
	res := Apply(todo(domain.ColumnToday), UndoComplete{NotificationID: "n1"}, ctx())
	if res.Changed || len(res.Effects) != 0 {
		t.Fatalf("expected no-op, got %#v", res)
	}
}
