package board

import (
	"github.com/Arham2306/Focus-Flow-Web-App/domain"
	"github.com/Arham2306/Focus-Flow-Web-App/view"
)

// Tasks returns a copy of every task in insertion order.
func (b *Board) Tasks() []domain.Task {
	b.mu.Lock()
	defer b.mu.Unlock()
	return domain.CloneTasks(b.tasks)
}

// Task returns a copy of a single task.
func (b *Board) Task(id string) (domain.Task, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	idx := b.taskIndexLocked(id)
	if idx < 0 {
		return domain.Task{}, false
	}
	return b.tasks[idx].Clone(), true
}

// Columns returns a copy of the columns in display order.
func (b *Board) Columns() []domain.Column {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]domain.Column(nil), b.columns...)
}

func (b *Board) snapshot() ([]domain.Task, []domain.Column) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return domain.CloneTasks(b.tasks), append([]domain.Column(nil), b.columns...)
}

func (b *Board) query(q view.Query) view.Query {
	if q.Now.IsZero() {
		q.Now = b.now()
	}
	return q
}

// View projects the board for a navigation context and search query.
func (b *Board) View(q view.Query) view.BoardView {
	tasks, columns := b.snapshot()
	return view.Build(tasks, columns, b.query(q))
}

// Adventure lays the visible tasks out on the quest path in insertion
// order.
func (b *Board) Adventure(q view.Query) view.QuestMap {
	return view.Quest(view.Visible(b.Tasks(), b.query(q)))
}

// Progress summarizes completion of the visible tasks.
func (b *Board) Progress(q view.Query) view.ProgressSummary {
	return view.Progress(view.Visible(b.Tasks(), b.query(q)))
}

// Calendar groups the visible tasks by due day.
func (b *Board) Calendar(q view.Query) []view.CalendarDay {
	q = b.query(q)
	return view.Calendar(view.Visible(b.Tasks(), q), q.Now)
}
