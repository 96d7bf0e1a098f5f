// Package transition computes how a single task changes in response to a user
// action. It performs no I/O: observable consequences are returned as Effect
// values for the caller to dispatch.
package transition

import (
	"strings"
	"time"

	"github.com/Arham2306/Focus-Flow-Web-App/domain"
)

// Action is one of the user intents below.
type Action interface {
	isAction()
}

// MoveToColumn is a drag and drop onto Destination. Reordered is set when the
// card changed position inside its own column.
type MoveToColumn struct {
	Destination string
	Reordered   bool
}

// ToggleStatus flips the completion checkbox.
type ToggleStatus struct{}

// ToggleImportant flips the star.
type ToggleImportant struct{}

// Edit replaces every editable field with Fields.
type Edit struct {
	Fields domain.TaskFields
}

// Delete removes the task.
type Delete struct{}

// UndoComplete reverts a completion from the notification that announced it.
type UndoComplete struct {
	NotificationID string
}

func (MoveToColumn) isAction()    {}
func (ToggleStatus) isAction()    {}
func (ToggleImportant) isAction() {}
func (Edit) isAction()            {}
func (Delete) isAction()          {}
func (UndoComplete) isAction()    {}

// EffectKind names a side effect.
type EffectKind string

const (
	TaskCompleted EffectKind = "task.completed"
	TaskDeleted   EffectKind = "task.deleted"
	ImportantSet  EffectKind = "task.important"
	Undone        EffectKind = "task.undone"
)

// Effect is a declarative description of something downstream subsystems
// should react to.
type Effect struct {
	Kind           EffectKind
	TaskID         string
	TaskTitle      string
	NotificationID string
}

// Context carries the environment a transition is evaluated in.
type Context struct {
	Now time.Time
	// DefaultColumnID is where reverted tasks go when no previous column is
	// known. Empty means Today.
	DefaultColumnID string
	// ColumnExists guards restores against columns deleted in the meantime.
	// Nil accepts every id.
	ColumnExists func(id string) bool
}

func (c Context) defaultColumn() string {
	if c.DefaultColumnID != "" {
		return c.DefaultColumnID
	}
	return domain.ColumnToday
}

func (c Context) exists(id string) bool {
	if id == "" {
		return false
	}
	if c.ColumnExists == nil {
		return true
	}
	return c.ColumnExists(id)
}

// Result is the outcome of Apply.
type Result struct {
	Task    domain.Task
	Changed bool
	Deleted bool
	Effects []Effect
}

// Apply computes the next state of task under action. The input task is
// never modified. A nil task yields an empty result.
func Apply(task *domain.Task, action Action, ctx Context) Result {
	if task == nil || action == nil {
		return Result{}
	}
	t := task.Clone()
	switch a := action.(type) {
	case MoveToColumn:
		return move(t, a, ctx)
	case ToggleStatus:
		return toggleStatus(t, ctx)
	case ToggleImportant:
		t.IsImportant = !t.IsImportant
		res := Result{Task: t, Changed: true}
		if t.IsImportant {
			res.Effects = []Effect{effectFor(ImportantSet, t)}
		}
		return res
	case Edit:
		return edit(t, a, ctx)
	case Delete:
		return Result{Task: t, Changed: true, Deleted: true, Effects: []Effect{effectFor(TaskDeleted, t)}}
	case UndoComplete:
		return undo(t, a, ctx)
	}
	return Result{Task: t}
}

func move(t domain.Task, a MoveToColumn, ctx Context) Result {
	if a.Destination == "" || (a.Destination == t.ColumnID && !a.Reordered) {
		return Result{Task: t}
	}
	src := t.ColumnID
	res := Result{Changed: true}
	if a.Destination == domain.ColumnCompleted {
		t.Status = domain.StatusCompleted
		if t.CompletedDate == nil {
			now := ctx.Now
			t.CompletedDate = &now
		}
		if src != domain.ColumnCompleted {
			t.PreviousColumnID = src
			res.Effects = []Effect{effectFor(TaskCompleted, t)}
		}
	} else {
		t.Status = domain.StatusTodo
		t.CompletedDate = nil
		t.PreviousColumnID = ""
	}
	t.ColumnID = a.Destination
	res.Task = t
	return res
}

func toggleStatus(t domain.Task, ctx Context) Result {
	if t.Status != domain.StatusCompleted {
		complete(&t, ctx)
		return Result{Task: t, Changed: true, Effects: []Effect{effectFor(TaskCompleted, t)}}
	}
	// Reverting through the checkbox is silent.
	revert(&t, ctx)
	return Result{Task: t, Changed: true}
}

func edit(t domain.Task, a Edit, ctx Context) Result {
	f := a.Fields
	if strings.TrimSpace(f.Title) == "" {
		return Result{Task: t}
	}
	prevStatus, prevDue := t.Status, t.DueDate
	next := f.Status
	if next == "" {
		next = prevStatus
	}

	t.Title = strings.TrimSpace(f.Title)
	t.Description = f.Description
	t.DueDate = strings.TrimSpace(f.DueDate)
	t.Priority = f.Priority
	t.Category = f.Category
	if f.CategoryIcon != "" {
		t.CategoryIcon = f.CategoryIcon
	}
	t.Subtasks = append([]domain.Subtask(nil), f.Subtasks...)
	if len(t.Subtasks) == 0 {
		t.Subtasks = nil
	}
	t.IsImportant = f.IsImportant
	t.HasNotification = f.HasNotification
	if f.ColumnID != "" && ctx.exists(f.ColumnID) {
		t.ColumnID = f.ColumnID
	}

	res := Result{Changed: true}
	switch {
	case next == domain.StatusCompleted && prevStatus != domain.StatusCompleted:
		complete(&t, ctx)
		res.Effects = []Effect{effectFor(TaskCompleted, t)}
	case next != domain.StatusCompleted && prevStatus == domain.StatusCompleted:
		revert(&t, ctx)
	case t.DueDate != prevDue && t.Status != domain.StatusCompleted:
		t.ColumnID = domain.ClassifyDueDate(t.DueDate)
	}
	res.Task = t
	return res
}

func undo(t domain.Task, a UndoComplete, ctx Context) Result {
	if t.Status != domain.StatusCompleted {
		return Result{Task: t}
	}
	switch {
	case t.PreviousColumnID != "":
		t.ColumnID = restoreColumn(t.PreviousColumnID, ctx)
	case t.ColumnID == domain.ColumnCompleted:
		t.ColumnID = ctx.defaultColumn()
	}
	t.Status = domain.StatusTodo
	t.CompletedDate = nil
	t.PreviousColumnID = ""
	eff := effectFor(Undone, t)
	eff.NotificationID = a.NotificationID
	return Result{Task: t, Changed: true, Effects: []Effect{eff}}
}

func complete(t *domain.Task, ctx Context) {
	now := ctx.Now
	t.Status = domain.StatusCompleted
	t.CompletedDate = &now
	if t.ColumnID != domain.ColumnCompleted {
		t.PreviousColumnID = t.ColumnID
	}
	t.ColumnID = domain.ColumnCompleted
}

func revert(t *domain.Task, ctx Context) {
	t.Status = domain.StatusTodo
	t.CompletedDate = nil
	if t.ColumnID == domain.ColumnCompleted {
		t.ColumnID = restoreColumn(t.PreviousColumnID, ctx)
	}
	t.PreviousColumnID = ""
}

func restoreColumn(prev string, ctx Context) string {
	if prev != "" && prev != domain.ColumnCompleted && ctx.exists(prev) {
		return prev
	}
	return ctx.defaultColumn()
}

func effectFor(kind EffectKind, t domain.Task) Effect {
	return Effect{Kind: kind, TaskID: t.ID, TaskTitle: t.Title}
}
