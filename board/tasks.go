package board

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/Arham2306/Focus-Flow-Web-App/domain"
	"github.com/Arham2306/Focus-Flow-Web-App/events"
	"github.com/Arham2306/Focus-Flow-Web-App/notify"
	"github.com/Arham2306/Focus-Flow-Web-App/transition"
)

// AddTask creates a task from a plain title.
func (b *Board) AddTask(ctx context.Context, title, dueDate string, remind bool) (task domain.Task, err error) {
	ctx, span := b.startSpan(ctx, "add_task")
	defer func() { endSpan(span, err) }()

	t, err := domain.NewTaskFromTitle(title, dueDate, remind)
	if err != nil {
		return domain.Task{}, err
	}
	return b.insert(ctx, t)
}

// AddTaskFromFields creates a task from structured fields. An explicit
// column must exist.
func (b *Board) AddTaskFromFields(ctx context.Context, fields domain.TaskFields) (task domain.Task, err error) {
	ctx, span := b.startSpan(ctx, "add_task_fields")
	defer func() { endSpan(span, err) }()

	t, err := domain.NewTaskFromFields(fields)
	if err != nil {
		return domain.Task{}, err
	}
	return b.insert(ctx, t)
}

// QuickAdd asks the parser to structure input and creates the result. Any
// parser failure falls back to using input as a plain title. The boolean
// reports whether parsed fields were used.
func (b *Board) QuickAdd(ctx context.Context, input, dueDate string, remind bool) (domain.Task, bool, error) {
	if strings.TrimSpace(input) == "" {
		return domain.Task{}, false, domain.ErrEmptyTitle
	}
	if b.parser != nil {
		t, err := b.addParsed(ctx, input, dueDate, remind)
		if err == nil {
			return t, true, nil
		}
		b.logger.WithError(err).Info("task parser unavailable, adding plain task")
	}
	t, err := b.AddTask(ctx, input, dueDate, remind)
	return t, false, err
}

func (b *Board) addParsed(ctx context.Context, input, dueDate string, remind bool) (domain.Task, error) {
	parseCtx, cancel := context.WithTimeout(ctx, b.parseTimeout)
	defer cancel()
	p, err := b.parser.Parse(parseCtx, input, b.now())
	if err != nil {
		return domain.Task{}, err
	}
	fields := p.Fields()
	if fields.DueDate == "" {
		fields.DueDate = dueDate
	}
	fields.HasNotification = remind
	return b.AddTaskFromFields(ctx, fields)
}

func (b *Board) insert(ctx context.Context, t domain.Task) (domain.Task, error) {
	b.mu.Lock()
	if !b.columnExistsLocked(t.ColumnID) {
		b.mu.Unlock()
		return domain.Task{}, ErrColumnNotFound
	}
	b.tasks = append(b.tasks, t)
	b.save(ctx, TasksKey, b.tasks)
	b.mu.Unlock()

	b.logger.WithFields(log.Fields{"task_id": t.ID, "column_id": t.ColumnID}).Debug("task added")
	b.publish(ctx, "task", t.ID, events.TaskCreated, t)
	b.changed()
	return t.Clone(), nil
}

// UpdateTask replaces the editable fields of a task.
func (b *Board) UpdateTask(ctx context.Context, id string, fields domain.TaskFields) (task domain.Task, err error) {
	ctx, span := b.startSpan(ctx, "update_task", attribute.String("task.id", id))
	defer func() { endSpan(span, err) }()

	fields.Subtasks = append([]domain.Subtask(nil), fields.Subtasks...)
	if err := fields.Normalize(); err != nil {
		return domain.Task{}, err
	}
	return b.applyTask(ctx, id, transition.Edit{Fields: fields}, func() error {
		if fields.ColumnID != "" && !b.columnExistsLocked(fields.ColumnID) {
			return ErrColumnNotFound
		}
		return nil
	})
}

// DeleteTask removes a task.
func (b *Board) DeleteTask(ctx context.Context, id string) (err error) {
	ctx, span := b.startSpan(ctx, "delete_task", attribute.String("task.id", id))
	defer func() { endSpan(span, err) }()

	_, err = b.applyTask(ctx, id, transition.Delete{}, nil)
	return err
}

// MoveTask is a drag and drop of task id onto column dest.
func (b *Board) MoveTask(ctx context.Context, id, dest string, reordered bool) (task domain.Task, err error) {
	ctx, span := b.startSpan(ctx, "move_task", attribute.String("task.id", id), attribute.String("column.id", dest))
	defer func() { endSpan(span, err) }()

	return b.applyTask(ctx, id, transition.MoveToColumn{Destination: dest, Reordered: reordered}, func() error {
		if !b.columnExistsLocked(dest) {
			return ErrColumnNotFound
		}
		return nil
	})
}

// ToggleStatus flips the completion checkbox of a task.
func (b *Board) ToggleStatus(ctx context.Context, id string) (task domain.Task, err error) {
	ctx, span := b.startSpan(ctx, "toggle_status", attribute.String("task.id", id))
	defer func() { endSpan(span, err) }()

	return b.applyTask(ctx, id, transition.ToggleStatus{}, nil)
}

// ToggleImportant flips the star of a task.
func (b *Board) ToggleImportant(ctx context.Context, id string) (task domain.Task, err error) {
	ctx, span := b.startSpan(ctx, "toggle_important", attribute.String("task.id", id))
	defer func() { endSpan(span, err) }()

	return b.applyTask(ctx, id, transition.ToggleImportant{}, nil)
}

// applyTask runs action against task id and commits the result. check runs
// under the lock before the engine and can veto the operation.
func (b *Board) applyTask(ctx context.Context, id string, action transition.Action, check func() error) (domain.Task, error) {
	b.mu.Lock()
	idx := b.taskIndexLocked(id)
	if idx < 0 {
		b.mu.Unlock()
		return domain.Task{}, ErrTaskNotFound
	}
	if check != nil {
		if err := check(); err != nil {
			b.mu.Unlock()
			return domain.Task{}, err
		}
	}
	before := b.tasks[idx].Clone()
	res := transition.Apply(&b.tasks[idx], action, b.transitionContext())
	if res.Changed {
		if res.Deleted {
			b.tasks = append(b.tasks[:idx:idx], b.tasks[idx+1:]...)
		} else {
			b.tasks[idx] = res.Task
		}
		b.save(ctx, TasksKey, b.tasks)
	}
	b.mu.Unlock()

	b.dispatch(ctx, res.Effects)

	if !res.Changed {
		return res.Task.Clone(), nil
	}
	b.publish(ctx, "task", id, taskEventType(before, res), res.Task)
	b.celebrate(ctx, res.Effects)
	b.changed()
	return res.Task.Clone(), nil
}

// dispatch turns effects into notifications.
func (b *Board) dispatch(_ context.Context, effects []transition.Effect) {
	for _, e := range effects {
		n, ok := notify.FromEffect(e, b.now())
		if !ok {
			continue
		}
		b.center.Emit(n)
	}
}

func (b *Board) celebrate(ctx context.Context, effects []transition.Effect) {
	if b.effects == nil {
		return
	}
	for _, e := range effects {
		if e.Kind == transition.TaskCompleted {
			b.effects.Celebrate(ctx, e)
		}
	}
}

func taskEventType(before domain.Task, res transition.Result) string {
	switch {
	case res.Deleted:
		return events.TaskDeleted
	case !before.IsCompleted() && res.Task.IsCompleted():
		return events.TaskCompleted
	case before.IsCompleted() && !res.Task.IsCompleted():
		return events.TaskReopened
	default:
		return events.TaskUpdated
	}
}
