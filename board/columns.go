package board

import (
	"context"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/Arham2306/Focus-Flow-Web-App/domain"
	"github.com/Arham2306/Focus-Flow-Web-App/events"
)

// AddColumn creates a user column just before the Completed column.
func (b *Board) AddColumn(ctx context.Context, title string) (col domain.Column, err error) {
	ctx, span := b.startSpan(ctx, "add_column")
	defer func() { endSpan(span, err) }()

	b.mu.Lock()
	user := 0
	for _, c := range b.columns {
		if !domain.IsSystemColumn(c.ID) {
			user++
		}
	}
	col, err = domain.NewColumn(title, user)
	if err != nil {
		b.mu.Unlock()
		return domain.Column{}, err
	}
	at := b.columnIndexLocked(domain.ColumnCompleted)
	if at < 0 {
		at = len(b.columns)
	}
	b.columns = append(b.columns[:at:at], append([]domain.Column{col}, b.columns[at:]...)...)
	b.save(ctx, ColumnsKey, b.columns)
	b.mu.Unlock()

	b.publish(ctx, "column", col.ID, events.ColumnCreated, col)
	b.changed()
	return col, nil
}

// DeleteColumn removes a user column together with every task in it.
// System columns are refused. It returns how many tasks were removed.
func (b *Board) DeleteColumn(ctx context.Context, id string) (removed int, err error) {
	ctx, span := b.startSpan(ctx, "delete_column", attribute.String("column.id", id))
	defer func() {
		span.SetAttributes(attribute.Int("focusflow.tasks_removed", removed))
		endSpan(span, err)
	}()

	if domain.IsSystemColumn(id) {
		return 0, ErrSystemColumn
	}
	b.mu.Lock()
	idx := b.columnIndexLocked(id)
	if idx < 0 {
		b.mu.Unlock()
		return 0, ErrColumnNotFound
	}
	b.columns = append(b.columns[:idx:idx], b.columns[idx+1:]...)
	kept := b.tasks[:0:0]
	for _, t := range b.tasks {
		if t.ColumnID == id {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	b.tasks = kept
	b.save(ctx, ColumnsKey, b.columns)
	b.save(ctx, TasksKey, b.tasks)
	b.mu.Unlock()

	b.logger.WithFields(log.Fields{"column_id": id, "tasks_removed": removed}).Info("column deleted")
	b.publish(ctx, "column", id, events.ColumnDeleted, map[string]int{"tasksRemoved": removed})
	b.changed()
	return removed, nil
}

// SetColumnSort changes the sort option of a column.
func (b *Board) SetColumnSort(ctx context.Context, id string, option domain.SortOption) (col domain.Column, err error) {
	ctx, span := b.startSpan(ctx, "set_column_sort", attribute.String("column.id", id), attribute.String("column.sort", string(option)))
	defer func() { endSpan(span, err) }()

	option, err = domain.ParseSortOption(string(option))
	if err != nil {
		return domain.Column{}, err
	}
	b.mu.Lock()
	idx := b.columnIndexLocked(id)
	if idx < 0 {
		b.mu.Unlock()
		return domain.Column{}, ErrColumnNotFound
	}
	b.columns[idx].SortBy = option
	col = b.columns[idx]
	b.save(ctx, ColumnsKey, b.columns)
	b.mu.Unlock()

	b.publish(ctx, "column", id, events.ColumnSorted, col)
	b.changed()
	return col, nil
}
