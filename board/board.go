// Package board owns the canonical task and column collections and routes
// every user intent through the transition engine.
package board

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Arham2306/Focus-Flow-Web-App/assist"
	"github.com/Arham2306/Focus-Flow-Web-App/domain"
	"github.com/Arham2306/Focus-Flow-Web-App/events"
	"github.com/Arham2306/Focus-Flow-Web-App/notify"
	"github.com/Arham2306/Focus-Flow-Web-App/storage"
	"github.com/Arham2306/Focus-Flow-Web-App/transition"
)

// Keys the board state is saved under.
const (
	TasksKey         = "focusflow-tasks"
	ColumnsKey       = "focusflow-columns"
	NotificationsKey = "focusflow-notifications"
)

const (
	tracerName          = "focusflow/board"
	saveTimeout         = 5 * time.Second
	publishTimeout      = 5 * time.Second
	DefaultParseTimeout = 8 * time.Second
)

var (
	ErrTaskNotFound         = errors.New("task not found")
	ErrColumnNotFound       = errors.New("column not found")
	ErrSystemColumn         = errors.New("system columns cannot be deleted")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrNoAction             = errors.New("notification has no action")
	ErrUnsupportedAction    = errors.New("unsupported notification action")
)

// EffectSink receives engine effects for purely visual reactions such as
// confetti on completion.
type EffectSink interface {
	Celebrate(ctx context.Context, e transition.Effect)
}

// EffectSinkFunc adapts a function to EffectSink.
type EffectSinkFunc func(ctx context.Context, e transition.Effect)

func (f EffectSinkFunc) Celebrate(ctx context.Context, e transition.Effect) { f(ctx, e) }

// Dataset is a complete board used when nothing has been saved yet.
type Dataset struct {
	Tasks   []domain.Task
	Columns []domain.Column
}

// Options configures a Board. Only Store is required.
type Options struct {
	Store     storage.KV
	Logger    *log.Logger
	Now       func() time.Time
	Publisher events.Publisher
	Effects   EffectSink
	Parser    assist.Parser
	// ParseTimeout bounds a single parser call in QuickAdd.
	ParseTimeout  time.Duration
	Notifications notify.Options
	// Seed replaces the built-in sample dataset.
	Seed *Dataset
	// OnChange is called after every mutation, outside the board lock.
	OnChange func()
}

// Board is the single writer of the task board.
type Board struct {
	store        storage.KV
	logger       *log.Logger
	now          func() time.Time
	publisher    events.Publisher
	effects      EffectSink
	parser       assist.Parser
	parseTimeout time.Duration
	onChange     func()
	center       *notify.Center

	mu      sync.Mutex
	tasks   []domain.Task
	columns []domain.Column

	notifMu sync.Mutex
}

// New builds a board and loads its saved state. Unreadable state is logged
// and replaced with the default dataset.
func New(ctx context.Context, opts Options) *Board {
	if opts.Store == nil {
		panic("board.New: store is nil")
	}
	b := &Board{
		store:        opts.Store,
		logger:       opts.Logger,
		now:          opts.Now,
		publisher:    opts.Publisher,
		effects:      opts.Effects,
		parser:       opts.Parser,
		parseTimeout: opts.ParseTimeout,
		onChange:     opts.OnChange,
	}
	if b.logger == nil {
		b.logger = log.StandardLogger()
	}
	if b.now == nil {
		b.now = time.Now
	}
	if b.publisher == nil {
		b.publisher = events.Nop{}
	}
	if b.parseTimeout <= 0 {
		b.parseTimeout = DefaultParseTimeout
	}
	nopts := opts.Notifications
	nopts.OnChange = b.notificationsChanged
	b.center = notify.NewCenter(nopts)

	b.load(ctx, opts.Seed)
	return b
}

// Close stops pending toast timers.
func (b *Board) Close() {
	b.center.Close()
}

func (b *Board) load(ctx context.Context, seed *Dataset) {
	ctx, span := b.startSpan(ctx, "load")
	defer span.End()

	now := b.now()
	defaults := Dataset{Tasks: domain.DefaultTasks(now), Columns: domain.DefaultColumns()}
	if seed != nil {
		defaults = Dataset{Tasks: domain.CloneTasks(seed.Tasks), Columns: append([]domain.Column(nil), seed.Columns...)}
		if len(defaults.Columns) == 0 {
			defaults.Columns = domain.DefaultColumns()
		}
	}

	var tasks []domain.Task
	if !b.loadJSON(ctx, TasksKey, &tasks) {
		tasks = defaults.Tasks
	}
	var columns []domain.Column
	if !b.loadJSON(ctx, ColumnsKey, &columns) {
		columns = defaults.Columns
	}
	var entries []domain.Notification
	if b.loadJSON(ctx, NotificationsKey, &entries) {
		b.center.Restore(entries)
	}

	b.columns = repairColumns(columns)
	var repaired int
	b.tasks, repaired = repairTasks(tasks, b.columns, now)
	if repaired > 0 {
		b.logger.WithField("tasks", repaired).Warn("repaired inconsistent tasks on load")
	}
	span.SetAttributes(
		attribute.Int("focusflow.tasks", len(b.tasks)),
		attribute.Int("focusflow.columns", len(b.columns)),
	)
}

func (b *Board) loadJSON(ctx context.Context, key string, v any) bool {
	data, err := b.store.Load(ctx, key)
	if err != nil {
		entry := b.logger.WithField("key", key)
		if errors.Is(err, storage.ErrNotFound) {
			entry.Debug("no saved state, using defaults")
		} else {
			entry.WithError(err).Error("load board state")
		}
		return false
	}
	if err := sonic.Unmarshal(data, v); err != nil {
		b.logger.WithField("key", key).WithError(err).Warn("malformed saved state, using defaults")
		return false
	}
	return true
}

// save writes v under key. Failures are logged and never returned: the
// in-memory state stays authoritative.
func (b *Board) save(ctx context.Context, key string, v any) {
	data, err := sonic.Marshal(v)
	if err != nil {
		b.logger.WithField("key", key).WithError(err).Error("encode board state")
		return
	}
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), saveTimeout)
	defer cancel()
	if err := b.store.Save(saveCtx, key, data); err != nil {
		b.logger.WithField("key", key).WithError(err).Error("persist board state")
	}
}

func (b *Board) notificationsChanged() {
	b.notifMu.Lock()
	b.save(context.Background(), NotificationsKey, b.center.Entries())
	b.notifMu.Unlock()
	b.changed()
}

func (b *Board) changed() {
	if b.onChange != nil {
		b.onChange()
	}
}

func (b *Board) publish(ctx context.Context, entityType, entityID, typ string, data any) {
	ev, err := events.New(entityType, entityID, typ, data, b.now().UnixNano())
	if err != nil {
		b.logger.WithError(err).Error("build event")
		return
	}
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := b.publisher.Publish(pubCtx, ev); err != nil {
		b.logger.WithFields(log.Fields{"event": typ, "entity_id": entityID}).WithError(err).Warn("publish event")
	}
}

func (b *Board) startSpan(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "board."+op, trace.WithAttributes(attrs...))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (b *Board) transitionContext() transition.Context {
	return transition.Context{
		Now:             b.now(),
		DefaultColumnID: domain.ColumnToday,
		ColumnExists:    b.columnExistsLocked,
	}
}

func (b *Board) columnExistsLocked(id string) bool {
	return b.columnIndexLocked(id) >= 0
}

func (b *Board) columnIndexLocked(id string) int {
	for i, c := range b.columns {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (b *Board) taskIndexLocked(id string) int {
	for i, t := range b.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// repairColumns guarantees the three system columns exist exactly once and
// every column has a valid sort option.
func repairColumns(in []domain.Column) []domain.Column {
	seen := make(map[string]bool, len(in))
	out := make([]domain.Column, 0, len(in)+3)
	for _, c := range in {
		if c.ID == "" || seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		if opt, err := domain.ParseSortOption(string(c.SortBy)); err == nil {
			c.SortBy = opt
		} else {
			c.SortBy = domain.SortCreation
		}
		out = append(out, c)
	}
	defaults := domain.DefaultColumns()
	var lead []domain.Column
	for _, d := range defaults {
		if seen[d.ID] {
			continue
		}
		if d.ID == domain.ColumnCompleted {
			out = append(out, d)
		} else {
			lead = append(lead, d)
		}
	}
	return append(lead, out...)
}

// repairTasks re-homes tasks whose column vanished and restores the
// completion invariants. It returns how many tasks were touched.
func repairTasks(in []domain.Task, columns []domain.Column, now time.Time) ([]domain.Task, int) {
	known := make(map[string]bool, len(columns))
	for _, c := range columns {
		known[c.ID] = true
	}
	seen := make(map[string]bool, len(in))
	out := make([]domain.Task, 0, len(in))
	repaired := 0
	for _, t := range in {
		if t.ID == "" || seen[t.ID] {
			repaired++
			continue
		}
		seen[t.ID] = true
		touched := false
		if !known[t.ColumnID] {
			t.ColumnID = domain.ColumnToday
			touched = true
		}
		if t.Status != domain.StatusCompleted && t.Status != domain.StatusTodo {
			t.Status = domain.StatusTodo
			touched = true
		}
		if t.Status == domain.StatusCompleted && t.CompletedDate == nil {
			done := now
			t.CompletedDate = &done
			touched = true
		}
		if t.Status == domain.StatusTodo && (t.CompletedDate != nil || t.PreviousColumnID != "") {
			t.CompletedDate = nil
			t.PreviousColumnID = ""
			touched = true
		}
		if touched {
			repaired++
		}
		out = append(out, t)
	}
	return out, repaired
}
