// Package notify keeps the notification log and the transient toast queue.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Arham2306/Focus-Flow-Web-App/domain"
)

const (
	// DefaultToastTTL is how long a toast stays on screen.
	DefaultToastTTL = 5 * time.Second
	// DefaultMaxEntries bounds the notification log.
	DefaultMaxEntries = 100
)

// Timer is a scheduled callback that can be cancelled.
type Timer interface {
	Stop() bool
}

// Scheduler runs f after d. The default uses time.AfterFunc.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type clockScheduler struct{}

func (clockScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Options configures a Center. Zero values select the defaults.
type Options struct {
	ToastTTL   time.Duration
	MaxEntries int
	Scheduler  Scheduler
	// OnChange is invoked after any mutation, outside the center's lock.
	OnChange func()
}

// Center owns the notification log (newest first) and the toast queue
// (oldest first). Each toast expires on its own timer.
type Center struct {
	ttl      time.Duration
	max      int
	sched    Scheduler
	onChange func()

	mu     sync.Mutex
	log    []domain.Notification
	toasts []domain.Notification
	timers map[string]Timer
}

// NewCenter creates an empty Center.
func NewCenter(opts Options) *Center {
	c := &Center{
		ttl:      opts.ToastTTL,
		max:      opts.MaxEntries,
		sched:    opts.Scheduler,
		onChange: opts.OnChange,
		timers:   make(map[string]Timer),
	}
	if c.ttl <= 0 {
		c.ttl = DefaultToastTTL
	}
	if c.max <= 0 {
		c.max = DefaultMaxEntries
	}
	if c.sched == nil {
		c.sched = clockScheduler{}
	}
	return c
}

// SetOnChange replaces the change hook.
func (c *Center) SetOnChange(fn func()) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

// Restore replaces the log with previously saved entries. No toasts are
// raised for restored entries.
func (c *Center) Restore(entries []domain.Notification) {
	c.mu.Lock()
	c.log = cloneAll(entries)
	if len(c.log) > c.max {
		c.log = c.log[:c.max]
	}
	c.mu.Unlock()
}

// Emit appends n to the log and raises it as a toast. Missing ids are
// generated.
func (c *Center) Emit(n domain.Notification) domain.Notification {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	c.mu.Lock()
	c.log = append([]domain.Notification{n.Clone()}, c.log...)
	if len(c.log) > c.max {
		c.log = c.log[:c.max]
	}
	c.toasts = append(c.toasts, n.Clone())
	if old, ok := c.timers[n.ID]; ok {
		old.Stop()
	}
	id := n.ID
	c.timers[id] = c.sched.AfterFunc(c.ttl, func() { c.Expire(id) })
	c.mu.Unlock()

	c.changed()
	return n.Clone()
}

// Expire drops a toast whose timer fired. Expiring a toast that is already
// gone does nothing.
func (c *Center) Expire(id string) bool {
	c.mu.Lock()
	delete(c.timers, id)
	ok := c.removeToast(id)
	c.mu.Unlock()
	if ok {
		c.changed()
	}
	return ok
}

// Dismiss cancels a toast's timer and removes it from the queue. The log
// entry stays.
func (c *Center) Dismiss(id string) bool {
	c.mu.Lock()
	if t, ok := c.timers[id]; ok {
		t.Stop()
		delete(c.timers, id)
	}
	ok := c.removeToast(id)
	c.mu.Unlock()
	if ok {
		c.changed()
	}
	return ok
}

// MarkRead flags a single log entry as read.
func (c *Center) MarkRead(id string) bool {
	c.mu.Lock()
	found := false
	changed := false
	for i := range c.log {
		if c.log[i].ID == id {
			found = true
			changed = !c.log[i].IsRead
			c.log[i].IsRead = true
			break
		}
	}
	c.mu.Unlock()
	if changed {
		c.changed()
	}
	return found
}

// MarkAllRead flags every entry as read and returns how many changed.
func (c *Center) MarkAllRead() int {
	c.mu.Lock()
	n := 0
	for i := range c.log {
		if !c.log[i].IsRead {
			c.log[i].IsRead = true
			n++
		}
	}
	c.mu.Unlock()
	if n > 0 {
		c.changed()
	}
	return n
}

// Clear empties the log. Toasts on screen run out on their own.
func (c *Center) Clear() {
	c.mu.Lock()
	had := len(c.log) > 0
	c.log = nil
	c.mu.Unlock()
	if had {
		c.changed()
	}
}

// Get returns a copy of the log entry with the given id.
func (c *Center) Get(id string) (domain.Notification, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, n := range c.log {
		if n.ID == id {
			return n.Clone(), true
		}
	}
	return domain.Notification{}, false
}

// Entries returns a copy of the log, newest first.
func (c *Center) Entries() []domain.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneAll(c.log)
}

// Toasts returns a copy of the toast queue, oldest first.
func (c *Center) Toasts() []domain.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneAll(c.toasts)
}

// UnreadCount reports how many log entries are unread.
func (c *Center) UnreadCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, e := range c.log {
		if !e.IsRead {
			n++
		}
	}
	return n
}

// Close cancels every pending toast timer.
func (c *Center) Close() {
	c.mu.Lock()
	for id, t := range c.timers {
		t.Stop()
		delete(c.timers, id)
	}
	c.mu.Unlock()
}

func (c *Center) removeToast(id string) bool {
	for i, t := range c.toasts {
		if t.ID == id {
			c.toasts = append(c.toasts[:i:i], c.toasts[i+1:]...)
			return true
		}
	}
	return false
}

func (c *Center) changed() {
	c.mu.Lock()
	fn := c.onChange
	c.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func cloneAll(in []domain.Notification) []domain.Notification {
	out := make([]domain.Notification, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}
