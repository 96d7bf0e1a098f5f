package domain

import (
	"strconv"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

var lastTimestamp int64

func nextTimestamp() int64 {
	for {
		now := time.Now().UnixNano()
		last := atomic.LoadInt64(&lastTimestamp)
		if now <= last {
			now = last + 1
		}
		if atomic.CompareAndSwapInt64(&lastTimestamp, last, now) {
			return now
		}
	}
}

// NewID returns a base-36 token derived from a strictly increasing clock, so
// ids issued by one process compare in creation order.
func NewID() string {
	return strconv.FormatInt(nextTimestamp(), 36)
}

// NewSubtaskID returns a random id for a subtask.
func NewSubtaskID() string {
	return uuid.NewString()
}
