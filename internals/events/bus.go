// Package events is a small synchronous domain-event dispatcher. Cross-store
// side effects (cascade deletes, absence notifications) register here at
// bootstrap instead of being hardcoded inline in the mutating controller,
// and run inside the caller's transaction so a failing subscriber rolls the
// whole mutation back.
package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Event interface {
	EventName() string
}

// LearnerDeleted fires after a learner row is removed, before commit.
type LearnerDeleted struct {
	SchoolID  uuid.UUID
	LearnerID uuid.UUID
}

func (LearnerDeleted) EventName() string { return "learner.deleted" }

// AttendanceMarkedAbsent fires when an attendance record is written with
// status "absent".
type AttendanceMarkedAbsent struct {
	SchoolID  uuid.UUID
	LearnerID uuid.UUID
	RecordID  uuid.UUID
	Date      time.Time
}

func (AttendanceMarkedAbsent) EventName() string { return "attendance.marked_absent" }

type Handler func(tx *gorm.DB, evt Event) error

type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

func NewBus() *Bus {
	return &Bus{handlers: map[string][]Handler{}}
}

// Subscribe registers a handler for an event name. Handlers run in
// registration order.
func (b *Bus) Subscribe(name string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[name] = append(b.handlers[name], h)
}

// Publish dispatches synchronously on the caller's goroutine, passing the
// caller's transaction through. The first handler error aborts the fan-out.
func (b *Bus) Publish(tx *gorm.DB, evt Event) error {
	b.mu.RLock()
	hs := b.handlers[evt.EventName()]
	b.mu.RUnlock()

	for _, h := range hs {
		if err := h(tx, evt); err != nil {
			return err
		}
	}
	return nil
}
