package bridge

import (
	"sync"

	"github.com/edan-ais/Hubbalicious-Siren/internal/domain/trigger"
)

// EventQueue is the transient FIFO buffer of pending triggers. It is the
// only resource shared by every inbound path (webhook intake, test fire,
// active poll, dequeue), so all access goes through one mutex. Both
// operations are non-blocking and cannot fail; the queue is unbounded.
type EventQueue struct {
	mu     sync.Mutex
	events []trigger.Event
}

func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Push appends at the tail. Insertion order among concurrent pushers is
// whoever takes the mutex first; once inserted, service order is fixed.
func (q *EventQueue) Push(e trigger.Event) {
	q.mu.Lock()
	q.events = append(q.events, e)
	q.mu.Unlock()
}

// PopOldest removes and returns the head. The second return is false when
// the queue is empty; an empty queue is a normal state, not a fault.
func (q *EventQueue) PopOldest() (trigger.Event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.events) == 0 {
		return trigger.Event{}, false
	}

	head := q.events[0]
	q.events = q.events[1:]
	return head, true
}

// Len reports the current depth. Diagnostic only.
func (q *EventQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}
