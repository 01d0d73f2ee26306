package bridge

import "sync"

// DedupCursor remembers the single most recently seen source-side event id.
// The active poll fetches only the latest payment from a strictly-appending
// feed, so one slot is enough to suppress re-enqueueing the same payment;
// no history is kept.
type DedupCursor struct {
	mu         sync.Mutex
	lastSeenID string
	set        bool
}

func NewDedupCursor() *DedupCursor {
	return &DedupCursor{}
}

// HasSeen returns true if id matches the last marked id.
func (c *DedupCursor) HasSeen(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.set && c.lastSeenID == id
}

// MarkSeen records id as the last observed event.
func (c *DedupCursor) MarkSeen(id string) {
	c.mu.Lock()
	c.lastSeenID = id
	c.set = true
	c.mu.Unlock()
}
